package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mahmood265/speech-translator/helpers"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/factory"
	"github.com/mahmood265/speech-translator/pkg/logging"
	"github.com/mahmood265/speech-translator/pkg/routers"
	"github.com/mahmood265/speech-translator/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Printf("%s\n", c.Version)
	}

	app := &cli.Command{
		Name:        "speech-translator",
		Usage:       "Voice-to-voice translation server",
		Description: "without option will start server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Configuration file",
				DefaultText: "config.yaml",
				Value:       "config.yaml",
			},
		},
		Action:  startServer,
		Version: version.Version,
	}
	err := app.Run(context.Background(), os.Args)
	if err != nil {
		logrus.Fatalln(err)
	}
}

func startServer(ctx context.Context, c *cli.Command) error {
	appCnf, err := helpers.ReadConfig(c.String("config"))
	if err != nil {
		panic(err)
	}
	// set this config for global usage
	config.New(appCnf)

	logger, err := logging.NewLogger(&appCnf.LogSettings)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to setup logger")
	}
	appCnf.Logger = logger

	// now prepare our server
	err = helpers.PrepareServer(config.GetConfig())
	if err != nil {
		logger.Fatalln(err)
	}

	application, err := factory.NewApplication(appCnf)
	if err != nil {
		logger.Fatalln(err)
	}

	// boot up background services
	application.Boot()
	defer application.Shutdown()

	logger.Infof("source language: %s", appCnf.AzureSpeech.SourceLanguage)
	logger.Infof("target language: %s", appCnf.AzureSpeech.TargetLanguage)
	logger.Infof("region: %s", appCnf.AzureSpeech.ServiceRegion)

	rt := routers.New(application.AppConfig, application.Controllers)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigChan
		logger.Infoln("exit requested, shutting down", "signal", sig)
		_ = rt.Shutdown()
	}()

	err = rt.Listen(fmt.Sprintf(":%d", appCnf.Client.Port))
	if err != nil {
		logger.Fatalln(err)
	}
	return nil
}
