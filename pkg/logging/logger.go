package logging

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/DeRuina/timberjack"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewLogger creates and configures a logrus.Logger based on the provided settings.
func NewLogger(cfg *config.LogSettings) (*logrus.Logger, error) {
	logger := logrus.New()

	logLevel := logrus.InfoLevel
	if cfg.LogLevel != nil && *cfg.LogLevel != "" {
		if lv, err := logrus.ParseLevel(strings.ToLower(*cfg.LogLevel)); err == nil {
			logLevel = lv
		}
	}
	logger.SetLevel(logLevel)

	// log to stdout by default; when a log file is configured,
	// write to both with rotation handled by timberjack.
	var output io.Writer = os.Stdout
	if cfg.LogFile != "" {
		fileLogger := &timberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		output = io.MultiWriter(os.Stdout, fileLogger)
	}
	logger.SetOutput(output)

	textFormatter := &logrus.TextFormatter{
		FullTimestamp: true,
		// our SourceFormatter takes over caller formatting
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", ""
		},
		ForceColors: true,
	}
	logger.SetFormatter(&SourceFormatter{
		Underlying: textFormatter,
		AddSpace:   true,
	})
	logger.SetReportCaller(true)

	return logger, nil
}
