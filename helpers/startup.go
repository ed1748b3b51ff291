package helpers

import (
	"fmt"
	"os"

	"github.com/mahmood265/speech-translator/pkg/config"
	"gopkg.in/yaml.v3"
)

// PrepareServer validates the parts of the config the server cannot run
// without and makes sure the upload directory exists.
func PrepareServer(appCnf *config.AppConfig) error {
	if appCnf.AzureSpeech.SubscriptionKey == "" || appCnf.AzureSpeech.ServiceRegion == "" {
		return fmt.Errorf("azure_speech.subscription_key and azure_speech.service_region must be set")
	}

	if err := os.MkdirAll(appCnf.UploadFileSettings.Path, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func ReadConfig(cnfFile string) (*config.AppConfig, error) {
	return readYaml(cnfFile)
}

func readYaml(filename string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, &appCnf)
	if err != nil {
		return nil, err
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// set the root path
	appCnf.RootWorkingDir = wd

	return appCnf, err
}
