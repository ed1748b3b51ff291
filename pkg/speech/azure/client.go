package azure

import (
	"fmt"
	"strings"

	"github.com/mahmood265/speech-translator/pkg/speech"
	"github.com/sirupsen/logrus"
)

// AzureProvider implements speech.Provider on top of the Azure Cognitive
// Services speech SDK. One provider is shared by all sessions; the SDK
// objects themselves are created per call because recognition language and
// translation target differ per session.
type AzureProvider struct {
	subscriptionKey string
	serviceRegion   string
	log             *logrus.Entry
}

var _ speech.Provider = (*AzureProvider)(nil)

// NewProvider creates a fully configured Azure provider.
func NewProvider(subscriptionKey, serviceRegion string, log *logrus.Logger) (*AzureProvider, error) {
	if subscriptionKey == "" || serviceRegion == "" {
		return nil, fmt.Errorf("azure provider requires subscription_key and service_region")
	}

	return &AzureProvider{
		subscriptionKey: subscriptionKey,
		serviceRegion:   serviceRegion,
		log:             log.WithField("service", "azure-speech"),
	}, nil
}

// languageCode extracts the bare language code Azure keys translations by,
// e.g. "ar" from "ar-SA".
func languageCode(locale string) string {
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}
