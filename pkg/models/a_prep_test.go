package models

import (
	"io"
	"testing"
	"time"

	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	appCnf := &config.AppConfig{
		Logger: newTestLogger(),
		AzureSpeech: config.AzureSpeechInfo{
			SourceLanguage: "en-US",
			TargetLanguage: "es-ES",
		},
		UploadFileSettings: config.UploadFileSettings{
			Path: t.TempDir(),
		},
		SessionSettings: config.SessionSettings{
			CleanupGraceDelay:         10 * time.Millisecond,
			IdleTimeout:               time.Minute,
			MaxConcurrentTranslations: 2,
		},
	}
	return appCnf
}

func newTestStore(t *testing.T, appCnf *config.AppConfig) *sessionstore.SessionStore {
	t.Helper()
	return sessionstore.New(appCnf.UploadFileSettings.Path, appCnf.Logger)
}
