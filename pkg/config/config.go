package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Logger         *logrus.Logger `yaml:"-"`
	RootWorkingDir string         `yaml:"-"`

	Client             ClientInfo         `yaml:"client"`
	LogSettings        LogSettings        `yaml:"log_settings"`
	AzureSpeech        AzureSpeechInfo    `yaml:"azure_speech"`
	UploadFileSettings UploadFileSettings `yaml:"upload_file_settings"`
	SessionSettings    SessionSettings    `yaml:"session_settings"`
}

type ClientInfo struct {
	Port           int            `yaml:"port"`
	Debug          bool           `yaml:"debug"`
	Path           string         `yaml:"path"`
	ProxyHeader    string         `yaml:"proxy_header"`
	PrometheusConf PrometheusConf `yaml:"prometheus"`
}

type PrometheusConf struct {
	Enable      bool   `yaml:"enable"`
	MetricsPath string `yaml:"metrics_path"`
}

type LogSettings struct {
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
	LogLevel   *string `yaml:"log_level"`
}

// AzureSpeechInfo holds the credentials and the process-default languages for
// the Azure Cognitive Services speech endpoints.
type AzureSpeechInfo struct {
	SubscriptionKey string `yaml:"subscription_key"`
	ServiceRegion   string `yaml:"service_region"`
	SourceLanguage  string `yaml:"source_language"`
	TargetLanguage  string `yaml:"target_language"`
	TargetVoice     string `yaml:"target_voice"`
}

type UploadFileSettings struct {
	Path         string `yaml:"path"`
	MaxSize      uint64 `yaml:"max_size"`
	MaxChunkSize uint64 `yaml:"max_chunk_size"`
}

// SessionSettings controls the lifecycle of streaming sessions.
type SessionSettings struct {
	// CleanupGraceDelay is how long a session survives after its synthesized
	// audio has been downloaded, so that immediate retries still succeed.
	CleanupGraceDelay time.Duration `yaml:"cleanup_grace_delay"`
	// IdleTimeout reclaims sessions that were abandoned before finalize or
	// whose audio was never retrieved.
	IdleTimeout               time.Duration `yaml:"idle_timeout"`
	MaxConcurrentTranslations int           `yaml:"max_concurrent_translations"`
}

var appCnf *AppConfig

// New assigns the config for global usage
func New(a *AppConfig) {
	if appCnf != nil {
		// not allow multiple config
		return
	}
	a.setDefaults()
	appCnf = a
}

func GetConfig() *AppConfig {
	return appCnf
}

func (a *AppConfig) setDefaults() {
	if a.AzureSpeech.SourceLanguage == "" {
		a.AzureSpeech.SourceLanguage = "en-US"
	}
	if a.AzureSpeech.TargetLanguage == "" {
		a.AzureSpeech.TargetLanguage = "es-ES"
	}
	if a.UploadFileSettings.Path == "" {
		a.UploadFileSettings.Path = "uploads"
	}
	if a.UploadFileSettings.MaxSize == 0 {
		a.UploadFileSettings.MaxSize = 10 << 20
	}
	if a.UploadFileSettings.MaxChunkSize == 0 {
		a.UploadFileSettings.MaxChunkSize = 25 << 20
	}
	if a.SessionSettings.CleanupGraceDelay == 0 {
		a.SessionSettings.CleanupGraceDelay = time.Second
	}
	if a.SessionSettings.IdleTimeout == 0 {
		a.SessionSettings.IdleTimeout = 10 * time.Minute
	}
	if a.SessionSettings.MaxConcurrentTranslations == 0 {
		a.SessionSettings.MaxConcurrentTranslations = 8
	}
}
