package controllers

import (
	"io"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/models"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/mahmood265/speech-translator/pkg/speech"
	"github.com/sirupsen/logrus"
)

type testServer struct {
	app     *fiber.App
	store   *sessionstore.SessionStore
	janitor *models.JanitorModel
	appCnf  *config.AppConfig
}

// newTestServer wires the controllers against a stub speech provider and
// registers the same routes the production router does.
func newTestServer(t *testing.T, stub *speech.StubProvider) *testServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	appCnf := &config.AppConfig{
		Logger: logger,
		AzureSpeech: config.AzureSpeechInfo{
			ServiceRegion:  "westus",
			SourceLanguage: "en-US",
			TargetLanguage: "es-ES",
		},
		UploadFileSettings: config.UploadFileSettings{
			Path:         t.TempDir(),
			MaxSize:      10 << 20,
			MaxChunkSize: 25 << 20,
		},
		SessionSettings: config.SessionSettings{
			CleanupGraceDelay:         20 * time.Millisecond,
			IdleTimeout:               time.Minute,
			MaxConcurrentTranslations: 2,
		},
	}

	store := sessionstore.New(appCnf.UploadFileSettings.Path, logger)
	janitorModel := models.NewJanitorModel(appCnf, store, logger)
	streamModel := models.NewStreamModel(appCnf, store, logger)
	translationModel := models.NewTranslationModel(appCnf, store, stub, janitorModel, logger)

	streamController := NewStreamController(appCnf, streamModel, translationModel, janitorModel, logger)
	translateController := NewTranslateController(appCnf, translationModel, logger)

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Get("/healthCheck", HandleHealthCheck)
	api := app.Group("/api")
	api.Get("/config", translateController.HandleConfig)
	api.Post("/translate", translateController.HandleTranslate)
	stream := api.Group("/stream")
	stream.Post("/start", streamController.HandleStreamStart)
	stream.Post("/chunk", streamController.HandleStreamChunk)
	stream.Post("/stop", streamController.HandleStreamStop)
	stream.Get("/translate/:sessionId", streamController.HandleStreamTranslate)
	stream.Get("/audio/:sessionId", streamController.HandleStreamAudio)

	go janitorModel.StartJanitor()
	t.Cleanup(func() {
		janitorModel.Shutdown()
		translationModel.Shutdown()
	})

	return &testServer{
		app:     app,
		store:   store,
		janitor: janitorModel,
		appCnf:  appCnf,
	}
}

func decodeJSONBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	out := make(map[string]interface{})
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}
