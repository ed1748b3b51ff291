package factory

import (
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/controllers"
	"github.com/mahmood265/speech-translator/pkg/models"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/mahmood265/speech-translator/pkg/speech"
	"github.com/mahmood265/speech-translator/pkg/speech/azure"
)

// ApplicationControllers holds all the controllers.
type ApplicationControllers struct {
	StreamController    *controllers.StreamController
	TranslateController *controllers.TranslateController
}

// Application is the root struct holding all dependencies.
type Application struct {
	Controllers *ApplicationControllers
	AppConfig   *config.AppConfig

	janitorModel     *models.JanitorModel
	translationModel *models.TranslationModel
}

// NewApplication wires the full dependency graph against the real Azure
// speech provider.
func NewApplication(appCnf *config.AppConfig) (*Application, error) {
	provider, err := azure.NewProvider(appCnf.AzureSpeech.SubscriptionKey, appCnf.AzureSpeech.ServiceRegion, appCnf.Logger)
	if err != nil {
		return nil, err
	}

	store := sessionstore.New(appCnf.UploadFileSettings.Path, appCnf.Logger)
	return NewApplicationWithProvider(appCnf, store, provider), nil
}

// NewApplicationWithProvider wires the application around an injected speech
// provider and session store.
func NewApplicationWithProvider(appCnf *config.AppConfig, store *sessionstore.SessionStore, provider speech.Provider) *Application {
	logger := appCnf.Logger

	janitorModel := models.NewJanitorModel(appCnf, store, logger)
	streamModel := models.NewStreamModel(appCnf, store, logger)
	translationModel := models.NewTranslationModel(appCnf, store, provider, janitorModel, logger)

	ctrl := &ApplicationControllers{
		StreamController:    controllers.NewStreamController(appCnf, streamModel, translationModel, janitorModel, logger),
		TranslateController: controllers.NewTranslateController(appCnf, translationModel, logger),
	}

	return &Application{
		Controllers:      ctrl,
		AppConfig:        appCnf,
		janitorModel:     janitorModel,
		translationModel: translationModel,
	}
}

// Boot starts the background services.
func (a *Application) Boot() {
	go a.janitorModel.StartJanitor()
}

// Shutdown stops the janitor and waits for in-flight translations.
func (a *Application) Shutdown() {
	a.janitorModel.Shutdown()
	a.translationModel.Shutdown()
}
