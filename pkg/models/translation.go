package models

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/gammazero/workerpool"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/mahmood265/speech-translator/pkg/speech"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TranslationModel orchestrates the recognize -> translate -> synthesize
// pipeline against the external speech service and converts its callbacks
// into the ordered event stream a subscribed client consumes.
type TranslationModel struct {
	app      *config.AppConfig
	store    *sessionstore.SessionStore
	provider speech.Provider
	janitor  *JanitorModel

	// pool bounds how many pipelines may hold an external service round trip
	// at the same time; single guarantees at most one run per session.
	pool   *workerpool.WorkerPool
	single singleflight.Group
	logger *logrus.Entry
}

func NewTranslationModel(app *config.AppConfig, store *sessionstore.SessionStore, provider speech.Provider, janitor *JanitorModel, logger *logrus.Logger) *TranslationModel {
	if app == nil {
		app = config.GetConfig()
	}
	return &TranslationModel{
		app:      app,
		store:    store,
		provider: provider,
		janitor:  janitor,
		pool:     workerpool.New(app.SessionSettings.MaxConcurrentTranslations),
		logger:   logger.WithField("model", "translation"),
	}
}

// Shutdown waits for in-flight pipelines to finish.
func (m *TranslationModel) Shutdown() {
	m.pool.StopWait()
}

// StreamEvents starts the pipeline for a ready session and returns the
// ordered event stream. The stream always ends with a complete or error
// event, then closes. When the pipeline fails outright the session is
// destroyed immediately since no audio will ever become available.
//
// A concurrent subscriber to the same session does not trigger a second
// pipeline; it waits for the shared run and only observes the terminal event.
func (m *TranslationModel) StreamEvents(ctx context.Context, sessionId string) (<-chan StreamEvent, error) {
	sess := m.store.Get(sessionId)
	if sess == nil || sess.Status() != sessionstore.StatusReady {
		return nil, ErrSessionNotFound
	}

	events := make(chan StreamEvent, 32)
	go func() {
		defer close(events)

		_, err, _ := m.single.Do(sessionId, func() (interface{}, error) {
			var runErr error
			m.pool.SubmitWait(func() {
				runErr = m.runPipeline(ctx, sess, events)
			})
			return nil, runErr
		})
		if err != nil {
			events <- StreamEvent{Name: EventError, Data: ErrorPayload{Message: err.Error()}}
			m.janitor.CleanupNow(sessionId)
			return
		}
		events <- StreamEvent{Name: EventComplete, Data: CompletePayload{Message: "Translation complete"}}
	}()

	return events, nil
}

// runPipeline drives one recognition pass and, when it produced a
// translation, the follow-up synthesis. It returns an error only for a
// canceled/aborted recognition; a no-match or a synthesis failure is
// reported as an error event while the session is preserved.
func (m *TranslationModel) runPipeline(ctx context.Context, sess *sessionstore.Session, events chan<- StreamEvent) error {
	log := m.logger.WithField("sessionId", sess.ID)
	log.Infof("starting real-time translation: %s -> %s", sess.SourceLanguage, sess.TargetLanguage)

	updates, err := m.provider.RecognizeAndTranslate(ctx, sess.FinalizedAudioPath(), sess.SourceLanguage, sess.TargetLanguage)
	if err != nil {
		return err
	}

	var finalText, finalTranslation string
	for u := range updates {
		switch u.Kind {
		case speech.UpdateInterim:
			events <- StreamEvent{Name: EventRecognizing, Data: TranslationPayload{
				OriginalText:   u.Text,
				TranslatedText: u.Translation,
				IsFinal:        false,
			}}
		case speech.UpdateFinal:
			finalText = u.Text
			finalTranslation = u.Translation
			log.Infof("recognized: %q", finalText)
			log.Infof("translated: %q", finalTranslation)
			events <- StreamEvent{Name: EventRecognized, Data: TranslationPayload{
				OriginalText:   finalText,
				TranslatedText: finalTranslation,
				IsFinal:        true,
			}}
		case speech.UpdateNoMatch:
			log.Warnln("no speech recognized")
			events <- StreamEvent{Name: EventError, Data: ErrorPayload{Message: "No speech could be recognized"}}
		case speech.UpdateCanceled:
			if u.ErrorDetails != "" {
				return errors.New(u.ErrorDetails)
			}
			return errors.New("recognition canceled")
		}
	}

	if finalTranslation == "" {
		return nil
	}

	log.Infoln("synthesizing audio")
	audioData, err := m.provider.Synthesize(ctx, finalTranslation, sess.TargetLanguage, m.app.AzureSpeech.TargetVoice)
	if err != nil {
		log.WithError(err).Errorln("audio synthesis error")
		events <- StreamEvent{Name: EventError, Data: ErrorPayload{
			Message: "Audio synthesis failed",
			Details: err.Error(),
		}}
		return nil
	}

	sess.SetArtifacts(base64.StdEncoding.EncodeToString(audioData), finalText, finalTranslation)
	log.Infof("sending audio-ready event for session: %s", sess.ID)
	events <- StreamEvent{Name: EventAudioReady, Data: AudioReadyPayload{
		SessionId:      sess.ID,
		SourceLanguage: sess.SourceLanguage,
		TargetLanguage: sess.TargetLanguage,
		OriginalText:   finalText,
		TranslatedText: finalTranslation,
	}}
	return nil
}

// TranslateFileResult is the outcome of the one-shot, non-streaming flow.
type TranslateFileResult struct {
	OriginalText   string
	TranslatedText string
	AudioData      string // base64
}

// TranslateFile runs the same recognize -> translate -> synthesize sequence
// over an uploaded audio file, synchronously and with the process-default
// languages. Interim hypotheses are discarded.
func (m *TranslationModel) TranslateFile(ctx context.Context, audioPath string) (*TranslateFileResult, error) {
	sourceLang := m.app.AzureSpeech.SourceLanguage
	targetLang := m.app.AzureSpeech.TargetLanguage

	var result *TranslateFileResult
	var runErr error
	m.pool.SubmitWait(func() {
		result, runErr = m.translateFile(ctx, audioPath, sourceLang, targetLang)
	})
	return result, runErr
}

func (m *TranslationModel) translateFile(ctx context.Context, audioPath, sourceLang, targetLang string) (*TranslateFileResult, error) {
	updates, err := m.provider.RecognizeAndTranslate(ctx, audioPath, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	var finalText, finalTranslation string
	for u := range updates {
		switch u.Kind {
		case speech.UpdateFinal:
			finalText = u.Text
			finalTranslation = u.Translation
		case speech.UpdateNoMatch:
			return nil, errors.New("No speech could be recognized")
		case speech.UpdateCanceled:
			if u.ErrorDetails != "" {
				return nil, errors.New(u.ErrorDetails)
			}
			return nil, errors.New("recognition canceled")
		}
	}

	if finalTranslation == "" {
		return nil, errors.New("speech recognized but translation was not returned")
	}

	audioData, err := m.provider.Synthesize(ctx, finalTranslation, targetLang, m.app.AzureSpeech.TargetVoice)
	if err != nil {
		return nil, err
	}

	return &TranslateFileResult{
		OriginalText:   finalText,
		TranslatedText: finalTranslation,
		AudioData:      base64.StdEncoding.EncodeToString(audioData),
	}, nil
}
