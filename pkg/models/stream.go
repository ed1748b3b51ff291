package models

import (
	"fmt"

	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/sirupsen/logrus"
)

// StreamModel drives the ingest side of a streaming session: creation, chunk
// accumulation and finalization into a playable WAV container.
type StreamModel struct {
	app    *config.AppConfig
	store  *sessionstore.SessionStore
	logger *logrus.Entry
}

func NewStreamModel(app *config.AppConfig, store *sessionstore.SessionStore, logger *logrus.Logger) *StreamModel {
	if app == nil {
		app = config.GetConfig()
	}
	return &StreamModel{
		app:    app,
		store:  store,
		logger: logger.WithField("model", "stream"),
	}
}

// StartSessionReq mirrors the start request body. Languages are optional and
// fall back to the process defaults.
type StartSessionReq struct {
	SampleRate     int    `json:"sampleRate"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// StartSession registers a new collecting session and allocates its backing
// temp file.
func (m *StreamModel) StartSession(req *StartSessionReq) (*sessionstore.Session, error) {
	if req == nil || req.SampleRate <= 0 {
		return nil, ErrSampleRateRequired
	}

	sourceLang := req.SourceLanguage
	if sourceLang == "" {
		sourceLang = m.app.AzureSpeech.SourceLanguage
	}
	targetLang := req.TargetLanguage
	if targetLang == "" {
		targetLang = m.app.AzureSpeech.TargetLanguage
	}

	sess, err := m.store.Create(req.SampleRate, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	m.logger.Infof("started streaming session: %s (%d Hz)", sess.ID, sess.SampleRate)
	m.logger.Infof("languages: %s -> %s", sourceLang, targetLang)
	return sess, nil
}

// AppendChunk appends raw PCM bytes to a collecting session and returns the
// updated total sample count.
func (m *StreamModel) AppendChunk(sessionId string, chunk []byte) (int64, error) {
	if sessionId == "" {
		return 0, ErrSessionIdRequired
	}
	sess := m.store.Get(sessionId)
	if sess == nil {
		return 0, ErrSessionNotFound
	}
	if len(chunk) == 0 {
		return 0, ErrEmptyChunk
	}

	samples, err := sess.AppendPCM(chunk)
	if err != nil {
		return samples, err
	}
	return samples, nil
}

// FinalizeSession assembles the accumulated PCM into the canonical WAV
// container and moves the session to ready. On an I/O failure the session is
// useless, so it is destroyed immediately rather than left for the janitor.
func (m *StreamModel) FinalizeSession(sessionId string) (*sessionstore.Session, error) {
	if sessionId == "" {
		return nil, ErrSessionIdRequired
	}
	sess := m.store.Get(sessionId)
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	m.logger.Infof("stopping stream session: %s", sessionId)

	err := sess.Finalize()
	switch {
	case err == nil:
		m.logger.Infof("wav file created: %s (samples: %d)", sess.FinalizedAudioPath(), sess.TotalSamples())
		return sess, nil
	case err == sessionstore.ErrAlreadyFinalized || err == sessionstore.ErrNotCollecting:
		return nil, err
	default:
		m.logger.WithError(err).Errorln("stream finalization error")
		m.store.Destroy(sessionId)
		return nil, fmt.Errorf("%w: %v", ErrFinalizationFailed, err)
	}
}

// SessionAudio returns the stored synthesis artifacts for the audio
// retrieval endpoint, or ErrSessionNotFound when nothing is available yet.
func (m *StreamModel) SessionAudio(sessionId string) (*AudioReadyPayload, string, error) {
	sess := m.store.Get(sessionId)
	if sess == nil {
		return nil, "", ErrSessionNotFound
	}
	audioData, recognized, translated, ok := sess.Artifacts()
	if !ok {
		return nil, "", ErrSessionNotFound
	}

	payload := &AudioReadyPayload{
		SessionId:      sess.ID,
		SourceLanguage: sess.SourceLanguage,
		TargetLanguage: sess.TargetLanguage,
		OriginalText:   recognized,
		TranslatedText: translated,
	}
	return payload, audioData, nil
}
