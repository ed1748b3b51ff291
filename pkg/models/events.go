package models

// Event names pushed over the translation event stream, in the order a client
// can observe them: recognizing* (recognized | error) [audio-ready] (complete | error).
const (
	EventRecognizing = "recognizing"
	EventRecognized  = "recognized"
	EventAudioReady  = "audio-ready"
	EventError       = "error"
	EventComplete    = "complete"
)

// StreamEvent is one named event destined for a subscribed client.
type StreamEvent struct {
	Name string
	Data interface{}
}

// TranslationPayload carries an interim or final recognition hypothesis.
type TranslationPayload struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	IsFinal        bool   `json:"isFinal"`
}

// AudioReadyPayload announces that synthesized audio can be retrieved.
type AudioReadyPayload struct {
	SessionId      string `json:"sessionId"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type CompletePayload struct {
	Message string `json:"message"`
}
