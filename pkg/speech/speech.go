package speech

import "context"

// UpdateKind classifies a recognition update coming back from the provider.
type UpdateKind int

const (
	// UpdateInterim is a provisional hypothesis that may be superseded.
	UpdateInterim UpdateKind = iota
	// UpdateFinal is the completed recognition with its translation.
	UpdateFinal
	// UpdateNoMatch means the provider found no speech in the audio.
	UpdateNoMatch
	// UpdateCanceled means the provider aborted the call.
	UpdateCanceled
)

// RecognitionUpdate is one result from a recognize-and-translate call.
type RecognitionUpdate struct {
	Kind         UpdateKind
	Text         string
	Translation  string
	ErrorDetails string
}

// Provider is the contract for an external speech service capable of
// recognizing speech, translating it and synthesizing audio from text.
type Provider interface {
	// RecognizeAndTranslate runs one recognition pass over the WAV file at
	// wavPath. Updates arrive in order on the returned channel: zero or more
	// interim updates followed by exactly one terminal update (final,
	// no-match or canceled), after which the channel is closed.
	RecognizeAndTranslate(ctx context.Context, wavPath, sourceLang, targetLang string) (<-chan *RecognitionUpdate, error)

	// Synthesize converts text to spoken audio in the given language and
	// returns the raw audio bytes.
	Synthesize(ctx context.Context, text, language, voice string) ([]byte, error)
}
