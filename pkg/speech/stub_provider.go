package speech

import (
	"context"
	"errors"
	"sync"
)

// StubProvider is a deterministic Provider for tests and local development
// without Azure credentials. It replays a scripted sequence of updates and a
// fixed synthesis result.
type StubProvider struct {
	// Updates is replayed in order on every RecognizeAndTranslate call.
	Updates []*RecognitionUpdate
	// RecognizeErr, when set, fails the call before any update is sent.
	RecognizeErr error

	SynthAudio []byte
	SynthErr   error

	mu             sync.Mutex
	recognizeCalls int
	synthCalls     int
	lastSynthText  string
	lastSynthLang  string
}

func (p *StubProvider) RecognizeAndTranslate(ctx context.Context, wavPath, sourceLang, targetLang string) (<-chan *RecognitionUpdate, error) {
	p.mu.Lock()
	p.recognizeCalls++
	p.mu.Unlock()

	if p.RecognizeErr != nil {
		return nil, p.RecognizeErr
	}

	updates := make(chan *RecognitionUpdate, len(p.Updates))
	go func() {
		defer close(updates)
		for _, u := range p.Updates {
			select {
			case updates <- u:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates, nil
}

func (p *StubProvider) Synthesize(ctx context.Context, text, language, voice string) ([]byte, error) {
	p.mu.Lock()
	p.synthCalls++
	p.lastSynthText = text
	p.lastSynthLang = language
	p.mu.Unlock()

	if p.SynthErr != nil {
		return nil, p.SynthErr
	}
	if len(p.SynthAudio) == 0 {
		return nil, errors.New("stub provider has no synthesis audio configured")
	}
	return p.SynthAudio, nil
}

// RecognizeCalls reports how many recognition passes were requested.
func (p *StubProvider) RecognizeCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recognizeCalls
}

// SynthCalls reports how many synthesis calls were made and the last inputs.
func (p *StubProvider) SynthCalls() (int, string, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.synthCalls, p.lastSynthText, p.lastSynthLang
}
