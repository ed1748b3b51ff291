package azure

import (
	"context"
	"fmt"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	sdkspeech "github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
)

// Synthesize converts the translated text into spoken audio and returns the
// raw audio bytes.
func (p *AzureProvider) Synthesize(ctx context.Context, text, language, voice string) ([]byte, error) {
	conf, err := sdkspeech.NewSpeechConfigFromSubscription(p.subscriptionKey, p.serviceRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure speech config: %w", err)
	}
	defer conf.Close()

	if err := conf.SetSpeechSynthesisLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set synthesis language: %w", err)
	}
	if voice != "" {
		if err := conf.SetSpeechSynthesisVoiceName(voice); err != nil {
			return nil, fmt.Errorf("failed to set synthesis voice: %w", err)
		}
	}

	// Audio config is nil as we read the audio from the result.
	synthesizer, err := sdkspeech.NewSpeechSynthesizerFromConfig(conf, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech synthesizer: %w", err)
	}
	defer synthesizer.Close()

	task := synthesizer.SpeakTextAsync(text)
	var outcome sdkspeech.SpeechSynthesisOutcome

	select {
	case outcome = <-task:
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled while waiting for synthesis result: %w", ctx.Err())
	}
	defer outcome.Close()

	if outcome.Error != nil {
		return nil, fmt.Errorf("synthesis outcome error: %w", outcome.Error)
	}

	if outcome.Result.Reason != common.SynthesizingAudioCompleted {
		cancellation, _ := sdkspeech.NewCancellationDetailsFromSpeechSynthesisResult(outcome.Result)
		details := ""
		if cancellation != nil {
			details = cancellation.ErrorDetails
		}
		return nil, fmt.Errorf("speech synthesis failed: reason=%s, details=%s", outcome.Result.Reason.String(), details)
	}

	p.log.Infof("synthesized %d bytes of audio", len(outcome.Result.AudioData))
	return outcome.Result.AudioData, nil
}
