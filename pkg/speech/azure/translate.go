package azure

import (
	"context"
	"fmt"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	sdkspeech "github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/mahmood265/speech-translator/pkg/speech"
	"github.com/sirupsen/logrus"
)

// RecognizeAndTranslate runs one recognize-once pass with integrated
// translation over the WAV file at wavPath. Interim hypotheses are forwarded
// from the Recognizing callback; the terminal update is derived from the
// recognize-once outcome so exactly one terminal is ever emitted.
func (p *AzureProvider) RecognizeAndTranslate(ctx context.Context, wavPath, sourceLang, targetLang string) (<-chan *speech.RecognitionUpdate, error) {
	log := p.log.WithFields(logrus.Fields{
		"method":     "RecognizeAndTranslate",
		"sourceLang": sourceLang,
		"targetLang": targetLang,
	})

	translationConfig, err := sdkspeech.NewSpeechTranslationConfigFromSubscription(p.subscriptionKey, p.serviceRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation config: %w", err)
	}

	if err := translationConfig.SetSpeechRecognitionLanguage(sourceLang); err != nil {
		translationConfig.Close()
		return nil, fmt.Errorf("failed to set recognition language: %w", err)
	}

	targetCode := languageCode(targetLang)
	if err := translationConfig.AddTargetLanguage(targetCode); err != nil {
		translationConfig.Close()
		return nil, fmt.Errorf("failed to add target language: %w", err)
	}

	audioConfig, err := audio.NewAudioConfigFromWavFileInput(wavPath)
	if err != nil {
		translationConfig.Close()
		return nil, fmt.Errorf("failed to create audio config: %w", err)
	}

	recognizer, err := sdkspeech.NewTranslationRecognizerFromConfig(translationConfig, audioConfig)
	if err != nil {
		audioConfig.Close()
		translationConfig.Close()
		return nil, fmt.Errorf("failed to create translation recognizer: %w", err)
	}

	updates := make(chan *speech.RecognitionUpdate, 32)

	recognizer.Recognizing(func(e sdkspeech.TranslationRecognitionEventArgs) {
		if e.Result.Reason != common.TranslatingSpeech {
			return
		}
		update := &speech.RecognitionUpdate{
			Kind:        speech.UpdateInterim,
			Text:        e.Result.Text,
			Translation: e.Result.GetTranslations()[targetCode],
		}
		select {
		case updates <- update:
		default:
			// interim hypotheses are best effort, never block the SDK callback
		}
	})

	go func() {
		defer close(updates)
		defer translationConfig.Close()
		defer audioConfig.Close()
		defer recognizer.Close()

		var outcome sdkspeech.TranslationRecognitionOutcome
		select {
		case outcome = <-recognizer.RecognizeOnceAsync():
		case <-ctx.Done():
			updates <- &speech.RecognitionUpdate{
				Kind:         speech.UpdateCanceled,
				ErrorDetails: ctx.Err().Error(),
			}
			return
		}
		defer outcome.Close()

		if outcome.Error != nil {
			log.WithError(outcome.Error).Errorln("recognition failed")
			updates <- &speech.RecognitionUpdate{
				Kind:         speech.UpdateCanceled,
				ErrorDetails: outcome.Error.Error(),
			}
			return
		}

		result := outcome.Result
		switch result.Reason {
		case common.TranslatedSpeech:
			updates <- &speech.RecognitionUpdate{
				Kind:        speech.UpdateFinal,
				Text:        result.Text,
				Translation: result.GetTranslations()[targetCode],
			}
		case common.NoMatch:
			log.Infoln("no speech recognized")
			updates <- &speech.RecognitionUpdate{Kind: speech.UpdateNoMatch}
		default:
			details := fmt.Sprintf("translation canceled: %s", result.Reason.String())
			log.Errorln(details)
			updates <- &speech.RecognitionUpdate{
				Kind:         speech.UpdateCanceled,
				ErrorDetails: details,
			}
		}
	}()

	return updates, nil
}
