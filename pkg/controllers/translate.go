package controllers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/models"
	"github.com/sirupsen/logrus"
)

// TranslateController serves the process configuration and the one-shot,
// non-streaming translation of an uploaded audio file.
type TranslateController struct {
	app              *config.AppConfig
	translationModel *models.TranslationModel
	logger           *logrus.Entry
}

func NewTranslateController(app *config.AppConfig, tm *models.TranslationModel, logger *logrus.Logger) *TranslateController {
	return &TranslateController{
		app:              app,
		translationModel: tm,
		logger:           logger.WithField("controller", "translate"),
	}
}

func (tc *TranslateController) HandleConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sourceLanguage": tc.app.AzureSpeech.SourceLanguage,
		"targetLanguage": tc.app.AzureSpeech.TargetLanguage,
		"region":         tc.app.AzureSpeech.ServiceRegion,
	})
}

// HandleTranslate is the legacy single-shot flow: one multipart upload in,
// recognition, translation and synthesized audio out in a single response.
func (tc *TranslateController) HandleTranslate(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No audio file provided"})
	}
	if fileHeader.Size > int64(tc.app.UploadFileSettings.MaxSize) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "audio file too large"})
	}

	audioPath := filepath.Join(tc.app.UploadFileSettings.Path, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, audioPath); err != nil {
		tc.logger.WithError(err).Errorln("failed to store uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store uploaded file"})
	}
	defer os.Remove(audioPath)

	mtype, err := mimetype.DetectFile(audioPath)
	if err != nil || !strings.HasPrefix(mtype.String(), "audio/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "uploaded file is not audio"})
	}

	tc.logger.Infof("received audio file: %s (%s)", fileHeader.Filename, mtype.String())

	result, err := tc.translationModel.TranslateFile(c.Context(), audioPath)
	if err != nil {
		tc.logger.WithError(err).Errorln("translation error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Translation failed",
			"details": err.Error(),
		})
	}

	tc.logger.Infof("recognized: %q", result.OriginalText)
	tc.logger.Infof("translated: %q", result.TranslatedText)

	return c.JSON(fiber.Map{
		"originalText":   result.OriginalText,
		"translatedText": result.TranslatedText,
		"audioData":      result.AudioData,
		"sourceLanguage": tc.app.AzureSpeech.SourceLanguage,
		"targetLanguage": tc.app.AzureSpeech.TargetLanguage,
	})
}
