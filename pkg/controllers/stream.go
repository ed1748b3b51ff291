package controllers

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/models"
	"github.com/mahmood265/speech-translator/pkg/services/sessionstore"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// StreamController exposes the streaming session lifecycle over HTTP:
// start, chunk append, finalize, the translation event stream and the
// synthesized audio retrieval.
type StreamController struct {
	app              *config.AppConfig
	streamModel      *models.StreamModel
	translationModel *models.TranslationModel
	janitorModel     *models.JanitorModel
	logger           *logrus.Entry
}

func NewStreamController(app *config.AppConfig, sm *models.StreamModel, tm *models.TranslationModel, jm *models.JanitorModel, logger *logrus.Logger) *StreamController {
	return &StreamController{
		app:              app,
		streamModel:      sm,
		translationModel: tm,
		janitorModel:     jm,
		logger:           logger.WithField("controller", "stream"),
	}
}

func (sc *StreamController) HandleStreamStart(c *fiber.Ctx) error {
	req := new(models.StartSessionReq)
	// an empty or malformed body falls through to model validation
	_ = c.BodyParser(req)

	sess, err := sc.streamModel.StartSession(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"sessionId": sess.ID})
}

func (sc *StreamController) HandleStreamChunk(c *fiber.Ctx) error {
	sessionId := c.Get("x-session-id")
	if sessionId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing session id"})
	}

	_, err := sc.streamModel.AppendChunk(sessionId, c.Body())
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, models.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, models.ErrEmptyChunk):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Chunk payload missing or empty"})
	case errors.Is(err, sessionstore.ErrNotCollecting):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		sc.logger.WithError(err).Errorf("failed to append audio chunk for session %s", sessionId)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to append chunk"})
	}
}

func (sc *StreamController) HandleStreamStop(c *fiber.Ctx) error {
	req := new(struct {
		SessionId string `json:"sessionId"`
	})
	_ = c.BodyParser(req)
	if req.SessionId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sessionId is required"})
	}

	sess, err := sc.streamModel.FinalizeSession(req.SessionId)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"sessionId": sess.ID,
			"status":    string(sess.Status()),
			"message":   "Audio ready for translation. Connect to SSE endpoint.",
		})
	case errors.Is(err, models.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, sessionstore.ErrAlreadyFinalized), errors.Is(err, sessionstore.ErrNotCollecting):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to finalize stream",
			"details": err.Error(),
		})
	}
}

// HandleStreamTranslate subscribes the client to the session's translation
// events over SSE. Events are relayed in arrival order and the channel is
// closed after the terminal complete or error event.
func (sc *StreamController) HandleStreamTranslate(c *fiber.Ctx) error {
	sessionId := c.Params("sessionId")

	// a disconnected subscriber must not cancel the pipeline, so it does not
	// inherit the request context
	events, err := sc.translationModel.StreamEvents(context.Background(), sessionId)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or not ready"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	log := sc.logger.WithField("sessionId", sessionId)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for ev := range events {
			data, err := json.Marshal(ev.Data)
			if err != nil {
				log.WithError(err).Errorln("failed to marshal stream event")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
			if err := w.Flush(); err != nil {
				// client went away; keep draining so the pipeline still
				// finishes and stores its artifacts
				log.WithError(err).Debugln("subscriber disconnected")
				for range events {
				}
				return
			}
		}
	}))

	return nil
}

// HandleStreamAudio returns the synthesized audio and transcript, then hands
// the session to the janitor for deletion after the grace delay.
func (sc *StreamController) HandleStreamAudio(c *fiber.Ctx) error {
	sessionId := c.Params("sessionId")

	payload, audioData, err := sc.streamModel.SessionAudio(sessionId)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Audio not found for this session"})
	}

	sc.logger.Infof("sending audio for session: %s", sessionId)
	sc.janitorModel.ScheduleCleanup(sessionId)

	return c.JSON(fiber.Map{
		"audioData":      audioData,
		"originalText":   payload.OriginalText,
		"translatedText": payload.TranslatedText,
		"sourceLanguage": payload.SourceLanguage,
		"targetLanguage": payload.TargetLanguage,
	})
}
