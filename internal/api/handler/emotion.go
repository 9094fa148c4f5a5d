package handler

import (
	"context"
	"image"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/vision"
)

// imageField is the form field carrying the base64 image
const imageField = "image"

// EmotionService interface for the service
type EmotionService interface {
	DetectEmotion(ctx context.Context, img image.Image) (domain.Emotion, error)
}

// EmotionHandler handles emotion detection requests
type EmotionHandler struct {
	service EmotionService
	logger  *slog.Logger
}

// NewEmotionHandler creates a new EmotionHandler instance
func NewEmotionHandler(service EmotionService, logger *slog.Logger) *EmotionHandler {
	return &EmotionHandler{
		service: service,
		logger:  logger,
	}
}

// EmotionResponse response for detect_emotion endpoint
type EmotionResponse struct {
	Emotion string `json:"emotion"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetectEmotion handles POST /detect_emotion
func (h *EmotionHandler) DetectEmotion(c *fiber.Ctx) error {
	payload, ok := formImage(c)
	if !ok {
		return domain.ErrImageNotProvided
	}

	img, format, err := vision.DecodeBase64Image(payload)
	if err != nil {
		return domain.ErrImageDecode.WithError(err)
	}

	b := img.Bounds()
	h.logger.Info("decoded image",
		slog.Any("request_id", c.Locals("requestid")),
		slog.String("format", format),
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
	)

	emotion, err := h.service.DetectEmotion(c.UserContext(), img)
	if err != nil {
		return err
	}

	h.logger.Info("detected emotion",
		slog.Any("request_id", c.Locals("requestid")),
		slog.String("emotion", string(emotion)),
	)

	return c.JSON(EmotionResponse{
		Emotion: string(emotion),
	})
}

// formImage reads the image field from a urlencoded or multipart body.
// The bool is false only when the field is absent; an empty value is
// present and fails later as undecodable.
func formImage(c *fiber.Ctx) (string, bool) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return "", false
		}
		values, ok := form.Value[imageField]
		if !ok || len(values) == 0 {
			return "", false
		}
		return values[0], true
	}

	args := c.Request().PostArgs()
	if !args.Has(imageField) {
		return "", false
	}
	return string(args.Peek(imageField)), true
}
