package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// EmotionResponse represents a detected emotion
type EmotionResponse struct {
	Emotion string `json:"emotion" example:"Happy"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error" example:"Image data not provided"`
}

// HealthResponse represents the health and readiness responses
type HealthResponse struct {
	Status     string `json:"status" example:"ready"`
	Version    string `json:"version,omitempty" example:"0.1.0"`
	Detector   string `json:"detector,omitempty" example:"pigo"`
	Classifier string `json:"classifier,omitempty" example:"onnx"`
}

// NewSwagger builds the API description served under /swagger
func NewSwagger(host string) *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Emotion API",
		Version:     "v1.0.0",
		Description: "Detects the dominant facial emotion in a base64-encoded image",
		Host:        host,
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /detect_emotion - Detect Emotion
		endpoint.New(
			endpoint.POST,
			"/detect_emotion",
			endpoint.WithTags("Emotion"),
			endpoint.WithSummary("Detect the emotion of the first face in an image"),
			endpoint.WithDescription("Decodes the base64 image form field, finds a face and classifies it as one of Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("application/x-www-form-urlencoded"), mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("image", parameter.Form, parameter.WithRequired(), parameter.WithDescription("Base64-encoded JPEG, PNG, GIF, BMP, TIFF or WebP image; a data URI prefix is accepted")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmotionResponse{}, "200", "Emotion detected"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Error: "Image data not provided"}, "400", "Bad Request"),
				response.New(ErrorResponse{Error: "Internal error message"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health - Liveness
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Service liveness"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ok", Version: "0.1.0"}, "200", "Service is up"),
			}),
		),

		// GET /ready - Readiness
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Service readiness and loaded models"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Models loaded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "loading"}, "503", "Service Unavailable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
