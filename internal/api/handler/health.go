package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint
const Version = "0.1.0"

// ProviderInfo exposes the names of the loaded models
type ProviderInfo interface {
	Detector() string
	Classifier() string
}

type HealthHandler struct {
	providers ProviderInfo
}

func NewHealthHandler(providers ProviderInfo) *HealthHandler {
	return &HealthHandler{providers: providers}
}

type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	Detector   string `json:"detector,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// Ready reports ready once both models are loaded
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.providers == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "loading",
		})
	}
	return c.JSON(HealthResponse{
		Status:     "ready",
		Detector:   h.providers.Detector(),
		Classifier: h.providers.Classifier(),
	})
}
