package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/dashboard", h.stats)
}

func (h *Handler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load dashboard"})
	}
	return c.JSON(fiber.Map{"dashboard": stats})
}
