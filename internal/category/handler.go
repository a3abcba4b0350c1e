package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.listCategories)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/categories", h.createCategory)
	admin.Put("/categories/:id<int>", h.updateCategory)
	admin.Delete("/categories/:id<int>", h.deleteCategory)
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

type categoryRequest struct {
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
	Ord      int    `json:"ord"`
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Category{Name: payload.Name, ParentID: payload.ParentID, Ord: payload.Ord})
	if err != nil {
		return statusForCategoryErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "category created", "category": created})
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}

	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Category{Name: payload.Name, ParentID: payload.ParentID, Ord: payload.Ord})
	if err != nil {
		return statusForCategoryErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "category updated", "category": updated})
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}

	if err := h.service.Delete(id); err != nil {
		return statusForCategoryErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}

func statusForCategoryErr(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
	case ErrMissingName:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
}
