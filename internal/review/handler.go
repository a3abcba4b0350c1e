package review

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:productId<int>/reviews", h.listForProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products/:productId<int>/reviews", h.create)
	app.Delete("/api/v1/reviews/:reviewId<int>", h.remove)
}

func (h *Handler) listForProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	reviews, summary, err := h.service.ListForProduct(productID)
	if err != nil {
		return c.Status(statusForReviewErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"reviews": reviews, "summary": summary})
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(createReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(p, productID, payload.Rating, payload.Content)
	if err != nil {
		return c.Status(statusForReviewErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "review created", "review": created})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	reviewID, err := strconv.Atoi(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid review id"})
	}

	if err := h.service.Delete(p, reviewID); err != nil {
		return c.Status(statusForReviewErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}

func statusForReviewErr(err error) int {
	switch err {
	case ErrNotFound, product.ErrNotFound:
		return fiber.StatusNotFound
	case ErrInvalidRating, ErrEmptyContent:
		return fiber.StatusBadRequest
	case ErrForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
