package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

// Handler delegates cart operations to the cart service. This keeps
// cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addItem)
	app.Put("/api/v1/cart/:cartId<int>", h.updateQuantity)
	app.Delete("/api/v1/cart/:cartId<int>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID int  `json:"product_id"`
	OptionID  *int `json:"option_id,omitempty"`
	Quantity  int  `json:"quantity,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product_id"})
	}
	qty := payload.Quantity
	if qty == 0 {
		qty = 1
	}

	result, err := h.service.AddItem(p.UserID, payload.ProductID, payload.OptionID, qty)
	if err != nil {
		return statusForCartErr(c, err)
	}

	if result.Merged {
		return c.JSON(fiber.Map{"message": "cart updated", "cart_id": result.CartID})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "added to cart", "cart_id": result.CartID})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cartID, err := strconv.Atoi(c.Params("cartId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cart id"})
	}

	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateQuantity(p.UserID, cartID, payload.Quantity); err != nil {
		return statusForCartErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "quantity updated"})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cartID, err := strconv.Atoi(c.Params("cartId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cart id"})
	}

	if err := h.service.RemoveItem(p.UserID, cartID); err != nil {
		return statusForCartErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "item removed"})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(p.UserID); err != nil {
		return statusForCartErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart cleared"})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	view, err := h.service.View(p.UserID)
	if err != nil {
		return statusForCartErr(c, err)
	}
	return c.JSON(view)
}

func statusForCartErr(c *fiber.Ctx, err error) error {
	switch err {
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case product.ErrOptionNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "option not found"})
	case ErrLineNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart line not found"})
	case ErrInvalidQuantity, ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
}
