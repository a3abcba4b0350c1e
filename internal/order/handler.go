package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.placeOrder)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:orderId<int>", h.getOrder)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/orders", h.listAllOrders)
	admin.Put("/orders/:orderId<int>/status", h.updateStatus)
}

type orderItemInput struct {
	ProductID int  `json:"product_id"`
	OptionID  *int `json:"option_id,omitempty"`
	Quantity  int  `json:"quantity"`
	Price     int  `json:"price"`
}

type placeOrderRequest struct {
	RecipientName  string           `json:"recipient_name"`
	RecipientPhone string           `json:"recipient_phone"`
	PostalCode     string           `json:"postal_code"`
	Address        string           `json:"address"`
	DetailAddress  *string          `json:"detail_address,omitempty"`
	Message        *string          `json:"message,omitempty"`
	TotalPrice     int              `json:"total_price"`
	Items          []orderItemInput `json:"items"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	items := make([]Item, 0, len(payload.Items))
	for _, in := range payload.Items {
		items = append(items, Item{
			ProductID: in.ProductID,
			OptionID:  in.OptionID,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	orderID, err := h.service.PlaceOrder(c.UserContext(), p.UserID, PlaceInput{
		RecipientName:  payload.RecipientName,
		RecipientPhone: payload.RecipientPhone,
		PostalCode:     payload.PostalCode,
		Address:        payload.Address,
		DetailAddress:  payload.DetailAddress,
		Message:        payload.Message,
		TotalPrice:     payload.TotalPrice,
		Items:          items,
	})
	if err != nil {
		return statusForOrderErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "order placed", "order_id": orderID})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(p.UserID)
	if err != nil {
		return statusForOrderErr(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetDetail(p.UserID, orderID)
	if err != nil {
		return statusForOrderErr(c, err)
	}
	return c.JSON(fiber.Map{"order": ord})
}

func (h *Handler) listAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return statusForOrderErr(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(orderID, payload.Status); err != nil {
		return statusForOrderErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}

func statusForOrderErr(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case ErrMissingFields, ErrInvalidItems, ErrEmptyCart, ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": ErrOrderFailed.Error()})
	}
}
