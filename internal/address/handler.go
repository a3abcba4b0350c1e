package address

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/addresses", h.list)
	app.Post("/api/v1/addresses", h.create)
	app.Put("/api/v1/addresses/:addressId<int>", h.update)
	app.Delete("/api/v1/addresses/:addressId<int>", h.remove)
}

type addressRequest struct {
	RecipientName  string  `json:"recipient_name"`
	RecipientPhone string  `json:"recipient_phone"`
	PostalCode     string  `json:"postal_code"`
	Address        string  `json:"address"`
	DetailAddress  *string `json:"detail_address"`
	IsDefault      bool    `json:"is_default"`
}

func (req *addressRequest) toAddress() Address {
	return Address{
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		PostalCode:     req.PostalCode,
		Address:        req.Address,
		DetailAddress:  req.DetailAddress,
		IsDefault:      req.IsDefault,
	}
}

func (h *Handler) list(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addresses, err := h.service.List(p.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list addresses"})
	}
	return c.JSON(fiber.Map{"addresses": addresses})
}

func (h *Handler) create(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(p.UserID, payload.toAddress())
	if err != nil {
		return c.Status(statusForAddressErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "address created", "address": created})
}

func (h *Handler) update(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addressID, err := strconv.Atoi(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(p.UserID, addressID, payload.toAddress())
	if err != nil {
		return c.Status(statusForAddressErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "address updated", "address": updated})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addressID, err := strconv.Atoi(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}

	if err := h.service.Delete(p.UserID, addressID); err != nil {
		return c.Status(statusForAddressErr(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "address deleted"})
}

func statusForAddressErr(err error) int {
	switch err {
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrMissingFields:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
