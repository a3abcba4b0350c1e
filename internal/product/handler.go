package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the public catalog and the admin product CRUD.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/:id<int>", h.getProduct)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/products", h.createProduct)
	admin.Put("/products/:id<int>", h.updateProduct)
	admin.Delete("/products/:id<int>", h.deleteProduct)
	admin.Post("/products/:id<int>/options", h.addOption)
	admin.Put("/options/:id<int>", h.updateOption)
	admin.Delete("/options/:id<int>", h.deleteOption)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	filter := ListFilter{
		Gender: c.Query("gender"),
		Search: c.Query("search"),
		Sort:   c.Query("sort", SortLatest),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category"})
		}
		filter.CategoryID = id
	}

	products, err := h.service.ListActive(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not list products"})
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"product": p, "effective_price": p.EffectivePrice()})
}

// optionInput is the validated form of an option payload; it is parsed once
// at the boundary rather than inside the write path.
type optionInput struct {
	Name            string `json:"name"`
	Stock           int    `json:"stock"`
	AdditionalPrice int    `json:"additional_price"`
}

type productRequest struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Gender        string        `json:"gender"`
	CategoryID    int           `json:"category_id"`
	Price         int           `json:"price"`
	DiscountPrice *int          `json:"discount_price"`
	Status        string        `json:"status"`
	ImageURL      *string       `json:"image_url"`
	Options       []optionInput `json:"options"`
}

func (req *productRequest) toProduct() Product {
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	return Product{
		Name:          req.Name,
		Description:   req.Description,
		Gender:        req.Gender,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Status:        status,
		ImageURL:      req.ImageURL,
	}
}

func (req *productRequest) toOptions() ([]Option, error) {
	options := make([]Option, 0, len(req.Options))
	for _, in := range req.Options {
		if in.Name == "" {
			return nil, ErrMissingName
		}
		if in.Stock < 0 {
			return nil, ErrNegativeStock
		}
		options = append(options, Option{Name: in.Name, Stock: in.Stock, AdditionalPrice: in.AdditionalPrice})
	}
	return options, nil
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	options, err := payload.toOptions()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(payload.toProduct(), options)
	if err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "product created", "product": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, payload.toProduct())
	if err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "product updated", "product": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	if err := h.service.Delete(id); err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func (h *Handler) addOption(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(optionInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "option name is required"})
	}

	created, err := h.service.AddOption(productID, Option{
		Name: payload.Name, Stock: payload.Stock, AdditionalPrice: payload.AdditionalPrice,
	})
	if err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "option created", "option": created})
}

func (h *Handler) updateOption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid option id"})
	}

	payload := new(optionInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateOption(id, Option{
		Name: payload.Name, Stock: payload.Stock, AdditionalPrice: payload.AdditionalPrice,
	})
	if err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "option updated", "option": updated})
}

func (h *Handler) deleteOption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid option id"})
	}

	if err := h.service.DeleteOption(id); err != nil {
		return statusForCatalogErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "option deleted"})
}

func statusForCatalogErr(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrOptionNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "option not found"})
	case ErrMissingName, ErrInvalidPrice, ErrInvalidGender, ErrInvalidStatus, ErrInvalidCategory, ErrNegativeStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
}
