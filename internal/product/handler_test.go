package product

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeCatalogApp() (*fiber.App, *Service) {
	service := newCatalogService(stubExpander{ids: map[int][]int{1: {1, 2, 3}}})
	handler := NewHandler(service)

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app, service
}

func TestListProductsRoute(t *testing.T) {
	app, _ := makeCatalogApp()

	req := httptest.NewRequest("GET", "/api/v1/products?gender=men", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Products []Product `json:"products"`
		Count    int       `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Products[0].Gender != "men" {
		t.Fatalf("unexpected listing %+v", body)
	}
}

func TestListProductsRoute_CategoryExpansion(t *testing.T) {
	app, _ := makeCatalogApp()

	req := httptest.NewRequest("GET", "/api/v1/products?category=1", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 {
		t.Fatalf("expected 2 products under expanded category, got %d", body.Count)
	}

	// non-numeric category is rejected at the boundary
	req2 := httptest.NewRequest("GET", "/api/v1/products?category=coats", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad category, got %d", res2.StatusCode)
	}
}

func TestGetProductRoute(t *testing.T) {
	app, _ := makeCatalogApp()

	req := httptest.NewRequest("GET", "/api/v1/products/1", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Product        Product `json:"product"`
		EffectivePrice int     `json:"effective_price"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.EffectivePrice != 8000 {
		t.Fatalf("expected discounted price 8000, got %d", body.EffectivePrice)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/products/999", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res2.StatusCode)
	}

	// inactive products are invisible on the public detail route
	req3 := httptest.NewRequest("GET", "/api/v1/products/4", nil)
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for inactive product, got %d", res3.StatusCode)
	}

	// the int constraint rejects non-numeric ids at the router
	req4 := httptest.NewRequest("GET", "/api/v1/products/abc", nil)
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for non-numeric id, got %d", res4.StatusCode)
	}
}

func TestAdminProductRoutes_CreateAndValidation(t *testing.T) {
	app, service := makeCatalogApp()

	body := `{"name":"Denim Jacket","gender":"unisex","category_id":2,"price":12000,
        "options":[{"name":"M","stock":3,"additional_price":500}]}`
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var created struct {
		Product Product `json:"product"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Product.Status != StatusActive {
		t.Fatalf("expected default status active, got %q", created.Product.Status)
	}
	if len(created.Product.Options) != 1 {
		t.Fatalf("expected option created with product")
	}

	if _, err := service.GetByID(created.Product.ID); err != nil {
		t.Fatalf("created product not readable: %v", err)
	}

	// invalid option payload is rejected before touching the store
	bad := `{"name":"Denim Jacket","gender":"unisex","category_id":2,"price":12000,
        "options":[{"name":"","stock":3}]}`
	req2 := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(bad))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad option, got %d", res2.StatusCode)
	}
}
