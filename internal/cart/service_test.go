package cart

import (
	"errors"
	"testing"

	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

func intPtr(v int) *int { return &v }

func newTestCatalog() product.ServiceInterface {
	products := []product.Product{
		{ID: 1, Name: "Wool Coat", Price: 10000, DiscountPrice: intPtr(8000), Status: product.StatusActive},
		{ID: 2, Name: "Linen Shirt", Price: 8000, Status: product.StatusActive},
	}
	options := []product.Option{
		{ID: 11, ProductID: 1, Name: "L", Stock: 5, AdditionalPrice: 1000},
		{ID: 12, ProductID: 1, Name: "S", Stock: 0, AdditionalPrice: 0},
		{ID: 21, ProductID: 2, Name: "M", Stock: 3, AdditionalPrice: 0},
	}
	return product.NewService(product.NewInMemoryRepository(products, options), nil)
}

func newTestService() (*Service, *InMemoryRepository) {
	catalog := newTestCatalog()
	repo := NewInMemoryRepository(catalog)
	return NewService(repo, catalog), repo
}

func TestAddItem_NewLine(t *testing.T) {
	service, _ := newTestService()

	res, err := service.AddItem(42, 1, intPtr(11), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Merged {
		t.Fatalf("expected a fresh line, got merged")
	}
	if res.CartID == 0 {
		t.Fatalf("expected a cart id")
	}
}

func TestAddItem_DuplicateAddMerges(t *testing.T) {
	service, _ := newTestService()

	first, err := service.AddItem(42, 1, intPtr(11), 1)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := service.AddItem(42, 1, intPtr(11), 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if !second.Merged {
		t.Fatalf("expected duplicate add to merge")
	}
	if second.CartID != first.CartID {
		t.Fatalf("expected merged line to keep cart id %d, got %d", first.CartID, second.CartID)
	}

	view, err := service.View(42)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", view.Items[0].Quantity)
	}
}

func TestAddItem_DifferentOptionsStaySeparate(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.AddItem(42, 1, intPtr(11), 1); err != nil {
		t.Fatalf("add with option: %v", err)
	}
	if _, err := service.AddItem(42, 1, nil, 1); err != nil {
		t.Fatalf("add without option: %v", err)
	}

	view, err := service.View(42)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected two distinct lines, got %d", len(view.Items))
	}
}

func TestAddItem_Validation(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.AddItem(42, 1, nil, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := service.AddItem(42, 999, nil, 1); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
	if _, err := service.AddItem(42, 1, intPtr(999), 1); !errors.Is(err, product.ErrOptionNotFound) {
		t.Fatalf("expected product.ErrOptionNotFound, got %v", err)
	}
	// option 21 belongs to product 2, not product 1
	if _, err := service.AddItem(42, 1, intPtr(21), 1); !errors.Is(err, product.ErrOptionNotFound) {
		t.Fatalf("expected mismatch to report option not found, got %v", err)
	}
	if _, err := service.AddItem(42, 1, intPtr(12), 1); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for empty stock, got %v", err)
	}
	if _, err := service.AddItem(42, 1, intPtr(11), 6); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock over stock, got %v", err)
	}
}

func TestAddItem_StockBoundary(t *testing.T) {
	service, _ := newTestService()

	// quantity exactly equal to stock is allowed
	if _, err := service.AddItem(42, 1, intPtr(11), 5); err != nil {
		t.Fatalf("expected add at stock boundary to succeed, got %v", err)
	}
}

func TestUpdateQuantity_RevalidatesStock(t *testing.T) {
	service, _ := newTestService()

	res, err := service.AddItem(42, 1, intPtr(11), 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := service.UpdateQuantity(42, res.CartID, 6); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected stock re-validation on update, got %v", err)
	}
	if err := service.UpdateQuantity(42, res.CartID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := service.UpdateQuantity(42, res.CartID, 4); err != nil {
		t.Fatalf("valid update: %v", err)
	}

	view, _ := service.View(42)
	if view.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4 after update, got %d", view.Items[0].Quantity)
	}
}

func TestUpdateQuantity_OtherUsersLineInvisible(t *testing.T) {
	service, _ := newTestService()

	res, err := service.AddItem(42, 2, nil, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := service.UpdateQuantity(7, res.CartID, 2); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected foreign line to be invisible, got %v", err)
	}
}

func TestRemoveItem_AbsentLineIsNoError(t *testing.T) {
	service, _ := newTestService()

	if err := service.RemoveItem(42, 12345); err != nil {
		t.Fatalf("removing absent line should succeed, got %v", err)
	}
}

func TestView_Pricing(t *testing.T) {
	service, _ := newTestService()

	// discounted 8000 + option 1000, times 2 = 18000
	if _, err := service.AddItem(42, 1, intPtr(11), 2); err != nil {
		t.Fatalf("add coat: %v", err)
	}
	// 8000 times 1
	if _, err := service.AddItem(42, 2, nil, 1); err != nil {
		t.Fatalf("add shirt: %v", err)
	}

	view, err := service.View(42)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", view.ItemCount)
	}

	coat := view.Items[0]
	if coat.UnitPrice != 8000 || coat.AdditionalPrice != 1000 {
		t.Fatalf("unexpected coat pricing: unit=%d additional=%d", coat.UnitPrice, coat.AdditionalPrice)
	}
	if coat.ItemPrice != 9000 || coat.ItemTotal != 18000 {
		t.Fatalf("unexpected coat totals: price=%d total=%d", coat.ItemPrice, coat.ItemTotal)
	}
	if view.TotalPrice != 26000 {
		t.Fatalf("expected total 26000, got %d", view.TotalPrice)
	}
}

func TestClear_OnlyOwnLines(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.AddItem(42, 1, intPtr(11), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := service.AddItem(7, 2, nil, 1); err != nil {
		t.Fatalf("add other user: %v", err)
	}

	if err := service.Clear(42); err != nil {
		t.Fatalf("clear: %v", err)
	}

	mine, _ := service.View(42)
	if len(mine.Items) != 0 {
		t.Fatalf("expected cleared cart, got %d items", len(mine.Items))
	}
	theirs, _ := service.View(7)
	if len(theirs.Items) != 1 {
		t.Fatalf("expected other user's cart untouched, got %d items", len(theirs.Items))
	}
}
