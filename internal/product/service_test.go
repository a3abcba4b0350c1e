package product

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

type stubExpander struct {
	ids map[int][]int
	err error
}

func (s stubExpander) IDsWithChildren(id int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids[id], nil
}

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wool Coat", Gender: "women", CategoryID: 2, CategoryName: "Outerwear",
			Price: 10000, DiscountPrice: intPtr(8000), Status: StatusActive, CreatedAt: "2026-01-03"},
		{ID: 2, Name: "Linen Shirt", Gender: "men", CategoryID: 3, CategoryName: "Tops",
			Price: 8000, Status: StatusActive, CreatedAt: "2026-01-02"},
		{ID: 3, Name: "Silk Scarf", Gender: "unisex", CategoryID: 4, CategoryName: "Accessories",
			Price: 3000, Status: StatusActive, CreatedAt: "2026-01-01"},
		{ID: 4, Name: "Retired Coat", Gender: "women", CategoryID: 2, CategoryName: "Outerwear",
			Price: 5000, Status: StatusInactive, CreatedAt: "2026-01-04"},
	}
}

func newCatalogService(exp CategoryExpander) *Service {
	return NewService(NewInMemoryRepository(seedProducts(), nil), exp)
}

func TestListActive_ExpandsCategoryOneLevel(t *testing.T) {
	// category 1 is a parent of 2 and 3
	exp := stubExpander{ids: map[int][]int{1: {1, 2, 3}}}
	service := newCatalogService(exp)

	products, err := service.ListActive(ListFilter{CategoryID: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected coat and shirt under expanded category, got %d", len(products))
	}
	for _, p := range products {
		if p.CategoryID != 2 && p.CategoryID != 3 {
			t.Fatalf("unexpected category %d in results", p.CategoryID)
		}
	}
}

func TestListActive_ExcludesInactive(t *testing.T) {
	service := newCatalogService(stubExpander{})

	products, err := service.ListActive(ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, p := range products {
		if p.Status != StatusActive {
			t.Fatalf("inactive product %d leaked into listing", p.ID)
		}
	}
}

func TestGetByID_HidesInactive(t *testing.T) {
	service := newCatalogService(stubExpander{})

	if _, err := service.GetByID(1); err != nil {
		t.Fatalf("active product: %v", err)
	}
	if _, err := service.GetByID(4); err != ErrNotFound {
		t.Fatalf("inactive product err = %v, want ErrNotFound", err)
	}
	if _, err := service.GetByID(0); err != ErrNotFound {
		t.Fatalf("zero id err = %v, want ErrNotFound", err)
	}
}

func TestListByIDs_PreservesRequestOrder(t *testing.T) {
	service := newCatalogService(stubExpander{})

	products, err := service.ListByIDs([]int{3, 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 || products[0].ID != 3 || products[1].ID != 1 {
		t.Fatalf("unexpected order %+v", products)
	}
}

func TestListActive_SearchRanksPrefixFirst(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: 1, Name: "Classic Coat Hanger", Status: StatusActive, Price: 100, CreatedAt: "2026-01-02"},
		{ID: 2, Name: "Coat", Status: StatusActive, Price: 100, CreatedAt: "2026-01-01"},
	}, nil)
	service := NewService(repo, stubExpander{})

	products, err := service.ListActive(ListFilter{Search: "coat"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(products))
	}
	if products[0].Name != "Coat" {
		t.Fatalf("expected prefix match ranked first, got %q", products[0].Name)
	}
}

func TestListActive_PriceSortUsesEffectivePrice(t *testing.T) {
	service := newCatalogService(stubExpander{})

	products, err := service.ListActive(ListFilter{Sort: SortPriceAsc})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	// scarf 3000, shirt 8000, coat effective 8000 (discounted from 10000)
	if products[0].ID != 3 {
		t.Fatalf("expected cheapest first, got product %d", products[0].ID)
	}
	last := products[len(products)-1]
	if last.EffectivePrice() < products[0].EffectivePrice() {
		t.Fatalf("ascending sort violated")
	}
}

func TestListActive_GenderFilter(t *testing.T) {
	service := newCatalogService(stubExpander{})

	products, err := service.ListActive(ListFilter{Gender: "men"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(products) != 1 || products[0].ID != 2 {
		t.Fatalf("expected only the men's shirt, got %+v", products)
	}
}

func TestCreate_Validation(t *testing.T) {
	service := newCatalogService(stubExpander{})

	base := Product{Name: "Denim Jacket", Gender: "unisex", CategoryID: 2, Price: 12000, Status: StatusActive}

	cases := []struct {
		name   string
		mutate func(*Product)
		want   error
	}{
		{"missing name", func(p *Product) { p.Name = "" }, ErrMissingName},
		{"zero price", func(p *Product) { p.Price = 0 }, ErrInvalidPrice},
		{"zero discount", func(p *Product) { p.DiscountPrice = intPtr(0) }, ErrInvalidPrice},
		{"bad gender", func(p *Product) { p.Gender = "kids" }, ErrInvalidGender},
		{"bad status", func(p *Product) { p.Status = "archived" }, ErrInvalidStatus},
		{"no category", func(p *Product) { p.CategoryID = 0 }, ErrInvalidCategory},
	}
	for _, tc := range cases {
		p := base
		tc.mutate(&p)
		if _, err := service.Create(p, nil); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	created, err := service.Create(base, []Option{{Name: "M", Stock: 3}})
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if created.ID == 0 || len(created.Options) != 1 {
		t.Fatalf("expected created product with option, got %+v", created)
	}
}

func TestAddOption_RejectsNegativeStock(t *testing.T) {
	service := newCatalogService(stubExpander{})

	if _, err := service.AddOption(1, Option{Name: "M", Stock: -1}); !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if _, err := service.AddOption(999, Option{Name: "M", Stock: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
}
