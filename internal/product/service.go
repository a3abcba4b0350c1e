package product

import "errors"

var (
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidGender   = errors.New("unknown gender")
	ErrInvalidStatus   = errors.New("unknown status")
	ErrMissingName     = errors.New("name is required")
	ErrInvalidCategory = errors.New("category does not exist")
	ErrNegativeStock   = errors.New("stock must not be negative")
)

// CategoryExpander resolves a category id to itself plus its direct
// children, so a parent-category filter also matches subcategory products.
type CategoryExpander interface {
	IDsWithChildren(id int) ([]int, error)
}

// ServiceInterface lets other packages (cart, review) depend on the catalog
// read path without binding to the concrete service.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	GetOption(id int) (Option, error)
	ListByIDs(ids []int) ([]Product, error)
}

// Service is the catalog facade: a query front for public browsing and the
// admin write path. It owns no state machine.
type Service struct {
	repo       Repository
	categories CategoryExpander
}

func NewService(repo Repository, categories CategoryExpander) *Service {
	return &Service{repo: repo, categories: categories}
}

// ListFilter is the raw, unexpanded form of a catalog query.
type ListFilter struct {
	CategoryID int
	Gender     string
	Search     string
	Sort       string
}

func (s *Service) ListActive(f ListFilter) ([]Product, error) {
	filter := Filter{Gender: f.Gender, Search: f.Search, Sort: f.Sort}

	if f.CategoryID > 0 {
		ids, err := s.categories.IDsWithChildren(f.CategoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = ids
	}

	return s.repo.ListActive(filter)
}

// GetByID serves the customer-facing read path, so products that have
// been taken off the shelf look like they never existed.
func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	if p.Status != StatusActive {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) GetOption(id int) (Option, error) {
	if id <= 0 {
		return Option{}, ErrOptionNotFound
	}
	return s.repo.GetOption(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product, options []Option) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}

	created, err := s.repo.Create(p)
	if err != nil {
		return Product{}, err
	}

	for _, o := range options {
		if o.Stock < 0 {
			return Product{}, ErrNegativeStock
		}
		o.ProductID = created.ID
		opt, err := s.repo.CreateOption(o)
		if err != nil {
			return Product{}, err
		}
		created.Options = append(created.Options, opt)
	}
	return created, nil
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) AddOption(productID int, o Option) (Option, error) {
	if o.Stock < 0 {
		return Option{}, ErrNegativeStock
	}
	if _, err := s.repo.GetByID(productID); err != nil {
		return Option{}, err
	}
	o.ProductID = productID
	return s.repo.CreateOption(o)
}

func (s *Service) UpdateOption(id int, o Option) (Option, error) {
	if o.Stock < 0 {
		return Option{}, ErrNegativeStock
	}
	return s.repo.UpdateOption(id, o)
}

func (s *Service) DeleteOption(id int) error {
	return s.repo.DeleteOption(id)
}

func validateProduct(p Product) error {
	if p.Name == "" {
		return ErrMissingName
	}
	if p.Price <= 0 || (p.DiscountPrice != nil && *p.DiscountPrice <= 0) {
		return ErrInvalidPrice
	}
	if p.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if !containsString(AllowedGenders, p.Gender) {
		return ErrInvalidGender
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return ErrInvalidStatus
	}
	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
