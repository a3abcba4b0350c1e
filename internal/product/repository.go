package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrOptionNotFound = errors.New("option not found")
)

type Repository interface {
	ListActive(f Filter) ([]Product, error)
	ListByIDs(ids []int) ([]Product, error)
	GetByID(id int) (Product, error)
	GetOption(id int) (Option, error)
	ListOptions(productID int) ([]Option, error)

	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	CreateOption(o Option) (Option, error)
	UpdateOption(id int, o Option) (Option, error)
	DeleteOption(id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	products   []Product
	options    []Option
	nextID     int
	nextOptID  int
	categories map[int]string
}

func NewInMemoryRepository(seed []Product, options []Option) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, nextOptID: 1, categories: map[int]string{}}
	for _, p := range seed {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.products = append(r.products, p)
	}
	for _, o := range options {
		if o.ID >= r.nextOptID {
			r.nextOptID = o.ID + 1
		}
		r.options = append(r.options, o)
	}
	return r
}

func (r *InMemoryRepository) ListActive(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.products {
		if p.Status != StatusActive {
			continue
		}
		if len(f.CategoryIDs) > 0 && !containsInt(f.CategoryIDs, p.CategoryID) {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) &&
				!strings.Contains(strings.ToLower(p.CategoryName), needle) {
				continue
			}
		}
		out = append(out, p)
	}

	switch {
	case f.Search != "":
		needle := strings.ToLower(f.Search)
		sort.SliceStable(out, func(i, j int) bool {
			pi := strings.HasPrefix(strings.ToLower(out[i].Name), needle)
			pj := strings.HasPrefix(strings.ToLower(out[j].Name), needle)
			if pi != pj {
				return pi
			}
			return out[i].CreatedAt > out[j].CreatedAt
		})
	case f.Sort == SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].EffectivePrice() < out[j].EffectivePrice() })
	case f.Sort == SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].EffectivePrice() > out[j].EffectivePrice() })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	}

	return out, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			opts, _ := r.listOptionsLocked(id)
			p.Options = opts
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetOption(id int) (Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.options {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, ErrOptionNotFound
}

func (r *InMemoryRepository) ListOptions(productID int) ([]Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listOptionsLocked(productID)
}

func (r *InMemoryRepository) listOptionsLocked(productID int) ([]Option, error) {
	out := make([]Option, 0)
	for _, o := range r.options {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p.ID = id
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) CreateOption(o Option) (Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == 0 {
		o.ID = r.nextOptID
		r.nextOptID++
	}
	r.options = append(r.options, o)
	return o, nil
}

func (r *InMemoryRepository) UpdateOption(id int, o Option) (Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.options {
		if r.options[i].ID == id {
			o.ID = id
			r.options[i] = o
			return o, nil
		}
	}
	return Option{}, ErrOptionNotFound
}

func (r *InMemoryRepository) DeleteOption(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.options {
		if r.options[i].ID == id {
			r.options = append(r.options[:i], r.options[i+1:]...)
			return nil
		}
	}
	return ErrOptionNotFound
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
