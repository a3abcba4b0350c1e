package cart

import (
	"sort"
	"sync"

	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

// Repository persists cart lines. Every call round-trips to the store;
// there is no in-memory cache in front of it.
type Repository interface {
	// Upsert inserts a new line or, when a line for the same
	// (user, product, option) key exists, atomically increments its
	// quantity. It reports whether a new line was created.
	Upsert(userID, productID int, optionID *int, qty int) (cartID int, created bool, err error)
	GetLine(userID, cartID int) (Line, error)
	UpdateQuantity(userID, cartID, qty int) error
	// Remove deletes an owned line; removing an absent line is not an error.
	Remove(userID, cartID int) error
	Clear(userID int) error
	View(userID int) (View, error)
}

// InMemoryRepository is used for tests and local scenarios. It resolves
// product data through the given catalog so views carry real prices.
type InMemoryRepository struct {
	mu      sync.RWMutex
	lines   []Line
	nextID  int
	catalog product.ServiceInterface
}

func NewInMemoryRepository(catalog product.ServiceInterface) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, catalog: catalog}
}

func sameOption(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r *InMemoryRepository) Upsert(userID, productID int, optionID *int, qty int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.lines {
		l := &r.lines[i]
		if l.UserID == userID && l.ProductID == productID && sameOption(l.OptionID, optionID) {
			l.Quantity += qty
			return l.CartID, false, nil
		}
	}

	line := Line{CartID: r.nextID, UserID: userID, ProductID: productID, OptionID: optionID, Quantity: qty}
	r.nextID++
	r.lines = append(r.lines, line)
	return line.CartID, true, nil
}

func (r *InMemoryRepository) GetLine(userID, cartID int) (Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.lines {
		if l.CartID == cartID && l.UserID == userID {
			return l, nil
		}
	}
	return Line{}, ErrLineNotFound
}

func (r *InMemoryRepository) UpdateQuantity(userID, cartID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		if r.lines[i].CartID == cartID && r.lines[i].UserID == userID {
			r.lines[i].Quantity = qty
			return nil
		}
	}
	return ErrLineNotFound
}

func (r *InMemoryRepository) Remove(userID, cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lines {
		if r.lines[i].CartID == cartID && r.lines[i].UserID == userID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.lines[:0]
	for _, l := range r.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}

func (r *InMemoryRepository) View(userID int) (View, error) {
	r.mu.RLock()
	lines := make([]Line, 0)
	for _, l := range r.lines {
		if l.UserID == userID {
			lines = append(lines, l)
		}
	}
	r.mu.RUnlock()

	sort.Slice(lines, func(i, j int) bool { return lines[i].CartID < lines[j].CartID })

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		p, err := r.catalog.GetByID(l.ProductID)
		if err != nil {
			return View{}, err
		}
		it := Item{Line: l, ProductName: p.Name, ImageURL: p.ImageURL, UnitPrice: p.EffectivePrice()}
		if l.OptionID != nil {
			o, err := r.catalog.GetOption(*l.OptionID)
			if err != nil {
				return View{}, err
			}
			it.OptionName = &o.Name
			it.AdditionalPrice = o.AdditionalPrice
		}
		items = append(items, it)
	}

	return BuildView(items), nil
}
