package cart

import (
	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

// AddResult reports how an add was applied so the handler can answer 201
// for a fresh line and 200 for a merged one.
type AddResult struct {
	CartID int
	Merged bool
}

// Service owns cart validation; the catalog supplies the product and stock
// data it validates against.
type Service struct {
	repo    Repository
	catalog product.ServiceInterface
}

func NewService(repo Repository, catalog product.ServiceInterface) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// AddItem validates the product (and option stock, when an option is given)
// then upserts the line. The increment path deliberately does not re-check
// stock against the summed quantity; only update-quantity re-validates the
// absolute amount.
func (s *Service) AddItem(userID, productID int, optionID *int, qty int) (AddResult, error) {
	if qty < 1 {
		return AddResult{}, ErrInvalidQuantity
	}

	if _, err := s.catalog.GetByID(productID); err != nil {
		return AddResult{}, product.ErrNotFound
	}

	if optionID != nil {
		opt, err := s.catalog.GetOption(*optionID)
		if err != nil || opt.ProductID != productID {
			return AddResult{}, product.ErrOptionNotFound
		}
		if opt.Stock < qty {
			return AddResult{}, ErrInsufficientStock
		}
	}

	cartID, created, err := s.repo.Upsert(userID, productID, optionID, qty)
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{CartID: cartID, Merged: !created}, nil
}

// UpdateQuantity sets an owned line to an absolute quantity, re-validating
// stock against the new quantity when the line carries an option.
func (s *Service) UpdateQuantity(userID, cartID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	line, err := s.repo.GetLine(userID, cartID)
	if err != nil {
		return err
	}

	if line.OptionID != nil {
		opt, err := s.catalog.GetOption(*line.OptionID)
		if err != nil {
			return product.ErrOptionNotFound
		}
		if opt.Stock < qty {
			return ErrInsufficientStock
		}
	}

	return s.repo.UpdateQuantity(userID, cartID, qty)
}

// RemoveItem deletes an owned line. Removing a line that is already gone
// succeeds.
func (s *Service) RemoveItem(userID, cartID int) error {
	return s.repo.Remove(userID, cartID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}

func (s *Service) View(userID int) (View, error) {
	return s.repo.View(userID)
}
