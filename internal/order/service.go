package order

import (
	"context"
	"errors"

	"github.com/hyejinmoon/fashion-shop-backend/internal/logger"
	"go.uber.org/zap"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PlaceInput carries the checkout payload. Item prices are the
// client-submitted snapshot; they are persisted as-is and never re-derived
// from the catalog afterwards.
type PlaceInput struct {
	RecipientName  string
	RecipientPhone string
	PostalCode     string
	Address        string
	DetailAddress  *string
	Message        *string
	TotalPrice     int
	Items          []Item
}

// PlaceOrder converts the cart into a durable order. The repository runs
// header insert, item inserts and cart clear in one transaction; anything
// that fails there surfaces as the generic ErrOrderFailed.
func (s *Service) PlaceOrder(ctx context.Context, userID int, in PlaceInput) (int, error) {
	if userID <= 0 {
		return 0, ErrOrderFailed
	}
	if in.RecipientName == "" || in.RecipientPhone == "" || in.PostalCode == "" || in.Address == "" {
		return 0, ErrMissingFields
	}
	if len(in.Items) == 0 || in.TotalPrice < 0 {
		return 0, ErrInvalidItems
	}
	for _, item := range in.Items {
		if item.ProductID <= 0 || item.Quantity < 1 || item.Price < 0 {
			return 0, ErrInvalidItems
		}
	}

	ord := Order{
		UserID:         userID,
		TotalPrice:     in.TotalPrice,
		Status:         StatusPending,
		RecipientName:  in.RecipientName,
		RecipientPhone: in.RecipientPhone,
		PostalCode:     in.PostalCode,
		Address:        in.Address,
		DetailAddress:  in.DetailAddress,
		Message:        in.Message,
	}

	orderID, err := s.repo.PlaceOrder(ctx, ord, in.Items)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return 0, ErrEmptyCart
		}
		logger.FromCtx(ctx).Error("order transaction failed",
			zap.Int("user_id", userID), zap.Error(err))
		return 0, ErrOrderFailed
	}
	return orderID, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) GetDetail(userID, orderID int) (Order, error) {
	return s.repo.GetDetail(userID, orderID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

// UpdateStatus is the only mutation an order admits after creation.
func (s *Service) UpdateStatus(orderID int, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(orderID, status)
}
