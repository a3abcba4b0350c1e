package review

import (
	"strings"

	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
)

type Service struct {
	repo    Repository
	catalog product.ServiceInterface
}

func NewService(repo Repository, catalog product.ServiceInterface) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// ListForProduct returns the reviews plus an aggregate summary. The
// product must exist so the endpoint can 404 rather than return an
// empty list for a bogus id.
func (s *Service) ListForProduct(productID int) ([]Review, Summary, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return nil, Summary{}, err
	}
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	summary, err := s.repo.SummaryByProduct(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	return reviews, summary, nil
}

func (s *Service) Create(p auth.Principal, productID, rating int, content string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if strings.TrimSpace(content) == "" {
		return Review{}, ErrEmptyContent
	}
	if _, err := s.catalog.GetByID(productID); err != nil {
		return Review{}, err
	}
	return s.repo.Create(Review{
		ProductID: productID,
		UserID:    p.UserID,
		Rating:    rating,
		Content:   content,
	})
}

// Delete removes a review. Owners may delete their own reviews;
// admins may delete any review.
func (s *Service) Delete(p auth.Principal, reviewID int) error {
	rv, err := s.repo.Get(reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != p.UserID && !p.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.Delete(reviewID)
}
