package review

import "errors"

var (
	ErrNotFound      = errors.New("review not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyContent  = errors.New("review content is required")
	ErrForbidden     = errors.New("cannot delete someone else's review")
)

// Review is a product review left by a signed-in user. UserName is
// denormalized from the users table when listing so clients do not
// need a second lookup.
type Review struct {
	ReviewID  int    `json:"review_id"`
	ProductID int    `json:"product_id"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Summary aggregates review stats for one product.
type Summary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	SummaryByProduct(productID int) (Summary, error)
	Get(reviewID int) (Review, error)
	Create(r Review) (Review, error)
	Delete(reviewID int) error
}
