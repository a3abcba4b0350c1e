package order

import "errors"

// Order statuses. Transitions are admin-driven; the happy path walks
// pending -> paid -> shipping -> delivered.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipping  = "shipping"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var allStatuses = []string{StatusPending, StatusPaid, StatusShipping, StatusDelivered, StatusCancelled}

func ValidStatus(s string) bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("missing required shipping fields")
	ErrInvalidItems  = errors.New("order items are invalid")
	ErrInvalidStatus = errors.New("unknown order status")
	// ErrOrderFailed hides transaction failures behind a generic message;
	// rollback guarantees no partial order is observable.
	ErrOrderFailed = errors.New("order could not be placed")
)

// Order is immutable once created except for its status field.
type Order struct {
	OrderID        int     `json:"order_id"`
	UserID         int     `json:"user_id"`
	TotalPrice     int     `json:"total_price"`
	Status         string  `json:"status"`
	RecipientName  string  `json:"recipient_name"`
	RecipientPhone string  `json:"recipient_phone"`
	PostalCode     string  `json:"postal_code"`
	Address        string  `json:"address"`
	DetailAddress  *string `json:"detail_address,omitempty"`
	Message        *string `json:"message,omitempty"`
	ItemCount      int     `json:"item_count,omitempty"`
	Items          []Item  `json:"items,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// Item is a line snapshot. Price is captured at order time and must never
// be recomputed from the current product price.
type Item struct {
	OrderID     int    `json:"-"`
	ProductID   int    `json:"product_id"`
	OptionID    *int   `json:"option_id,omitempty"`
	ProductName string `json:"name,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}
