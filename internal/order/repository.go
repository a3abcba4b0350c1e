package order

import "context"

// Repository defines persistence operations for orders.
type Repository interface {
	// PlaceOrder runs the whole placement inside one transaction: it
	// requires a non-empty cart for the user, inserts the order header
	// and its items, deletes the user's cart lines and commits. Any
	// failure rolls the whole thing back.
	PlaceOrder(ctx context.Context, ord Order, items []Item) (int, error)
	ListByUser(userID int) ([]Order, error)
	GetDetail(userID, orderID int) (Order, error)

	ListAll() ([]Order, error)
	UpdateStatus(orderID int, status string) error
}
