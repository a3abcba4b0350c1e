package address

import "errors"

var ErrNotFound = errors.New("address not found")

// Address is a saved shipping destination, used by clients to prefill
// checkout. Rows are owned by the user who created them.
type Address struct {
	AddressID      int     `json:"address_id"`
	UserID         int     `json:"-"`
	RecipientName  string  `json:"recipient_name"`
	RecipientPhone string  `json:"recipient_phone"`
	PostalCode     string  `json:"postal_code"`
	Address        string  `json:"address"`
	DetailAddress  *string `json:"detail_address,omitempty"`
	IsDefault      bool    `json:"is_default"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	Get(userID, addressID int) (Address, error)
	Create(a Address) (Address, error)
	Update(userID, addressID int, a Address) (Address, error)
	Delete(userID, addressID int) error
	ClearDefault(userID int) error
}
