package cart

import "errors"

var (
	ErrLineNotFound      = errors.New("cart line not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("not enough stock for the requested quantity")
)

// Line is one persisted row of purchase intent: a (user, product, option)
// combination at a given quantity. Duplicate adds merge into one line.
type Line struct {
	CartID    int  `json:"cart_id"`
	UserID    int  `json:"-"`
	ProductID int  `json:"product_id"`
	OptionID  *int `json:"option_id,omitempty"`
	Quantity  int  `json:"quantity"`
}

// Item is a cart line joined with its product and option data, priced.
type Item struct {
	Line
	ProductName     string  `json:"name"`
	ImageURL        *string `json:"image_url,omitempty"`
	OptionName      *string `json:"option_name,omitempty"`
	UnitPrice       int     `json:"unit_price"`
	AdditionalPrice int     `json:"additional_price"`
	ItemPrice       int     `json:"item_price"`
	ItemTotal       int     `json:"item_total"`
}

// View is the priced cart: every item annotated with its line price plus
// the aggregate total.
type View struct {
	Items      []Item `json:"items"`
	TotalPrice int    `json:"total_price"`
	ItemCount  int    `json:"item_count"`
}

// BuildView derives line and aggregate prices from raw items. UnitPrice is
// the product's effective price; the option surcharge is added per unit.
func BuildView(items []Item) View {
	v := View{Items: make([]Item, 0, len(items))}
	for _, it := range items {
		it.ItemPrice = it.UnitPrice + it.AdditionalPrice
		it.ItemTotal = it.ItemPrice * it.Quantity
		v.Items = append(v.Items, it)
		v.TotalPrice += it.ItemTotal
	}
	v.ItemCount = len(v.Items)
	return v
}
