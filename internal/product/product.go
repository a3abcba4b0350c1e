package product

// Product statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// AllowedGenders a product can be listed under.
var AllowedGenders = []string{"women", "men", "unisex"}

// Product represents a catalog item and maps to the `products` table.
type Product struct {
	ID            int      `json:"product_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Gender        string   `json:"gender"`
	CategoryID    int      `json:"category_id"`
	CategoryName  string   `json:"category_name,omitempty"`
	Price         int      `json:"price"`
	DiscountPrice *int     `json:"discount_price,omitempty"`
	Status        string   `json:"status"`
	ImageURL      *string  `json:"image_url,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
	Options       []Option `json:"options,omitempty"`
}

// EffectivePrice is the discount price when set, the regular price otherwise.
func (p Product) EffectivePrice() int {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Option is a purchasable variant of a product. It is referenced, not
// owned, by cart lines.
type Option struct {
	ID              int    `json:"option_id"`
	ProductID       int    `json:"product_id"`
	Name            string `json:"name"`
	Stock           int    `json:"stock"`
	AdditionalPrice int    `json:"additional_price"`
}

// Sort keys accepted by the public listing.
const (
	SortLatest    = "latest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Filter narrows the public product listing.
type Filter struct {
	// CategoryIDs carries the requested category plus its direct
	// children, already expanded by the service.
	CategoryIDs []int
	Gender      string
	Search      string
	Sort        string
}
