package dashboard

// Stats is the admin dashboard snapshot: headline counters plus the
// most recent orders. Revenue excludes cancelled orders.
type Stats struct {
	TotalRevenue   int            `json:"total_revenue"`
	TotalOrders    int            `json:"total_orders"`
	TotalUsers     int            `json:"total_users"`
	TotalProducts  int            `json:"total_products"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	RecentOrders   []RecentOrder  `json:"recent_orders"`
}

// RecentOrder is a trimmed order row for the dashboard list.
type RecentOrder struct {
	OrderID       int    `json:"order_id"`
	UserID        int    `json:"user_id"`
	RecipientName string `json:"recipient_name"`
	TotalPrice    int    `json:"total_price"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type Repository interface {
	Revenue() (int, error)
	OrderCountsByStatus() (map[string]int, error)
	UserCount() (int, error)
	ProductCount() (int, error)
	RecentOrders(limit int) ([]RecentOrder, error)
}
