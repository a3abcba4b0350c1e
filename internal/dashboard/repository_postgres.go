package dashboard

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	revenueQuery = `
        SELECT COALESCE(SUM(total_price), 0)
        FROM orders
        WHERE status <> 'cancelled'
    `
	orderCountsQuery = `
        SELECT status, COUNT(*)
        FROM orders
        GROUP BY status
    `
	userCountQuery    = `SELECT COUNT(*) FROM users`
	productCountQuery = `SELECT COUNT(*) FROM products`
	recentOrdersQuery = `
        SELECT order_id, user_id, recipient_name, total_price, status, created_at
        FROM orders
        ORDER BY created_at DESC
        LIMIT $1
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Revenue() (int, error) {
	var revenue int
	err := r.db.QueryRow(revenueQuery).Scan(&revenue)
	return revenue, err
}

func (r *PostgresRepository) OrderCountsByStatus() (map[string]int, error) {
	rows, err := r.db.Query(orderCountsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) UserCount() (int, error) {
	var count int
	err := r.db.QueryRow(userCountQuery).Scan(&count)
	return count, err
}

func (r *PostgresRepository) ProductCount() (int, error) {
	var count int
	err := r.db.QueryRow(productCountQuery).Scan(&count)
	return count, err
}

func (r *PostgresRepository) RecentOrders(limit int) ([]RecentOrder, error) {
	rows, err := r.db.Query(recentOrdersQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]RecentOrder, 0, limit)
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.RecipientName,
			&o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
