package order

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	countCartQuery = `SELECT COUNT(*) FROM cart_items WHERE user_id = $1`

	insertOrderQuery = `
        INSERT INTO orders (user_id, total_price, status, recipient_name, recipient_phone, postal_code, address, detail_address, message, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING order_id
    `
	insertItemQuery = `
        INSERT INTO order_items (order_id, product_id, option_id, quantity, price)
        VALUES ($1, $2, $3, $4, $5)
    `
	clearCartQuery = `DELETE FROM cart_items WHERE user_id = $1`

	listByUserQuery = `
        SELECT o.order_id, o.user_id, o.total_price, o.status,
               o.recipient_name, o.recipient_phone, o.postal_code, o.address, o.detail_address, o.message,
               o.created_at, o.updated_at, COUNT(oi.product_id) AS item_count
        FROM orders o
        LEFT JOIN order_items oi ON oi.order_id = o.order_id
        WHERE o.user_id = $1
        GROUP BY o.order_id
        ORDER BY o.created_at DESC
    `
	listAllQuery = `
        SELECT o.order_id, o.user_id, o.total_price, o.status,
               o.recipient_name, o.recipient_phone, o.postal_code, o.address, o.detail_address, o.message,
               o.created_at, o.updated_at, COUNT(oi.product_id) AS item_count
        FROM orders o
        LEFT JOIN order_items oi ON oi.order_id = o.order_id
        GROUP BY o.order_id
        ORDER BY o.created_at DESC
    `
	getDetailQuery = `
        SELECT order_id, user_id, total_price, status,
               recipient_name, recipient_phone, postal_code, address, detail_address, message,
               created_at, updated_at
        FROM orders
        WHERE order_id = $1 AND user_id = $2
    `
	getItemsQuery = `
        SELECT oi.order_id, oi.product_id, oi.option_id, p.name, oi.quantity, oi.price
        FROM order_items oi
        JOIN products p ON p.product_id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.product_id
    `
	updateStatusQuery = `UPDATE orders SET status = $1, updated_at = NOW() WHERE order_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// PlaceOrder is the sole consistency mechanism for checkout: the header,
// the items and the cart clear either all land or none do.
func (r *PostgresRepository) PlaceOrder(ctx context.Context, ord Order, items []Item) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var cartCount int
	if err := tx.QueryRowContext(ctx, countCartQuery, ord.UserID).Scan(&cartCount); err != nil {
		return 0, err
	}
	if cartCount == 0 {
		return 0, ErrEmptyCart
	}

	var orderID int
	err = tx.QueryRowContext(ctx, insertOrderQuery,
		ord.UserID, ord.TotalPrice, ord.Status,
		ord.RecipientName, ord.RecipientPhone, ord.PostalCode, ord.Address,
		nullableText(ord.DetailAddress), nullableText(ord.Message),
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, insertItemQuery,
			orderID, item.ProductID, nullableRef(item.OptionID), item.Quantity, item.Price)
		if err != nil {
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx, clearCartQuery, ord.UserID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	rows, err := r.db.Query(listAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *PostgresRepository) GetDetail(userID, orderID int) (Order, error) {
	var ord Order
	var detail, message sql.NullString
	err := r.db.QueryRow(getDetailQuery, orderID, userID).Scan(
		&ord.OrderID, &ord.UserID, &ord.TotalPrice, &ord.Status,
		&ord.RecipientName, &ord.RecipientPhone, &ord.PostalCode, &ord.Address, &detail, &message,
		&ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	if detail.Valid {
		ord.DetailAddress = &detail.String
	}
	if message.Valid {
		ord.Message = &message.String
	}

	rows, err := r.db.Query(getItemsQuery, orderID)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		var option sql.NullInt64
		if err := rows.Scan(&item.OrderID, &item.ProductID, &option, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return Order{}, err
		}
		if option.Valid {
			v := int(option.Int64)
			item.OptionID = &v
		}
		ord.Items = append(ord.Items, item)
	}
	if err := rows.Err(); err != nil {
		return Order{}, err
	}

	ord.ItemCount = len(ord.Items)
	return ord, nil
}

func (r *PostgresRepository) UpdateStatus(orderID int, status string) error {
	result, err := r.db.Exec(updateStatusQuery, status, orderID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var detail, message sql.NullString
		if err := rows.Scan(&ord.OrderID, &ord.UserID, &ord.TotalPrice, &ord.Status,
			&ord.RecipientName, &ord.RecipientPhone, &ord.PostalCode, &ord.Address, &detail, &message,
			&ord.CreatedAt, &ord.UpdatedAt, &ord.ItemCount); err != nil {
			return nil, err
		}
		if detail.Valid {
			ord.DetailAddress = &detail.String
		}
		if message.Valid {
			ord.Message = &message.String
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func nullableText(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableRef(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
