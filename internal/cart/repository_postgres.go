package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	// The unique index on (user_id, product_id, option_id) is declared
	// NULLS NOT DISTINCT so lines without an option also merge.
	upsertLineQuery = `
        INSERT INTO cart_items (user_id, product_id, option_id, quantity)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, product_id, option_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
        RETURNING cart_id, (xmax = 0) AS inserted
    `
	getLineQuery = `
        SELECT cart_id, user_id, product_id, option_id, quantity
        FROM cart_items
        WHERE cart_id = $1 AND user_id = $2
    `
	updateQuantityQuery = `
        UPDATE cart_items
        SET quantity = $1
        WHERE cart_id = $2 AND user_id = $3
    `
	removeLineQuery = `DELETE FROM cart_items WHERE cart_id = $1 AND user_id = $2`
	clearCartQuery  = `DELETE FROM cart_items WHERE user_id = $1`

	viewCartQuery = `
        SELECT ci.cart_id, ci.user_id, ci.product_id, ci.option_id, ci.quantity,
               p.name, p.image_url, p.price, p.discount_price,
               o.name, o.additional_price
        FROM cart_items ci
        JOIN products p ON p.product_id = ci.product_id
        LEFT JOIN product_options o ON o.option_id = ci.option_id
        WHERE ci.user_id = $1
        ORDER BY ci.cart_id
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(userID, productID int, optionID *int, qty int) (int, bool, error) {
	var cartID int
	var inserted bool
	err := r.db.QueryRow(upsertLineQuery, userID, productID, nullableOption(optionID), qty).
		Scan(&cartID, &inserted)
	if err != nil {
		return 0, false, err
	}
	return cartID, inserted, nil
}

func (r *PostgresRepository) GetLine(userID, cartID int) (Line, error) {
	var l Line
	var option sql.NullInt64
	err := r.db.QueryRow(getLineQuery, cartID, userID).
		Scan(&l.CartID, &l.UserID, &l.ProductID, &option, &l.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return Line{}, ErrLineNotFound
		}
		return Line{}, err
	}
	if option.Valid {
		v := int(option.Int64)
		l.OptionID = &v
	}
	return l, nil
}

func (r *PostgresRepository) UpdateQuantity(userID, cartID, qty int) error {
	result, err := r.db.Exec(updateQuantityQuery, qty, cartID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(userID, cartID int) error {
	_, err := r.db.Exec(removeLineQuery, cartID, userID)
	return err
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(clearCartQuery, userID)
	return err
}

func (r *PostgresRepository) View(userID int) (View, error) {
	rows, err := r.db.Query(viewCartQuery, userID)
	if err != nil {
		return View{}, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		var optionID sql.NullInt64
		var image, optionName sql.NullString
		var price int
		var discount, additional sql.NullInt64
		if err := rows.Scan(&it.CartID, &it.UserID, &it.ProductID, &optionID, &it.Quantity,
			&it.ProductName, &image, &price, &discount,
			&optionName, &additional); err != nil {
			return View{}, err
		}

		it.UnitPrice = price
		if discount.Valid {
			it.UnitPrice = int(discount.Int64)
		}
		if optionID.Valid {
			v := int(optionID.Int64)
			it.OptionID = &v
		}
		if optionName.Valid {
			it.OptionName = &optionName.String
		}
		if additional.Valid {
			it.AdditionalPrice = int(additional.Int64)
		}
		if image.Valid {
			it.ImageURL = &image.String
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return View{}, err
	}

	return BuildView(items), nil
}

func nullableOption(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
