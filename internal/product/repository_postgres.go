package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `p.product_id, p.name, p.description, p.gender, p.category_id, c.name, p.price, p.discount_price, p.status, p.image_url, p.created_at, p.updated_at`

	getProductQuery = `
        SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON c.category_id = p.category_id
        WHERE p.product_id = $1
    `
	listByIDsQuery = `
        SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON c.category_id = p.category_id
        WHERE p.product_id = ANY($1::int[])
        ORDER BY array_position($1::int[], p.product_id)
    `
	getOptionQuery = `
        SELECT option_id, product_id, name, stock, additional_price
        FROM product_options
        WHERE option_id = $1
    `
	listOptionsQuery = `
        SELECT option_id, product_id, name, stock, additional_price
        FROM product_options
        WHERE product_id = $1
        ORDER BY option_id
    `
	insertProductQuery = `
        INSERT INTO products (name, description, gender, category_id, price, discount_price, status, image_url, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING product_id
    `
	updateProductQuery = `
        UPDATE products
        SET name = $1, description = $2, gender = $3, category_id = $4,
            price = $5, discount_price = $6, status = $7, image_url = $8, updated_at = NOW()
        WHERE product_id = $9
    `
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`

	insertOptionQuery = `
        INSERT INTO product_options (product_id, name, stock, additional_price)
        VALUES ($1, $2, $3, $4)
        RETURNING option_id
    `
	updateOptionQuery = `
        UPDATE product_options
        SET name = $1, stock = $2, additional_price = $3
        WHERE option_id = $4
    `
	deleteOptionQuery = `DELETE FROM product_options WHERE option_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var discount sql.NullInt64
	var image sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Gender, &p.CategoryID, &p.CategoryName,
		&p.Price, &discount, &p.Status, &image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if discount.Valid {
		v := int(discount.Int64)
		p.DiscountPrice = &v
	}
	if image.Valid {
		p.ImageURL = &image.String
	}
	return p, nil
}

// ListActive builds the public catalog query. A search term takes
// precedence over the sort key: exact-prefix matches on the product name
// rank above plain substring matches.
func (r *PostgresRepository) ListActive(f Filter) ([]Product, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON c.category_id = p.category_id
        WHERE p.status = 'active'`)

	args := []any{}
	argIndex := 1

	if len(f.CategoryIDs) > 0 {
		fmt.Fprintf(&b, ` AND p.category_id = ANY($%d::int[])`, argIndex)
		args = append(args, pq.Array(f.CategoryIDs))
		argIndex++
	}
	if f.Gender != "" {
		fmt.Fprintf(&b, ` AND p.gender = $%d`, argIndex)
		args = append(args, f.Gender)
		argIndex++
	}

	if f.Search != "" {
		fmt.Fprintf(&b, ` AND (p.name ILIKE $%d OR p.description ILIKE $%d OR c.name ILIKE $%d)`,
			argIndex, argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++

		fmt.Fprintf(&b, ` ORDER BY (CASE WHEN p.name ILIKE $%d THEN 0 ELSE 1 END), p.created_at DESC`, argIndex)
		args = append(args, f.Search+"%")
	} else {
		switch f.Sort {
		case SortPriceAsc:
			b.WriteString(` ORDER BY COALESCE(p.discount_price, p.price) ASC`)
		case SortPriceDesc:
			b.WriteString(` ORDER BY COALESCE(p.discount_price, p.price) DESC`)
		default:
			b.WriteString(` ORDER BY p.created_at DESC`)
		}
	}

	rows, err := r.db.Query(b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListByIDs returns products in the same order as the ids argument.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	opts, err := r.ListOptions(id)
	if err != nil {
		return Product{}, err
	}
	p.Options = opts
	return p, nil
}

func (r *PostgresRepository) GetOption(id int) (Option, error) {
	var o Option
	err := r.db.QueryRow(getOptionQuery, id).
		Scan(&o.ID, &o.ProductID, &o.Name, &o.Stock, &o.AdditionalPrice)
	if err != nil {
		if err == sql.ErrNoRows {
			return Option{}, ErrOptionNotFound
		}
		return Option{}, err
	}
	return o, nil
}

func (r *PostgresRepository) ListOptions(productID int) ([]Option, error) {
	rows, err := r.db.Query(listOptionsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]Option, 0)
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Name, &o.Stock, &o.AdditionalPrice); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Gender, p.CategoryID,
		p.Price, nullableInt(p.DiscountPrice), p.Status, nullableString(p.ImageURL),
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(updateProductQuery,
		p.Name, p.Description, p.Gender, p.CategoryID,
		p.Price, nullableInt(p.DiscountPrice), p.Status, nullableString(p.ImageURL), id)
	if err != nil {
		return Product{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateOption(o Option) (Option, error) {
	err := r.db.QueryRow(insertOptionQuery, o.ProductID, o.Name, o.Stock, o.AdditionalPrice).Scan(&o.ID)
	if err != nil {
		return Option{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateOption(id int, o Option) (Option, error) {
	result, err := r.db.Exec(updateOptionQuery, o.Name, o.Stock, o.AdditionalPrice, id)
	if err != nil {
		return Option{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Option{}, ErrOptionNotFound
	}
	o.ID = id
	return o, nil
}

func (r *PostgresRepository) DeleteOption(id int) error {
	result, err := r.db.Exec(deleteOptionQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrOptionNotFound
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
