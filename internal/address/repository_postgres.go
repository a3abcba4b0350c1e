package address

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listAddressesQuery = `
        SELECT address_id, user_id, recipient_name, recipient_phone, postal_code, address, detail_address, is_default, created_at, updated_at
        FROM addresses
        WHERE user_id = $1
        ORDER BY is_default DESC, address_id
    `
	getAddressQuery = `
        SELECT address_id, user_id, recipient_name, recipient_phone, postal_code, address, detail_address, is_default, created_at, updated_at
        FROM addresses
        WHERE address_id = $1 AND user_id = $2
    `
	insertAddressQuery = `
        INSERT INTO addresses (user_id, recipient_name, recipient_phone, postal_code, address, detail_address, is_default, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING address_id
    `
	updateAddressQuery = `
        UPDATE addresses
        SET recipient_name = $1, recipient_phone = $2, postal_code = $3, address = $4, detail_address = $5, is_default = $6, updated_at = NOW()
        WHERE address_id = $7 AND user_id = $8
    `
	deleteAddressQuery = `DELETE FROM addresses WHERE address_id = $1 AND user_id = $2`
	clearDefaultQuery  = `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	var detail sql.NullString
	if err := row.Scan(&a.AddressID, &a.UserID, &a.RecipientName, &a.RecipientPhone,
		&a.PostalCode, &a.Address, &detail, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Address{}, err
	}
	if detail.Valid {
		a.DetailAddress = &detail.String
	}
	return a, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(listAddressesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *PostgresRepository) Get(userID, addressID int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(getAddressQuery, addressID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery,
		a.UserID, a.RecipientName, a.RecipientPhone, a.PostalCode, a.Address,
		nullableText(a.DetailAddress), a.IsDefault,
	).Scan(&a.AddressID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	result, err := r.db.Exec(updateAddressQuery,
		a.RecipientName, a.RecipientPhone, a.PostalCode, a.Address,
		nullableText(a.DetailAddress), a.IsDefault, addressID, userID)
	if err != nil {
		return Address{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Address{}, ErrNotFound
	}
	a.AddressID = addressID
	a.UserID = userID
	return a, nil
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	result, err := r.db.Exec(deleteAddressQuery, addressID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearDefault(userID int) error {
	_, err := r.db.Exec(clearDefaultQuery, userID)
	return err
}

func nullableText(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
