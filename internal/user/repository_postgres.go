package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listUsersQuery = `
        SELECT user_id, email, password, name, phone, role, created_at, updated_at
        FROM users
        ORDER BY user_id
    `
	getUserByIDQuery = `
        SELECT user_id, email, password, name, phone, role, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `
	getUserByEmailQuery = `
        SELECT user_id, email, password, name, phone, role, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	insertUserQuery = `
        INSERT INTO users (email, password, name, phone, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING user_id
    `
	updateUserQuery = `
        UPDATE users
        SET name = $1, phone = $2, updated_at = NOW()
        WHERE user_id = $3
    `
	deleteUserQuery = `DELETE FROM users WHERE user_id = $1`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row rowScanner) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery, u.Email, u.Password, u.Name, u.Phone, u.Role).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	result, err := r.db.Exec(updateUserQuery, u.Name, u.Phone, id)
	if err != nil {
		return User{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
