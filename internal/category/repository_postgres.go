package category

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
        SELECT category_id, name, parent_id, ord
        FROM categories
        ORDER BY ord DESC, category_id
    `
	getCategoryQuery = `
        SELECT category_id, name, parent_id, ord
        FROM categories
        WHERE category_id = $1
    `
	childIDsQuery       = `SELECT category_id FROM categories WHERE parent_id = $1`
	insertCategoryQuery = `
        INSERT INTO categories (name, parent_id, ord)
        VALUES ($1, $2, $3)
        RETURNING category_id
    `
	updateCategoryQuery = `
        UPDATE categories
        SET name = $1, parent_id = $2, ord = $3
        WHERE category_id = $4
    `
	deleteCategoryQuery = `DELETE FROM categories WHERE category_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	cat, err := scanCategory(r.db.QueryRow(getCategoryQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) ChildIDs(id int) ([]int, error) {
	rows, err := r.db.Query(childIDsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var childID int
		if err := rows.Scan(&childID); err != nil {
			return nil, err
		}
		ids = append(ids, childID)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	err := r.db.QueryRow(insertCategoryQuery, c.Name, nullableParent(c.ParentID), c.Ord).Scan(&c.ID)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Category) (Category, error) {
	result, err := r.db.Exec(updateCategoryQuery, c.Name, nullableParent(c.ParentID), c.Ord, id)
	if err != nil {
		return Category{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Category{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var cat Category
	var parent sql.NullInt64
	if err := row.Scan(&cat.ID, &cat.Name, &parent, &cat.Ord); err != nil {
		return Category{}, err
	}
	if parent.Valid {
		v := int(parent.Int64)
		cat.ParentID = &v
	}
	return cat, nil
}

func nullableParent(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
