package review

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
        SELECT r.review_id, r.product_id, r.user_id, u.name, r.rating, r.content, r.created_at
        FROM reviews r
        JOIN users u ON u.user_id = r.user_id
        WHERE r.product_id = $1
        ORDER BY r.created_at DESC
    `
	reviewSummaryQuery = `
        SELECT COUNT(*), COALESCE(AVG(rating), 0)
        FROM reviews
        WHERE product_id = $1
    `
	getReviewQuery = `
        SELECT review_id, product_id, user_id, '', rating, content, created_at
        FROM reviews
        WHERE review_id = $1
    `
	insertReviewQuery = `
        INSERT INTO reviews (product_id, user_id, rating, content, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING review_id
    `
	deleteReviewQuery = `DELETE FROM reviews WHERE review_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ReviewID, &rv.ProductID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Content, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) SummaryByProduct(productID int) (Summary, error) {
	var s Summary
	if err := r.db.QueryRow(reviewSummaryQuery, productID).Scan(&s.Count, &s.AverageRating); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Get(reviewID int) (Review, error) {
	var rv Review
	err := r.db.QueryRow(getReviewQuery, reviewID).Scan(&rv.ReviewID, &rv.ProductID,
		&rv.UserID, &rv.UserName, &rv.Rating, &rv.Content, &rv.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	err := r.db.QueryRow(insertReviewQuery, rv.ProductID, rv.UserID, rv.Rating, rv.Content).
		Scan(&rv.ReviewID)
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) Delete(reviewID int) error {
	result, err := r.db.Exec(deleteReviewQuery, reviewID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
