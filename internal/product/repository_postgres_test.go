package product

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var catalogCols = []string{"product_id", "name", "description", "gender", "category_id",
	"category_name", "price", "discount_price", "status", "image_url", "created_at", "updated_at"}

func productRow(id int, name string, price int) []driver.Value {
	return []driver.Value{id, name, "", "unisex", 2, "Outerwear", price, nil, StatusActive, nil, "2026-01-01", "2026-01-01"}
}

func TestListActive_BindsCategoryArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(catalogCols).
		AddRow(productRow(1, "Wool Coat", 10000)...).
		AddRow(productRow(2, "Puffer Jacket", 15000)...)
	mock.ExpectQuery(`ANY\(\$1::int\[\]\)`).
		WithArgs(pq.Array([]int{1, 2, 3})).
		WillReturnRows(rows)

	products, err := repo.ListActive(Filter{CategoryIDs: []int{1, 2, 3}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListActive_SearchBindsPatterns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// substring pattern for matching, prefix pattern for ranking
	rows := sqlmock.NewRows(catalogCols).AddRow(productRow(1, "Coat", 10000)...)
	mock.ExpectQuery("ILIKE").
		WithArgs("%coat%", "coat%").
		WillReturnRows(rows)

	products, err := repo.ListActive(Filter{Search: "coat"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Coat" {
		t.Fatalf("unexpected result %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE p.product_id").WithArgs(99).
		WillReturnRows(sqlmock.NewRows(catalogCols))

	if _, err := repo.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdate_NoRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products").
		WillReturnResult(sqlmock.NewResult(0, 0))

	p := Product{Name: "Coat", Gender: "women", CategoryID: 2, Price: 100, Status: StatusActive}
	if _, err := repo.Update(99, p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
