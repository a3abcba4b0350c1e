package order

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func intPtr(v int) *int { return &v }

func testOrder() Order {
	return Order{
		UserID:         42,
		TotalPrice:     26000,
		Status:         StatusPending,
		RecipientName:  "Kim Jiwoo",
		RecipientPhone: "010-1234-5678",
		PostalCode:     "06236",
		Address:        "Seoul, Gangnam-gu",
	}
}

func TestPlaceOrder_CommitsHeaderItemsAndCartClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	items := []Item{
		{ProductID: 1, OptionID: intPtr(11), Quantity: 2, Price: 9000},
		{ProductID: 2, Quantity: 1, Price: 8000},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(42, 26000, StatusPending, "Kim Jiwoo", "010-1234-5678", "06236", "Seoul, Gangnam-gu", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(5))
	// item prices are persisted exactly as submitted
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(5, 1, 11, 2, 9000).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(5, 2, nil, 1, 8000).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	orderID, err := repo.PlaceOrder(context.Background(), testOrder(), items)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if orderID != 5 {
		t.Fatalf("expected order id 5, got %d", orderID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrder_EmptyCartRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err = repo.PlaceOrder(context.Background(), testOrder(), []Item{{ProductID: 1, Quantity: 1, Price: 100}})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrder_ItemInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(5))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err = repo.PlaceOrder(context.Background(), testOrder(), []Item{{ProductID: 1, Quantity: 1, Price: 100}})
	if err == nil {
		t.Fatalf("expected failure to surface")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_NoRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders").
		WithArgs(StatusPaid, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(99, StatusPaid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
