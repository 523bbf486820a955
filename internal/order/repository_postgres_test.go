package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/productshopwm/shop-backend/internal/product"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db, time.Second), mock
}

func TestCreateFromCart_CommitsOrderItemsAndStock(t *testing.T) {
	repo, mock := newMockRepo(t)
	pickupPoint := 1

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(42, StatusPending, pickupPoint).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "order_date"}).AddRow(7, time.Now()))

	mock.ExpectQuery("SELECT product_price FROM products").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"product_price"}).AddRow("10.00"))
	mock.ExpectExec("UPDATE products SET stock = stock").
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 1, 3, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(11))

	mock.ExpectQuery("SELECT product_price FROM products").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"product_price"}).AddRow("5.00"))
	mock.ExpectExec("UPDATE products SET stock = stock").
		WithArgs(2, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 2, 2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(12))

	mock.ExpectExec("UPDATE orders SET total").
		WithArgs(sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ord, err := repo.CreateFromCart(context.Background(), 42, &pickupPoint, []CheckoutLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if ord.ID != 7 {
		t.Fatalf("unexpected order id %d", ord.ID)
	}
	if !ord.Total.Equal(price("40.00")) {
		t.Fatalf("unexpected total %s", ord.Total)
	}
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(ord.Items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromCart_InsufficientStockRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	pickupPoint := 1

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(42, StatusPending, pickupPoint).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "order_date"}).AddRow(7, time.Now()))
	mock.ExpectQuery("SELECT product_price FROM products").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"product_price"}).AddRow("10.00"))
	// zero rows affected: the stock guard rejected the decrement
	mock.ExpectExec("UPDATE products SET stock = stock").
		WithArgs(1, 30).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CreateFromCart(context.Background(), 42, &pickupPoint, []CheckoutLine{
		{ProductID: 1, Quantity: 30},
	})
	if err != product.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestConfirmPickup_AlreadyIssuedReturnsOriginalDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, pickup_date FROM orders").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "pickup_date"}).AddRow(StatusIssued, issuedAt))
	mock.ExpectCommit()

	conf, err := repo.ConfirmPickup(context.Background(), 7, time.Now())
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !conf.AlreadyIssued {
		t.Fatal("expected AlreadyIssued to be set")
	}
	if !conf.PickupDate.Equal(issuedAt) {
		t.Fatalf("expected original pickup date, got %v", conf.PickupDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancel_IssuedOrderRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, pickup_date FROM orders").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "pickup_date"}).AddRow(StatusIssued, time.Now()))
	mock.ExpectRollback()

	if err := repo.Cancel(context.Background(), 7, false); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancel_RestockUpdatesProducts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, pickup_date FROM orders").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "pickup_date"}).AddRow(StatusPending, nil))
	mock.ExpectExec("UPDATE products p SET stock").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE orders SET payment_status").
		WithArgs(StatusCancelled, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Cancel(context.Background(), 7, true); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
