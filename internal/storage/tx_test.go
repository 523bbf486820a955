package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE widgets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithinTx(context.Background(), db, time.Second, func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE widgets SET n = n + 1")
		return err
	})
	if err != nil {
		t.Fatalf("expected commit, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithinTxRollsBackAndPassesDomainError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	domainErr := errors.New("stock too low")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithinTx(context.Background(), db, time.Second, func(tx *sql.Tx) error {
		return domainErr
	})
	if err != domainErr {
		t.Fatalf("expected domain error untouched, got %v", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Fatal("domain error must not be wrapped in ErrUnavailable")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithinTxWrapsBeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err = WithinTx(context.Background(), db, time.Second, func(tx *sql.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestWithinTxWrapsDeadline(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithinTx(context.Background(), db, 10*time.Millisecond, func(tx *sql.Tx) error {
		time.Sleep(30 * time.Millisecond)
		return context.DeadlineExceeded
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable after deadline, got %v", err)
	}
}
