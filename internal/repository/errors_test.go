package repository

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateKey(t *testing.T) {
	if !isDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Error("1062 should be a duplicate key error")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1205}) {
		t.Error("1205 is not a duplicate key error")
	}
	if isDuplicateKey(errors.New("plain error")) {
		t.Error("plain errors are not duplicate key errors")
	}
}

func TestReadWithRetryRetriesTransientOnce(t *testing.T) {
	calls := 0
	err := readWithRetry(func() error {
		calls++
		if calls == 1 {
			return driver.ErrBadConn
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry should have recovered: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestReadWithRetryDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	permanent := errors.New("syntax error")
	err := readWithRetry(func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want permanent error", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestReadWithRetrySurfacesSecondFailure(t *testing.T) {
	calls := 0
	err := readWithRetry(func() error {
		calls++
		return &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	})
	if err == nil {
		t.Fatal("expected error after retry exhausted")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestConflictErrorMessageCarriesDates(t *testing.T) {
	e := &ConflictError{
		CheckIn:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	want := "room already booked from 2025-03-10 to 2025-03-15"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}
