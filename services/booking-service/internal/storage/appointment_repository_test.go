package storage

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestUUIDOrNil(t *testing.T) {
	if got := uuidOrNil(""); got != nil {
		t.Fatalf("empty appointment id must become NULL, got %v", got)
	}
	id := "6f9619ff-8b86-4d01-b42d-00cf4fc964ff"
	if got := uuidOrNil(id); got != id {
		t.Fatalf("expected %q, got %v", id, got)
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation should be a conflict")
	}
	if !IsConflict(&pgconn.PgError{Code: "23P01"}) {
		t.Error("exclusion violation should be a conflict")
	}
	if IsConflict(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a conflict")
	}
	if IsConflict(errors.New("boom")) {
		t.Error("plain error is not a conflict")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Error("pgx.ErrNoRows should be not-found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("plain error is not not-found")
	}
}
