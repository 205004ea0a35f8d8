package postgres

import (
	"database/sql"
	"testing"
)

func TestIntPtrToNullInt64(t *testing.T) {
	t.Run("wraps value", func(t *testing.T) {
		value := 7
		got := intPtrToNullInt64(&value)
		if !got.Valid || got.Int64 != 7 {
			t.Fatalf("unexpected null int: %+v", got)
		}
	})

	t.Run("nil maps to invalid", func(t *testing.T) {
		if got := intPtrToNullInt64(nil); got.Valid {
			t.Fatalf("expected invalid null int, got %+v", got)
		}
	})
}

func TestNullInt64ToIntPtr(t *testing.T) {
	t.Run("unwraps value", func(t *testing.T) {
		got := nullInt64ToIntPtr(sql.NullInt64{Int64: 3, Valid: true})
		if got == nil || *got != 3 {
			t.Fatalf("unexpected pointer: %v", got)
		}
	})

	t.Run("null maps to nil", func(t *testing.T) {
		if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

func TestStringToNullString(t *testing.T) {
	if got := stringToNullString(""); got.Valid {
		t.Fatalf("empty string should map to null, got %+v", got)
	}
	if got := stringToNullString("pl-04"); !got.Valid || got.String != "pl-04" {
		t.Fatalf("unexpected null string: %+v", got)
	}
	if got := nullStringToString(sql.NullString{}); got != "" {
		t.Fatalf("null should map to empty string, got %q", got)
	}
}
