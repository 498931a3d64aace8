package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pq.Error{Code: "23503", Detail: `Key (category_id)=(9) is not present in table "categories".`}

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"foreign key", fk, true},
		{"wrapped foreign key", fmt.Errorf("insert: %w", fk), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isForeignKeyViolation(tt.err); got != tt.expected {
				t.Errorf("isForeignKeyViolation() = %v, expected %v", got, tt.expected)
			}
		})
	}

	if detail := foreignKeyDetail(fk); detail != fk.Detail {
		t.Errorf("Expected detail %q, got %q", fk.Detail, detail)
	}
	if detail := foreignKeyDetail(errors.New("boom")); detail != "" {
		t.Errorf("Expected empty detail, got %q", detail)
	}
}

func TestNullStringPtr(t *testing.T) {
	if p := nullStringPtr(sql.NullString{}); p != nil {
		t.Errorf("Expected nil for NULL, got %q", *p)
	}

	p := nullStringPtr(sql.NullString{String: "private/a.png", Valid: true})
	if p == nil || *p != "private/a.png" {
		t.Errorf("Expected private/a.png, got %v", p)
	}
}
