package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"table_order/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid order", services.ErrInvalidOrder, http.StatusBadRequest, "Invalid data"},
		{"validation", services.ValidationError{Field: "total", Message: "total mismatch"}, http.StatusBadRequest, "total mismatch"},
		{"wrapped validation", fmt.Errorf("place: %w", services.ValidationError{Field: "items", Message: "Cart is empty"}), http.StatusBadRequest, "Cart is empty"},
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"unauthorized", services.ErrUnauthorized, http.StatusForbidden, "Unauthorized"},
		{"not found", fmt.Errorf("table 9: %w", services.ErrNotFound), http.StatusNotFound, "Not found"},
		{"conflict with message", services.ConflictError{Message: "Table number already exists"}, http.StatusConflict, "Table number already exists"},
		{"bare conflict", services.ErrConflict, http.StatusConflict, "Conflict"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, genericFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := errorStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := parseID(raw)
		assert.False(t, ok, raw)
	}
}
