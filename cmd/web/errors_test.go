package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/service"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("failed to get tournament: %w", sql.ErrNoRows), http.StatusNotFound},
		{fmt.Errorf("%w: 12", bracket.ErrMatchNotFound), http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{store.ErrConflict, http.StatusConflict},
		{fmt.Errorf("%w: match 3", bracket.ErrMatchDecided), http.StatusConflict},
		{fmt.Errorf("%w: 1-1", bracket.ErrTiedScore), http.StatusUnprocessableEntity},
		{bracket.ErrNotImplemented, http.StatusNotImplemented},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
