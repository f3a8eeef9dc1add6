package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/httputil"
	"github.com/AdamBeresnev/cue-bracket/internal/roster"
	"github.com/AdamBeresnev/cue-bracket/internal/service"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
)

var statusByError = []struct {
	err    error
	status int
}{
	{sql.ErrNoRows, http.StatusNotFound},
	{bracket.ErrMatchNotFound, http.StatusNotFound},

	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},

	{store.ErrConflict, http.StatusConflict},
	{service.ErrNotDraft, http.StatusConflict},
	{service.ErrNoBracket, http.StatusConflict},
	{service.ErrDuplicatePlayer, http.StatusConflict},
	{bracket.ErrMatchDecided, http.StatusConflict},
	{bracket.ErrMatchNotReady, http.StatusConflict},
	{bracket.ErrRoundIncomplete, http.StatusConflict},
	{bracket.ErrFinalRound, http.StatusConflict},
	{bracket.ErrInvalidRound, http.StatusConflict},

	{service.ErrInvalidInput, http.StatusUnprocessableEntity},
	{roster.ErrUnknownFormat, http.StatusUnprocessableEntity},
	{bracket.ErrTooFewPlayers, http.StatusUnprocessableEntity},
	{bracket.ErrPlayerCountMismatch, http.StatusUnprocessableEntity},
	{bracket.ErrUnknownBracketType, http.StatusUnprocessableEntity},
	{bracket.ErrMissingScore, http.StatusUnprocessableEntity},
	{bracket.ErrInvalidScore, http.StatusUnprocessableEntity},
	{bracket.ErrTiedScore, http.StatusUnprocessableEntity},
	{bracket.ErrInvalidWinner, http.StatusUnprocessableEntity},

	{bracket.ErrNotImplemented, http.StatusNotImplemented},
}

func statusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// apiError answers with the status matching err; msg describes the failed
// action.
func apiError(w http.ResponseWriter, msg string, err error) {
	httputil.JSONError(w, statusFor(err), msg, err)
}
