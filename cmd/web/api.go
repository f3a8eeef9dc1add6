package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/httputil"
	"github.com/AdamBeresnev/cue-bracket/internal/roster"
	"github.com/AdamBeresnev/cue-bracket/internal/service"
	"github.com/go-chi/chi/v5"
)

// apiRoutes mounts the JSON API. The caller installs authentication, so
// every handler can rely on a user id in the request context.
func (app *application) apiRoutes(r chi.Router) {
	r.Get("/tournaments", app.listTournaments)
	r.Post("/tournaments", app.createTournament)

	r.Route("/tournaments/{id}", func(r chi.Router) {
		r.Get("/", app.getTournament)
		r.Put("/", app.updateTournament)
		r.Delete("/", app.deleteTournament)

		r.Get("/players", app.listPlayers)
		r.Post("/players", app.addPlayer)
		r.Post("/players/import", app.importPlayers)
		r.Get("/players/export", app.exportPlayers)
		r.Put("/players/{playerID}", app.updatePlayer)
		r.Delete("/players/{playerID}", app.removePlayer)

		r.Get("/bracket", app.getBracket)
		r.Post("/bracket", app.generateBracket)
		r.Delete("/bracket", app.discardBracket)
		r.Post("/bracket/reset", app.resetBracket)
		r.Post("/bracket/advance-round", app.advanceRound)

		r.Post("/matches/{matchID}/score", app.reportScore)
	})
}

func (app *application) listTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := app.tournaments.GetTournamentsForUser(r.Context())
	if err != nil {
		apiError(w, "failed to list tournaments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournaments)
}

func (app *application) createTournament(w http.ResponseWriter, r *http.Request) {
	var in service.TournamentInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid tournament", err)
		return
	}

	tournament, err := app.tournaments.CreateTournament(r.Context(), in)
	if err != nil {
		apiError(w, "failed to create tournament", err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/tournaments/%s", tournament.ID))
	httputil.WriteJSON(w, http.StatusCreated, tournament)
}

func (app *application) getTournament(w http.ResponseWriter, r *http.Request) {
	data, err := app.tournaments.GetTournamentData(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "tournament not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, data)
}

func (app *application) updateTournament(w http.ResponseWriter, r *http.Request) {
	var in service.TournamentInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid tournament", err)
		return
	}

	tournament, err := app.tournaments.UpdateTournament(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		apiError(w, "failed to update tournament", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournament)
}

func (app *application) deleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := app.tournaments.DeleteTournament(r.Context(), chi.URLParam(r, "id")); err != nil {
		apiError(w, "failed to delete tournament", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listPlayers(w http.ResponseWriter, r *http.Request) {
	entries, err := app.entries.ListPlayers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to list players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (app *application) addPlayer(w http.ResponseWriter, r *http.Request) {
	var p bracket.Player
	if err := httputil.DecodeJSON(w, r, &p); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid player", err)
		return
	}

	entry, err := app.entries.AddPlayer(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		apiError(w, "failed to add player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func (app *application) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var p bracket.Player
	if err := httputil.DecodeJSON(w, r, &p); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid player", err)
		return
	}

	entry, err := app.entries.UpdatePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "playerID"), p)
	if err != nil {
		apiError(w, "failed to update player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (app *application) removePlayer(w http.ResponseWriter, r *http.Request) {
	if err := app.entries.RemovePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "playerID")); err != nil {
		apiError(w, "failed to remove player", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importPlayers takes the format from ?format= or the Content-Type.
func (app *application) importPlayers(w http.ResponseWriter, r *http.Request) {
	hint := r.URL.Query().Get("format")
	if hint == "" {
		hint = r.Header.Get("Content-Type")
	}
	format, err := roster.ParseFormat(hint)
	if err != nil {
		apiError(w, "unsupported roster format", err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, 1<<20)
	entries, err := app.entries.ImportPlayers(r.Context(), chi.URLParam(r, "id"), body, format)
	if err != nil {
		apiError(w, "failed to import players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entries)
}

func (app *application) exportPlayers(w http.ResponseWriter, r *http.Request) {
	format, err := roster.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		apiError(w, "unsupported roster format", err)
		return
	}

	id := chi.URLParam(r, "id")
	var buf bytes.Buffer
	if err := app.entries.ExportPlayers(r.Context(), id, &buf, format); err != nil {
		apiError(w, "failed to export players", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="players-%s.%s"`, id, format))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write roster export", "tournament", id, "error", err)
	}
}

func (app *application) getBracket(w http.ResponseWriter, r *http.Request) {
	doc, err := app.tournaments.GetBracket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to get bracket", err)
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, doc)
}

func (app *application) generateBracket(w http.ResponseWriter, r *http.Request) {
	tournament, err := app.tournaments.GenerateBracket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to generate bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tournament)
}

func (app *application) resetBracket(w http.ResponseWriter, r *http.Request) {
	tournament, err := app.tournaments.ResetBracket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to reset bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournament)
}

func (app *application) discardBracket(w http.ResponseWriter, r *http.Request) {
	tournament, err := app.tournaments.DiscardBracket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to discard bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournament)
}

func (app *application) advanceRound(w http.ResponseWriter, r *http.Request) {
	tournament, err := app.tournaments.AdvanceRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiError(w, "failed to advance round", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournament)
}

func (app *application) reportScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid match ID", err)
		return
	}

	var in service.ScoreInput
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid score", err)
		return
	}

	res, err := app.matches.ReportScore(r.Context(), chi.URLParam(r, "id"), matchID, in)
	if err != nil {
		apiError(w, "failed to report score", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
