package main

import (
	"database/sql"
	"errors"
	"maps"
	"net/http"
	"slices"

	"github.com/AdamBeresnev/cue-bracket/internal/httputil"
	"github.com/AdamBeresnev/cue-bracket/internal/metrics"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	"github.com/AdamBeresnev/cue-bracket/internal/service"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/AdamBeresnev/cue-bracket/internal/video"
	"github.com/AdamBeresnev/cue-bracket/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

type application struct {
	sessionManager *scs.SessionManager
	userStore      *store.UserStore
	users          *service.UserService
	tournaments    *service.TournamentService
	matches        *service.MatchService
	entries        *service.EntryService
	limiter        *middleware.RateLimiter
	corsOrigins    []string
	trustProxy     bool
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if app.trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Instrument)

	r.Handle("/metrics", metrics.Handler())

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(app.limiter.Middleware)
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(middleware.RequireAPIAuth(app.sessionManager, app.userStore))
		app.apiRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)

		r.Get("/login", app.loginPage)
		r.Get("/auth/{provider}", app.beginAuth)
		r.Get("/auth/{provider}/callback", app.authCallback)
		r.Post("/auth/guest", app.guestLogin)
		r.Post("/logout", app.logout)

		r.Get("/tournaments/{id}", app.tournamentPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(app.sessionManager, app.userStore))
			r.Get("/", app.indexPage)
		})
	})

	return r
}

func (app *application) indexPage(w http.ResponseWriter, r *http.Request) {
	tournaments, err := app.tournaments.GetTournamentsForUser(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to get tournaments", err)
		return
	}
	views.Render(w, r, views.Index(tournaments))
}

func (app *application) tournamentPage(w http.ResponseWriter, r *http.Request) {
	data, err := app.tournaments.GetTournamentData(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "Tournament not found", err)
			return
		}
		httputil.InternalServerError(w, "Failed to get tournament", err)
		return
	}

	embed := video.GetEmbedInfo(data.Tournament.StreamLink, r.Host)
	views.Render(w, r, views.TournamentView(data.Tournament, data.Entries, embed))
}

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	providers := slices.Sorted(maps.Keys(goth.GetProviders()))
	views.Render(w, r, views.LoginPage(providers))
}

func (app *application) beginAuth(w http.ResponseWriter, r *http.Request) {
	r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))
	gothic.BeginAuthHandler(w, r)
}

func (app *application) authCallback(w http.ResponseWriter, r *http.Request) {
	r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	user, err := app.users.FindOrCreateUserByProvider(r.Context(), gothUser)
	if err != nil {
		httputil.InternalServerError(w, "Failed to find or create user", err)
		return
	}

	app.login(w, r, user.ID.String())
}

func (app *application) guestLogin(w http.ResponseWriter, r *http.Request) {
	user, err := app.users.EnsureGuestUser(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to login as guest", err)
		return
	}
	app.login(w, r, user.ID.String())
}

func (app *application) login(w http.ResponseWriter, r *http.Request, userID string) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to renew session", err)
		return
	}
	app.sessionManager.Put(r.Context(), middleware.SessionUserKey, userID)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to logout", err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
