package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BracketsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cue_bracket_brackets_generated_total",
		Help: "Brackets generated, by bracket type.",
	}, []string{"type"})

	ScoresReported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cue_bracket_scores_reported_total",
		Help: "Match reports, by outcome.",
	}, []string{"outcome"})

	RoundsAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cue_bracket_rounds_advanced_total",
		Help: "Round cursor advances.",
	})

	TournamentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cue_bracket_tournaments_completed_total",
		Help: "Tournaments that crowned a champion.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cue_bracket_http_request_duration_seconds",
		Help:    "HTTP request latency, by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Report outcomes.
const (
	OutcomeAdvanced = "advanced"
	OutcomeChampion = "champion"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
)

// Instrument records the latency of every request under its chi route
// pattern, so path parameters do not explode the label space.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
