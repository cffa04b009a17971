package web

import (
	"net/http"
	"time"

	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/infra/metrics"
	"quote-quiz/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	userUC     usecase.UserUseCase
	selectorUC usecase.SelectorUseCase
	guessUC    usecase.GuessUseCase
	cooldownUC usecase.CooldownUseCase
	auth       *AuthManager
	log        *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	selectorUC usecase.SelectorUseCase,
	guessUC usecase.GuessUseCase,
	cooldownUC usecase.CooldownUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	compLog := logger.With().Str("component", "web").Logger()
	return &Server{
		userUC:     userUC,
		selectorUC: selectorUC,
		guessUC:    guessUC,
		cooldownUC: cooldownUC,
		auth:       auth,
		log:        &compLog,
	}
}

// Router builds the public API surface.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.traceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Get("/users/top", s.handleTopUsers)
			r.Get("/quotes/next", s.handleNextQuote)
			r.Post("/quotes/guess", s.handleGuess)
			r.Get("/quotes/{quoteID}/related", s.handleRelatedQuotes)
		})
	})
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// traceMiddleware tags each request with a trace id and records latency.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		elapsed := time.Since(start)
		metrics.ObserveHTTPRequest(route, r.Method, rec.status, float64(elapsed.Milliseconds()))
		logging.With(ctx, s.log).Debug().
			Str("route", route).Str("method", r.Method).
			Int("status", rec.status).Dur("took", elapsed).Msg("request")
	})
}
