// Package server exposes a loaded session over a small read-only HTTP API.
//
// Requests never change the shared session: each /api/view call applies its
// filter and page actions to a copy of the current state and projects that.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/render"
	"github.com/rshade/rosterview/internal/session"
	"github.com/rshade/rosterview/internal/state"
)

// TraceHeader carries the request trace id back to the client.
const TraceHeader = "X-Trace-Id"

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves one session.
type Server struct {
	session *session.Session
	logger  zerolog.Logger
	router  *mux.Router
}

// New builds the router for s.
func New(s *session.Session, logger zerolog.Logger) *Server {
	srv := &Server{
		session: s,
		logger:  logging.ComponentLogger(logger, "server"),
		router:  mux.NewRouter(),
	}

	srv.router.Use(srv.traceMiddleware)
	srv.router.HandleFunc("/healthz", srv.healthz).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/status", srv.status).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/view", srv.view).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/filters", srv.filters).Methods(http.MethodGet)

	return srv
}

// Handler returns the HTTP handler.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Serve accepts connections on l until ctx is cancelled, then shuts down.
func (srv *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{
		Handler:           srv.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info().Str("addr", l.Addr().String()).Msg("serving")
		errCh <- httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return srv.Serve(ctx, l)
}

func (srv *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		ctx := logging.ContextWithTraceID(srv.logger.WithContext(r.Context()), traceID)
		w.Header().Set(TraceHeader, traceID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		log := logging.FromContext(ctx)
		log.Debug().
			Str("operation", "request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

func (srv *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// StatusResponse is the /api/status body.
type StatusResponse struct {
	Status       state.Status `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Records      int          `json:"records"`
	TraceID      string       `json:"trace_id"`
}

func (srv *Server) status(w http.ResponseWriter, _ *http.Request) {
	st := srv.session.State()
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:       st.Status,
		ErrorMessage: st.ErrorMessage,
		Records:      len(st.Records),
		TraceID:      srv.session.TraceID(),
	})
}

// FiltersResponse is the /api/filters body.
type FiltersResponse struct {
	Countries []string `json:"countries"`
	Genders   []string `json:"genders"`
}

func (srv *Server) filters(w http.ResponseWriter, _ *http.Request) {
	v := srv.session.Snapshot()
	writeJSON(w, http.StatusOK, FiltersResponse{Countries: v.Countries, Genders: v.Genders})
}

func (srv *Server) view(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := pagination.ParsePage(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	format := render.FormatJSON
	if raw := q.Get("format"); raw != "" {
		if format, err = render.ParseFormat(raw); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	params := pagination.Params{Page: page, Country: q.Get("country"), Gender: q.Get("gender")}
	v := session.Project(Apply(srv.session.State(), params))

	switch format {
	case render.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case render.FormatNDJSON:
		w.Header().Set("Content-Type", "application/x-ndjson")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err = render.Write(w, format, v); err != nil {
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Str("operation", "view").Msg("writing view")
	}
}

// Apply returns s with the filter and page of p applied, in that order, so
// the page survives the filter reset.
func Apply(s state.AppState, p pagination.Params) state.AppState {
	return state.Reduce(s,
		state.SetCountry{Country: p.Country},
		state.SetGender{Gender: p.Gender},
		state.SetPage{Page: p.Page},
	)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
