// Package session owns the state of one browsing session. It is the single
// write path into state.AppState and the place readers get the rendering
// tuple from.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/roster"
	"github.com/rshade/rosterview/internal/state"
)

// Common session errors.
var (
	ErrAlreadyLoaded = errors.New("session already loaded its collection")
	ErrClosed        = errors.New("session is closed")
)

// View is the read-only tuple handed to renderers after each state change.
type View struct {
	Status       state.Status    `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Records      []roster.Record `json:"records"`
	Filter       roster.Filter   `json:"filter"`
	Pagination   pagination.Meta `json:"pagination"`
	Countries    []string        `json:"countries"`
	Genders      []string        `json:"genders"`
}

// CurrentPage returns the page cursor the view was projected for.
func (v View) CurrentPage() int {
	return v.Pagination.CurrentPage
}

// TotalPages returns the number of pages of the filtered collection.
func (v View) TotalPages() int {
	return v.Pagination.TotalPages
}

// Project derives the View for s. It is pure.
func Project(s state.AppState) View {
	store := roster.NewStore(s.Records)
	page := pagination.Project(s.Records, s.Filter, s.Page, state.PageSize)
	return View{
		Status:       s.Status,
		ErrorMessage: s.ErrorMessage,
		Records:      page.Records,
		Filter:       s.Filter,
		Pagination:   pagination.NewMeta(page, state.PageSize),
		Countries:    store.Countries(),
		Genders:      store.Genders(),
	}
}

// Session owns one AppState. Dispatch is the only way to change it; each
// call replaces the whole value under the lock, so transitions never
// interleave.
type Session struct {
	mu      sync.RWMutex
	current state.AppState
	closed  bool
	loaded  bool
	traceID string
}

// New creates a session in the initial state.
func New() *Session {
	return &Session{
		current: state.Initial(),
		traceID: logging.NewTraceID(),
	}
}

// TraceID identifies this session in logs.
func (s *Session) TraceID() string {
	return s.traceID
}

// Context returns ctx tagged with the session trace id.
func (s *Session) Context(ctx context.Context) context.Context {
	return logging.ContextWithTraceID(ctx, s.traceID)
}

// Dispatch applies a to the current state. After Close it does nothing.
func (s *Session) Dispatch(a state.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.current = state.Transition(s.current, a)
}

// State returns the current state value.
func (s *Session) State() state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot returns the rendering tuple for the current state.
func (s *Session) Snapshot() View {
	return Project(s.State())
}

// Load runs the session's one load through l, feeding its completion channel
// into Dispatch. Later calls return ErrAlreadyLoaded without fetching.
func (s *Session) Load(ctx context.Context, l *loader.Loader) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loaded {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.loaded = true
	s.mu.Unlock()

	ctx = s.Context(ctx)
	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "session").
		Str("operation", "load").
		Msg("starting collection load")

	for a := range l.Start(ctx) {
		s.Dispatch(a)
	}

	final := s.State()
	log.Debug().Ctx(ctx).
		Str("component", "session").
		Str("operation", "load").
		Str("status", final.Status.String()).
		Int("records", len(final.Records)).
		Msg("collection load finished")
	return nil
}

// Close ends the session. Actions arriving afterwards, such as a late load
// resolution, are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
