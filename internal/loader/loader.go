// Package loader fetches the remote collection and reports the outcome to the
// state machine as a fixed sequence of actions.
package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/roster"
	"github.com/rshade/rosterview/internal/state"
)

// loadKey is the singleflight key; there is one collection per loader.
const loadKey = "collection"

// Fetcher obtains the full collection. Implementations should honour ctx.
type Fetcher interface {
	Fetch(ctx context.Context) ([]roster.Record, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]roster.Record, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]roster.Record, error) {
	return f(ctx)
}

// Dispatch receives actions produced by a load.
type Dispatch func(state.Action)

// Loader runs fetches with at most one in flight. Concurrent callers share
// the result of the fetch already running.
type Loader struct {
	fetcher Fetcher
	group   singleflight.Group
}

// New creates a Loader around fetcher.
func New(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load fetches the collection. Failures are returned as *LoadError.
//
// The shared fetch runs under the context of the caller that started it.
// Each caller still returns as soon as its own ctx is done, and a joiner
// whose ctx is live retries once when the fetch it joined was cancelled by
// its starter.
func (l *Loader) Load(ctx context.Context) ([]roster.Record, error) {
	res := l.load(ctx)
	if res.Err != nil && res.Shared && ctx.Err() == nil && isCancellation(res.Err) {
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "loader").
			Msg("joined load was cancelled by its starter, retrying")
		res = l.load(ctx)
	}
	if res.Err != nil {
		return nil, AsLoadError(res.Err)
	}

	records, _ := res.Val.([]roster.Record)
	// Shared callers receive the same slice; hand each one its own copy.
	return roster.NewStore(records).Records(), nil
}

// load joins or starts the shared fetch and waits for it or for ctx.
func (l *Loader) load(ctx context.Context) singleflight.Result {
	ch := l.group.DoChan(loadKey, func() (any, error) {
		return l.fetch(ctx)
	})

	select {
	case <-ctx.Done():
		return singleflight.Result{Err: ctx.Err()}
	case res := <-ch:
		if res.Shared {
			logging.FromContext(ctx).Debug().Ctx(ctx).
				Str("component", "loader").
				Msg("joined in-flight load")
		}
		return res
	}
}

// fetch calls the fetcher. A panicking fetcher is reported as an error.
func (l *Loader) fetch(ctx context.Context) (records []roster.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return l.fetcher.Fetch(ctx)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Begin returns the actions dispatched before a fetch starts.
func Begin() []state.Action {
	return []state.Action{
		state.SetLoading{Loading: true},
		state.SetError{Present: false},
	}
}

// Finish returns the actions that report a fetch outcome: the records or the
// failure, then end-loading.
func Finish(records []roster.Record, err error) []state.Action {
	outcome := state.Action(state.SetRecords{Records: records})
	if loadErr := AsLoadError(err); loadErr != nil {
		outcome = state.SetError{Present: true, Message: loadErr.Error()}
	}
	return []state.Action{outcome, state.SetLoading{Loading: false}}
}

// Run performs one load, dispatching Begin before the fetch and Finish after
// it. End-loading is always dispatched last, also when dispatch panics on the
// outcome.
func (l *Loader) Run(ctx context.Context, dispatch Dispatch) {
	log := logging.FromContext(ctx)

	for _, a := range Begin() {
		dispatch(a)
	}

	defer dispatch(state.SetLoading{Loading: false})

	records, err := l.Load(ctx)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "loader").
			Str("operation", "run").
			Err(err).
			Msg("collection load failed")
	} else {
		log.Info().Ctx(ctx).
			Str("component", "loader").
			Str("operation", "run").
			Int("records", len(records)).
			Msg("collection loaded")
	}

	dispatch(Finish(records, err)[0])
}

// Start runs the load in a goroutine and delivers its actions on the
// returned channel, which is closed once end-loading has been sent.
// Cancelling ctx aborts the fetch; the sequence still completes.
func (l *Loader) Start(ctx context.Context) <-chan state.Action {
	// Capacity covers the whole sequence; sends never block.
	done := make(chan state.Action, 4) //nolint:mnd // begin, clear, outcome, end.
	go func() {
		defer close(done)
		l.Run(ctx, func(a state.Action) { done <- a })
	}()
	return done
}
