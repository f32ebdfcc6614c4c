package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/roster"
)

// DefaultEndpoint is the public collection used when none is configured.
const DefaultEndpoint = "https://dummyjson.com/users"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// collectionPayload is the success body: {"users": [...]}.
type collectionPayload struct {
	Users []roster.Record `json:"users"`
}

// HTTPFetcher fetches the collection with a single GET request.
type HTTPFetcher struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

// NewHTTPFetcher creates a fetcher for endpoint. Zero values select the defaults.
func NewHTTPFetcher(endpoint string, timeout time.Duration) *HTTPFetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
		Timeout:  timeout,
	}
}

// Fetch requests the collection. Any non-2xx status, transport failure or
// undecodable body is returned as a *LoadError.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]roster.Record, error) {
	log := logging.FromContext(ctx)

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, f.Endpoint, nil)
	if err != nil {
		return nil, &LoadError{Message: err.Error(), Err: fmt.Errorf("building request for %s: %w", f.Endpoint, err)}
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "loader").
			Str("endpoint", f.Endpoint).
			Err(err).
			Msg("collection request failed")
		return nil, &LoadError{Message: err.Error(), Err: fmt.Errorf("fetching %s: %w", f.Endpoint, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Ctx(ctx).
			Str("component", "loader").
			Str("endpoint", f.Endpoint).
			Int("status", resp.StatusCode).
			Msg("collection endpoint returned non-success status")
		return nil, &LoadError{
			Message: MsgNotFound,
			Err:     fmt.Errorf("fetching %s: HTTP %d", f.Endpoint, resp.StatusCode),
		}
	}

	var payload collectionPayload
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, &LoadError{
			Message: decodeErr.Error(),
			Err:     fmt.Errorf("decoding %s: %w", f.Endpoint, decodeErr),
		}
	}

	log.Debug().Ctx(ctx).
		Str("component", "loader").
		Str("endpoint", f.Endpoint).
		Int("records", len(payload.Users)).
		Dur("elapsed", time.Since(start)).
		Msg("collection fetched")

	if payload.Users == nil {
		return []roster.Record{}, nil
	}
	return payload.Users, nil
}
