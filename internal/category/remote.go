package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	swerr "github.com/fluttertools/pubsweep/internal/errors"
	"github.com/fluttertools/pubsweep/internal/logging"
)

// Remote queries the shared category API. Lookups carry a short timeout so a
// slow or unreachable API degrades to heuristics instead of stalling the
// grouping command.
type Remote struct {
	// BaseURL is the categories endpoint, e.g.
	// https://api.pubsweep.dev/v1/categories.
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
	// Publish enables echoing resolved categories back to the API.
	Publish bool

	client *http.Client
}

// NewRemote creates a remote resolver. A zero timeout defaults to 5 seconds.
func NewRemote(baseURL string, timeout time.Duration, publish bool) *Remote {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{
		BaseURL: baseURL,
		Timeout: timeout,
		Publish: publish,
		client:  &http.Client{Timeout: timeout},
	}
}

// Categories fetches categories for the requested names in one GET:
//
//	GET <base>?packages=a,b,c  ->  {"a": "Networking", "b": "State Management"}
//
// Names the API does not know are simply absent from the response.
func (r *Remote) Categories(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	reqURL := r.BaseURL + "?packages=" + url.QueryEscape(strings.Join(names, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, swerr.NetworkUnavailable(r.BaseURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pubsweep")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, swerr.OperationTimeout("category lookup", r.Timeout)
		}
		return nil, swerr.NetworkUnavailable(r.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, swerr.NetworkUnavailable(r.BaseURL, fmt.Errorf("category API returned status %d", resp.StatusCode))
	}

	hits := make(map[string]string)
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, swerr.NetworkUnavailable(r.BaseURL, fmt.Errorf("malformed category API response: %w", err))
	}
	return hits, nil
}

// PublishCategories POSTs resolved categories back to the API, best effort.
// Failures are logged and never surfaced to the caller.
func (r *Remote) PublishCategories(ctx context.Context, entries map[string]string) {
	if len(entries) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	body, err := json.Marshal(entries)
	if err != nil {
		logging.Debug("category publish skipped", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL, bytes.NewReader(body))
	if err != nil {
		logging.Debug("category publish skipped", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "pubsweep")

	resp, err := r.client.Do(req)
	if err != nil {
		logging.Debug("category publish failed", "error", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		logging.Debug("category publish rejected", "status", resp.StatusCode)
	}
}
