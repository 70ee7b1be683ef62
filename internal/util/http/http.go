// Package http downloads remote images with a bounded body size and a
// per-request deadline.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/version"
)

const (
	// UserAgentName prefixes the User-Agent sent with every request.
	UserAgentName = "swatch"

	// DefaultTimeout applies when FetchOptions.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes applies when FetchOptions.MaxBytes is zero.
	DefaultMaxBytes = 32 << 20

	acceptImages = "image/png,image/jpeg,image/gif,image/webp;q=0.9,*/*;q=0.1"
)

// FetchOptions bounds a single download. The zero value is usable.
type FetchOptions struct {
	Timeout  time.Duration
	MaxBytes int64

	// Client replaces the default client built from Timeout.
	Client *http.Client
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	return o
}

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Fetch downloads url and returns its body. A body over MaxBytes yields
// security.ErrSizeLimit, and a non-200 response yields *StatusError.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	opts = opts.withDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgentName+"/"+version.Version)
	req.Header.Set("Accept", acceptImages)

	resp, err := opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}
	if resp.ContentLength > opts.MaxBytes {
		return nil, fmt.Errorf("%w: %s declares %d bytes", security.ErrSizeLimit, url, resp.ContentLength)
	}

	body, err := io.ReadAll(security.NewLimitedReader(resp.Body, opts.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
