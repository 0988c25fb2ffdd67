// Package fetch retrieves template and palette documents addressed by
// opaque string locators, delegating to file, fs.FS, or HTTP strategies.
package fetch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher resolves a locator to raw text content.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// File reads locators as paths on disk.
type File struct{}

func (File) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if locator == "" {
		return nil, errors.New("fetch: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(locator)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// FS reads locators from an fs.FS, typically an embedded theme bundle.
type FS struct {
	Files fs.FS
}

func (f FS) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if locator == "" {
		return nil, errors.New("fetch: fs path is required")
	}
	if f.Files == nil {
		return nil, errors.New("fetch: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return fs.ReadFile(f.Files, locator)
}

// HTTP retrieves locators over the network. A non-2xx response is an error.
type HTTP struct {
	Client  *http.Client
	Timeout time.Duration
}

func (h HTTP) Fetch(ctx context.Context, locator string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	if locator == "" {
		return nil, errors.New("fetch: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if h.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("fetch: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Locator dispatches on the locator shape: http(s) URLs go over the
// network, everything else is a file path.
type Locator struct {
	File File
	HTTP HTTP
}

func (l Locator) Fetch(ctx context.Context, locator string) ([]byte, error) {
	trimmed := strings.TrimSpace(locator)
	if trimmed == "" {
		return nil, errors.New("fetch: locator is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return l.HTTP.Fetch(ctx, trimmed)
	}
	return l.File.Fetch(ctx, trimmed)
}
