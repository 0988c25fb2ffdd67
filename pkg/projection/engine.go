// Package projection populates an externally supplied HTML template with
// profile data. Fields bind onto template slots by a fixed CSS-selector
// convention; a template lacking a slot simply receives no value.
package projection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cvgen/internal/fetch"
	"github.com/goliatone/go-cvgen/pkg/profile"
	"github.com/goliatone/go-cvgen/pkg/theme"
)

// Fetcher resolves template and palette locators to raw text content.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithFetcher injects the locator fetcher. Defaults to the built-in
// file/http dispatcher.
func WithFetcher(f Fetcher) Option {
	return func(e *Engine) {
		if f != nil {
			e.fetcher = f
		}
	}
}

// WithSanitizer overrides the policy applied to user-provided scalar values
// before they reach the document.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.policy = policy
		}
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine projects profile data onto fetched templates.
type Engine struct {
	fetcher Fetcher
	policy  *bluemonday.Policy
	logger  *slog.Logger
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{
		fetcher: fetch.Locator{},
		policy:  bluemonday.StrictPolicy(),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ProjectOptions carry per-call locator overrides. Empty fields fall back
// to the profile's theme selection, then to the built-in defaults.
type ProjectOptions struct {
	Template string
	Palette  string
}

// Result is a populated template document.
type Result struct {
	doc *goquery.Document

	// Template and Palette report the locators the projection resolved to.
	Template string
	Palette  string
}

// Project fetches and parses the resolved template, attaches the palette
// stylesheet, and populates every binding-table slot. A template fetch or
// parse failure is fatal to the call; individual field population is
// defensive and degrades to the field's default.
func (e *Engine) Project(ctx context.Context, model *profile.Model, opts ProjectOptions) (*Result, error) {
	if model == nil {
		return nil, errors.New("projection: profile model is required")
	}

	themeInfo := model.Theme()
	templateLoc := firstNonEmpty(opts.Template, themeInfo.Template, theme.DefaultTemplate)
	paletteLoc := firstNonEmpty(opts.Palette, themeInfo.Palette, theme.DefaultPalette)

	raw, err := e.fetcher.Fetch(ctx, templateLoc)
	if err != nil {
		return nil, fmt.Errorf("projection: fetch template %q: %w", templateLoc, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("projection: parse template %q: %w", templateLoc, err)
	}

	if paletteLoc != "" {
		doc.Find("head").AppendHtml(
			`<link rel="stylesheet" href="` + html.EscapeString(paletteLoc) + `">`)
	}

	view := newBindingView(model.User())
	for _, b := range bindings {
		e.applyBinding(doc, b, view)
	}

	return &Result{doc: doc, Template: templateLoc, Palette: paletteLoc}, nil
}

// AppendTo appends the populated document's root element into the given
// mount point. Repeated calls duplicate content; callers clear prior output
// when re-rendering.
func (r *Result) AppendTo(mount *goquery.Selection) error {
	if mount == nil {
		return errors.New("projection: mount selection is required")
	}
	mount.AppendSelection(r.doc.Find("html"))
	return nil
}

// Selection exposes the populated document root for exporters.
func (r *Result) Selection() *goquery.Selection {
	return r.doc.Selection
}

// HTML serializes the populated document.
func (r *Result) HTML() (string, error) {
	out, err := r.doc.Html()
	if err != nil {
		return "", fmt.Errorf("projection: serialize document: %w", err)
	}
	return out, nil
}

// plainText strips any markup from a user-provided value so it lands in the
// document as text, never parsed HTML. The sanitizer entity-encodes its
// output, so decode once before handing the value to SetText.
func (e *Engine) plainText(value string) string {
	return html.UnescapeString(e.policy.Sanitize(value))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
