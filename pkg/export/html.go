package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-cvgen/internal/fetch"
)

// HTMLOption customises the HTML exporter.
type HTMLOption func(*HTMLExporter)

// WithHTMLFetcher injects the locator fetcher used for the template head
// and style sheets.
func WithHTMLFetcher(f Fetcher) HTMLOption {
	return func(e *HTMLExporter) {
		if f != nil {
			e.fetcher = f
		}
	}
}

// WithHTMLLogger injects a structured logger. Defaults to slog.Default.
func WithHTMLLogger(logger *slog.Logger) HTMLOption {
	return func(e *HTMLExporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// HTMLExporter packages the content into a standalone HTML document: the
// theme template's head, the fetched style sheets inlined, and the content
// markup as the body.
type HTMLExporter struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewHTML constructs the HTML exporter applying any provided options.
func NewHTML(options ...HTMLOption) *HTMLExporter {
	e := &HTMLExporter{
		fetcher: fetch.Locator{},
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

func (e *HTMLExporter) Name() string {
	return KindHTML
}

func (e *HTMLExporter) ContentType() string {
	return "text/html; charset=utf-8"
}

// Export assembles the standalone document. A template fetch failure is
// fatal; a single style sheet failing to fetch degrades to a warning since
// the document is still usable without that decoration.
func (e *HTMLExporter) Export(ctx context.Context, content *goquery.Selection, opts Options) (Artifact, error) {
	head, err := e.templateHead(ctx, opts.Template)
	if err != nil {
		return Artifact{}, err
	}

	for _, locator := range opts.Styles {
		css, err := e.fetcher.Fetch(ctx, locator)
		if err != nil {
			e.logger.Warn("style sheet skipped", "locator", locator, "error", err)
			continue
		}
		head.WriteString("<style>")
		head.Write(css)
		head.WriteString("</style>")
	}

	body, err := content.Html()
	if err != nil {
		return Artifact{}, fmt.Errorf("html exporter: serialize content: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<title>")
	doc.WriteString(html.EscapeString(opts.Title))
	doc.WriteString("</title>\n")
	doc.WriteString(head.String())
	doc.WriteString("\n</head>\n<body>\n")
	doc.WriteString(body)
	doc.WriteString("\n</body>\n</html>\n")

	return Artifact{
		Filename:    opts.Title + ".html",
		ContentType: e.ContentType(),
		Data:        []byte(doc.String()),
	}, nil
}

// templateHead extracts the head markup from the theme template, minus its
// title element, which the export title replaces.
func (e *HTMLExporter) templateHead(ctx context.Context, locator string) (*bytes.Buffer, error) {
	head := &bytes.Buffer{}
	if locator == "" {
		return head, nil
	}

	raw, err := e.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("html exporter: fetch template %q: %w", locator, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("html exporter: parse template %q: %w", locator, err)
	}

	doc.Find("head title").Remove()
	markup, err := doc.Find("head").Html()
	if err != nil {
		return nil, fmt.Errorf("html exporter: serialize template head: %w", err)
	}
	head.WriteString(markup)
	return head, nil
}
