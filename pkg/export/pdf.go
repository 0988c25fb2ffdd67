package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultRasterFormat is the raster hint used when the caller does not pick
// one.
const DefaultRasterFormat = "WEBP"

// Rasterizer is the external collaborator that turns HTML into PDF bytes
// via a canvas-snapshot approach. This package never implements
// rasterization itself.
type Rasterizer interface {
	Rasterize(ctx context.Context, html []byte, format string) ([]byte, error)
}

// PDFOption customises the PDF exporter.
type PDFOption func(*PDFExporter)

// WithRasterizer injects the rasterizer collaborator.
func WithRasterizer(r Rasterizer) PDFOption {
	return func(e *PDFExporter) {
		if r != nil {
			e.rasterizer = r
		}
	}
}

// PDFExporter prepares the content for capture and forwards it to the
// rasterizer collaborator.
type PDFExporter struct {
	rasterizer Rasterizer
}

// NewPDF constructs the PDF exporter applying any provided options.
func NewPDF(options ...PDFOption) *PDFExporter {
	e := &PDFExporter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

func (e *PDFExporter) Name() string {
	return KindPDF
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Export hides the requested elements on a detached copy of the content,
// so the caller's document is untouched, and hands the result to the
// rasterizer.
func (e *PDFExporter) Export(ctx context.Context, content *goquery.Selection, opts Options) (Artifact, error) {
	if e.rasterizer == nil {
		return Artifact{}, errors.New("pdf exporter: rasterizer collaborator is required")
	}

	markup, err := content.Html()
	if err != nil {
		return Artifact{}, fmt.Errorf("pdf exporter: serialize content: %w", err)
	}

	if len(opts.ElementsToNotDisplay) > 0 {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(markup)))
		if err != nil {
			return Artifact{}, fmt.Errorf("pdf exporter: reparse content: %w", err)
		}
		for _, selector := range opts.ElementsToNotDisplay {
			doc.Find(selector).SetAttr("style", "display:none")
		}
		markup, err = doc.Html()
		if err != nil {
			return Artifact{}, fmt.Errorf("pdf exporter: serialize capture copy: %w", err)
		}
	}

	format := strings.ToUpper(opts.Format)
	if format == "" {
		format = DefaultRasterFormat
	}

	data, err := e.rasterizer.Rasterize(ctx, []byte(markup), format)
	if err != nil {
		return Artifact{}, fmt.Errorf("pdf exporter: rasterize: %w", err)
	}

	return Artifact{
		Filename:    opts.Title + ".pdf",
		ContentType: e.ContentType(),
		Data:        data,
	}, nil
}
