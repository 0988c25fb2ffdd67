// Package export materializes a populated preview document as a
// downloadable artifact. The gateway owns title derivation and option
// hygiene; the actual byte production is delegated to registered exporter
// collaborators.
package export

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Well-known exporter kinds.
const (
	KindHTML = "html"
	KindPDF  = "pdf"
)

// Position controls where a host page inserts an export trigger relative
// to its mount point.
type Position string

const (
	PositionBefore Position = "before"
	PositionStart  Position = "start"
	PositionEnd    Position = "end"
	PositionAfter  Position = "after"
)

// Options configure one export call.
type Options struct {
	// Title overrides the default export title derived from the profile.
	Title string
	// Position places the export trigger relative to the mount point.
	Position Position
	// ButtonText labels the export trigger.
	ButtonText string
	// Format is a raster format hint for image-based exporters.
	Format string
	// Template and Styles are HTML-export-only locators; the gateway
	// strips them before other exporter kinds see the options.
	Template string
	Styles   []string
	// ElementsToNotDisplay lists selectors hidden during capture.
	ElementsToNotDisplay []string
}

// Artifact is a produced download: a suggested file name, its content
// type, and the bytes.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter converts a content selection into an artifact.
type Exporter interface {
	Name() string
	ContentType() string
	Export(ctx context.Context, content *goquery.Selection, opts Options) (Artifact, error)
}

// Fetcher resolves template and style locators for exporters that need to
// re-fetch theme assets.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}
