package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-cvgen/pkg/profile"
)

// filenameSafe collapses characters that do not belong in a download file
// name. Accented letters are legal.
var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9À-ÿ ]+`)

// GatewayOption customises the gateway configuration.
type GatewayOption func(*Gateway)

// WithRegistry injects an exporter registry.
func WithRegistry(registry *Registry) GatewayOption {
	return func(g *Gateway) {
		if registry != nil {
			g.registry = registry
		}
	}
}

// Gateway is the thin façade in front of the exporter collaborators: it
// derives the default title from the profile, cleans up the options, and
// forwards.
type Gateway struct {
	model    *profile.Model
	registry *Registry
}

// NewGateway constructs a Gateway for one profile model.
func NewGateway(model *profile.Model, options ...GatewayOption) *Gateway {
	g := &Gateway{
		model:    model,
		registry: NewRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Registry exposes the gateway's exporter registry for wiring.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// ExportAs produces a download artifact of the given kind from the content
// selection. The content argument is validated synchronously before any
// exporter work begins; collaborator errors propagate to the caller.
func (g *Gateway) ExportAs(ctx context.Context, kind string, content *goquery.Selection, opts Options) (Artifact, error) {
	if content == nil {
		return Artifact{}, errors.New("export: content selection is required, got nil")
	}

	if opts.Title == "" {
		opts.Title = g.defaultTitle()
	}
	opts.Title = filenameSafe.ReplaceAllString(opts.Title, "-")

	if kind != KindHTML {
		// template and style locators only mean something to the HTML path
		opts.Template = ""
		opts.Styles = nil
	}

	exporter, err := g.registry.Get(kind)
	if err != nil {
		return Artifact{}, err
	}

	artifact, err := exporter.Export(ctx, content, opts)
	if err != nil {
		return Artifact{}, fmt.Errorf("export: %s: %w", kind, err)
	}
	return artifact, nil
}

// defaultTitle derives "CV - {lastname} {firstname}" with each name part
// included only when present.
func (g *Gateway) defaultTitle() string {
	title := "CV"
	if g.model == nil {
		return title
	}
	user := g.model.User()
	if user.Lastname != "" {
		title += " - " + user.Lastname
	}
	if user.Firstname != "" {
		title += " " + user.Firstname
	}
	return title
}
