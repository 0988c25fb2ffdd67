// Package cvgen builds CV documents from locally persisted profile data. The
// root package wires the profile model, theme resolution, template projection,
// and the export gateway behind one entry point; the pkg/ packages remain
// available for callers that want to assemble the pieces themselves.
package cvgen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/profile"
	"github.com/goliatone/go-cvgen/pkg/projection"
	"github.com/goliatone/go-cvgen/pkg/store"
	"github.com/goliatone/go-cvgen/pkg/theme"
)

// ExportOptions aliases the export package options for root-level callers.
type ExportOptions = export.Options

// Artifact aliases the export artifact type.
type Artifact = export.Artifact

// Option configures the Builder.
type Option func(*builderConfig)

type builderConfig struct {
	store          store.Store
	storageKey     string
	seedUser       map[string]any
	seedTheme      map[string]any
	selector       gotheme.ThemeSelector
	themeOptions   []theme.Option
	projectOptions []projection.Option
	exporters      []export.Exporter
	logger         *slog.Logger
}

// WithStore selects the persistence backend. Defaults to an in-memory store.
func WithStore(s store.Store) Option {
	return func(cfg *builderConfig) {
		if s != nil {
			cfg.store = s
		}
	}
}

// WithStorageKey overrides the storage key the profile document lives under.
func WithStorageKey(key string) Option {
	return func(cfg *builderConfig) {
		cfg.storageKey = key
	}
}

// WithSeedUser pre-populates the user section before hydration.
func WithSeedUser(user map[string]any) Option {
	return func(cfg *builderConfig) {
		cfg.seedUser = user
	}
}

// WithSeedTheme pre-populates the theme section before hydration.
func WithSeedTheme(t map[string]any) Option {
	return func(cfg *builderConfig) {
		cfg.seedTheme = t
	}
}

// WithThemeSelector passes a go-theme selector through to the resolver so
// theme/variant choices resolve to template and palette locators.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(cfg *builderConfig) {
		cfg.selector = selector
	}
}

// WithThemeFallbacks overrides the locators used when no theme resolves.
func WithThemeFallbacks(template, palette string) Option {
	return func(cfg *builderConfig) {
		cfg.themeOptions = append(cfg.themeOptions, theme.WithFallbacks(template, palette))
	}
}

// WithProjectionOptions forwards options to the projection engine.
func WithProjectionOptions(options ...projection.Option) Option {
	return func(cfg *builderConfig) {
		cfg.projectOptions = append(cfg.projectOptions, options...)
	}
}

// WithExporters registers additional exporters alongside the built-in HTML
// exporter.
func WithExporters(exporters ...export.Exporter) Option {
	return func(cfg *builderConfig) {
		cfg.exporters = append(cfg.exporters, exporters...)
	}
}

// WithLogger attaches a structured logger to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *builderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Builder is the assembled pipeline: profile model, theme resolver,
// projection engine, and export gateway.
type Builder struct {
	model    *profile.Model
	resolver *theme.Resolver
	engine   *projection.Engine
	gateway  *export.Gateway
	logger   *slog.Logger
}

// New assembles a Builder. Every collaborator can be overridden through
// options; the zero configuration persists under the user config directory
// and registers the built-in HTML exporter.
func New(options ...Option) *Builder {
	cfg := &builderConfig{
		store:  defaultStore(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	modelOptions := []profile.Option{
		profile.WithStore(cfg.store),
		profile.WithLogger(cfg.logger),
	}
	if cfg.storageKey != "" {
		modelOptions = append(modelOptions, profile.WithStorageKey(cfg.storageKey))
	}
	if cfg.seedUser != nil {
		modelOptions = append(modelOptions, profile.WithUser(cfg.seedUser))
	}
	if cfg.seedTheme != nil {
		modelOptions = append(modelOptions, profile.WithTheme(cfg.seedTheme))
	}
	model := profile.New(modelOptions...)

	projectOptions := append([]projection.Option{projection.WithLogger(cfg.logger)}, cfg.projectOptions...)

	registry := export.NewRegistry()
	for _, exporter := range cfg.exporters {
		registry.MustRegister(exporter)
	}
	if !registry.Has(export.KindHTML) {
		registry.MustRegister(export.NewHTML(export.WithHTMLLogger(cfg.logger)))
	}

	return &Builder{
		model:    model,
		resolver: theme.NewResolver(cfg.selector, cfg.themeOptions...),
		engine:   projection.New(projectOptions...),
		gateway:  export.NewGateway(model, export.WithRegistry(registry)),
		logger:   cfg.logger,
	}
}

// Model exposes the profile model for data entry flows.
func (b *Builder) Model() *profile.Model {
	return b.model
}

// Gateway exposes the export gateway, mainly so callers can register extra
// exporters after construction.
func (b *Builder) Gateway() *export.Gateway {
	return b.gateway
}

// PreviewRequest selects what to project. Explicit locators win over the
// theme/variant pair, which wins over the theme section stored in the
// profile.
type PreviewRequest struct {
	Theme    string
	Variant  string
	Template string
	Palette  string
}

// Preview resolves the theme and projects the profile into the template.
func (b *Builder) Preview(ctx context.Context, req PreviewRequest) (*projection.Result, error) {
	opts := projection.ProjectOptions{
		Template: req.Template,
		Palette:  req.Palette,
	}
	if req.Theme != "" {
		selection, err := b.resolver.Resolve(req.Theme, req.Variant)
		if err != nil {
			return nil, err
		}
		if opts.Template == "" {
			opts.Template = selection.Template
		}
		if opts.Palette == "" {
			opts.Palette = selection.Palette
		}
	}
	return b.engine.Project(ctx, b.model, opts)
}

// ExportRequest is a preview plus an export kind and its options.
type ExportRequest struct {
	Kind    string
	Preview PreviewRequest
	Options ExportOptions
}

// Export projects the profile and hands the rendered document to the named
// exporter. The empty kind defaults to the HTML exporter.
func (b *Builder) Export(ctx context.Context, req ExportRequest) (Artifact, error) {
	result, err := b.Preview(ctx, req.Preview)
	if err != nil {
		return Artifact{}, err
	}

	kind := req.Kind
	if kind == "" {
		kind = export.KindHTML
	}
	opts := req.Options
	if opts.Template == "" {
		opts.Template = result.Template
	}
	return b.gateway.ExportAs(ctx, kind, exportContent(result.Selection()), opts)
}

// defaultStore persists under the user config directory, degrading to
// memory when no config directory resolves.
func defaultStore() store.Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		return store.NewMemory()
	}
	return store.NewFile(filepath.Join(dir, "cvgen"))
}

// exportContent narrows the projected document to its body when one exists,
// so exports do not nest a full html element inside the artifact body.
func exportContent(selection *goquery.Selection) *goquery.Selection {
	if selection == nil {
		return nil
	}
	if body := selection.Find("body"); body.Length() > 0 {
		return body
	}
	return selection
}
