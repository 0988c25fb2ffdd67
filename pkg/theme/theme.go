// Package theme resolves a theme selection into the template and palette
// locators the projection engine consumes. Manifests follow the go-theme
// contract so hosts can plug their own providers.
package theme

import (
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Built-in fallback locators, used whenever a theme does not pin its own.
const (
	DefaultTemplate = "themes/templates/default/index.html"
	DefaultPalette  = "themes/palettes/default/style.css"
)

// Asset file keys a CV theme manifest is expected to carry.
const (
	AssetTemplate = "template"
	AssetPalette  = "palette"
)

// Selection is a resolved theme: concrete locators plus the names that
// produced them.
type Selection struct {
	Theme    string
	Variant  string
	Template string
	Palette  string
}

// Option customises the resolver.
type Option func(*Resolver)

// WithFallbacks overrides the built-in default locators.
func WithFallbacks(template, palette string) Option {
	return func(r *Resolver) {
		if template != "" {
			r.fallbackTemplate = template
		}
		if palette != "" {
			r.fallbackPalette = palette
		}
	}
}

// Resolver turns theme names into locators through a go-theme selector.
type Resolver struct {
	selector         gotheme.ThemeSelector
	fallbackTemplate string
	fallbackPalette  string
}

// NewResolver wraps a selector. A nil selector is allowed; Resolve then
// always answers with the fallback locators.
func NewResolver(selector gotheme.ThemeSelector, options ...Option) *Resolver {
	r := &Resolver{
		selector:         selector,
		fallbackTemplate: DefaultTemplate,
		fallbackPalette:  DefaultPalette,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve looks the theme up and derives locators from its manifest assets,
// applying variant overrides. Missing asset entries fall back to the
// defaults; an unknown theme is an error.
func (r *Resolver) Resolve(name, variant string) (Selection, error) {
	resolved := Selection{
		Theme:    name,
		Variant:  variant,
		Template: r.fallbackTemplate,
		Palette:  r.fallbackPalette,
	}
	if name == "" || r.selector == nil {
		return resolved, nil
	}

	selection, err := r.selector.Select(name, variant)
	if err != nil {
		return Selection{}, fmt.Errorf("theme: select %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return resolved, nil
	}

	manifest := selection.Manifest
	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	for key, file := range manifest.Assets.Files {
		files[key] = file
	}
	if variantSpec, ok := manifest.Variants[selection.Variant]; ok {
		if variantSpec.Assets.Prefix != "" {
			prefix = variantSpec.Assets.Prefix
		}
		for key, file := range variantSpec.Assets.Files {
			files[key] = file
		}
	}

	if file := files[AssetTemplate]; file != "" {
		resolved.Template = joinAsset(prefix, file)
	}
	if file := files[AssetPalette]; file != "" {
		resolved.Palette = joinAsset(prefix, file)
	}
	resolved.Theme = selection.Theme
	resolved.Variant = selection.Variant
	return resolved, nil
}

// joinAsset joins a manifest prefix and a file path without touching the
// locator scheme.
func joinAsset(prefix, file string) string {
	if prefix == "" {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
}
