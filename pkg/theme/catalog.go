package theme

import (
	"fmt"
	"os"
	"sort"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// StaticSelector serves manifests from an in-memory catalog. It satisfies
// the go-theme selector contract so the resolver treats it like any other
// provider.
type StaticSelector struct {
	manifests map[string]*gotheme.Manifest
}

// NewStaticSelector builds a selector over the given manifests, keyed by
// manifest name.
func NewStaticSelector(manifests ...*gotheme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*gotheme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select returns the named manifest. An unknown variant is not an error
// here; variant overrides simply do not apply downstream.
func (s *StaticSelector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: unknown theme %q", name)
	}
	return &gotheme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Names lists the catalog's theme names in sorted order.
func (s *StaticSelector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// catalogDocument is the YAML shape of a theme catalog file.
type catalogDocument struct {
	Themes []catalogManifest `yaml:"themes"`
}

type catalogManifest struct {
	Name     string                    `yaml:"name"`
	Version  string                    `yaml:"version"`
	Assets   catalogAssets             `yaml:"assets"`
	Variants map[string]catalogVariant `yaml:"variants"`
}

type catalogAssets struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type catalogVariant struct {
	Assets catalogAssets `yaml:"assets"`
}

// LoadCatalog reads a YAML theme catalog from disk and builds a selector
// over it.
func LoadCatalog(path string) (*StaticSelector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog builds a selector from raw YAML catalog content.
func ParseCatalog(raw []byte) (*StaticSelector, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("theme: parse catalog: %w", err)
	}

	manifests := make([]*gotheme.Manifest, 0, len(doc.Themes))
	for _, entry := range doc.Themes {
		manifest := &gotheme.Manifest{
			Name:    entry.Name,
			Version: entry.Version,
			Assets: gotheme.Assets{
				Prefix: entry.Assets.Prefix,
				Files:  entry.Assets.Files,
			},
		}
		if len(entry.Variants) > 0 {
			manifest.Variants = make(map[string]gotheme.Variant, len(entry.Variants))
			for name, variant := range entry.Variants {
				manifest.Variants[name] = gotheme.Variant{
					Assets: gotheme.Assets{
						Prefix: variant.Assets.Prefix,
						Files:  variant.Assets.Files,
					},
				}
			}
		}
		manifests = append(manifests, manifest)
	}
	return NewStaticSelector(manifests...), nil
}
