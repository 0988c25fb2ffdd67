package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	cvgen "github.com/goliatone/go-cvgen"
	"github.com/goliatone/go-cvgen/internal/config"
	"github.com/goliatone/go-cvgen/pkg/prompt"
	"github.com/goliatone/go-cvgen/pkg/store"
	"github.com/goliatone/go-cvgen/pkg/summary"
	"github.com/goliatone/go-cvgen/pkg/theme"
)

func main() {
	configPath := flag.String("config", config.DefaultFileName, "config file path")
	profilePath := flag.String("profile", "", "JSON file seeding the user section")
	interactive := flag.Bool("interactive", false, "collect profile data interactively")
	recap := flag.Bool("summary", false, "print a recap of the stored profile")
	themeName := flag.String("theme", "", "theme name from the catalog")
	variant := flag.String("variant", "", "theme variant")
	template := flag.String("template", "", "template locator override (path or URL)")
	palette := flag.String("palette", "", "palette locator override (path or URL)")
	format := flag.String("export", "", "export kind (html)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	options := []cvgen.Option{
		cvgen.WithStorageKey(cfg.Storage.Key),
	}
	if cfg.Storage.Dir != "" {
		options = append(options, cvgen.WithStore(store.NewFile(cfg.Storage.Dir)))
	}
	if seed := loadSeed(*profilePath); seed != nil {
		options = append(options, cvgen.WithSeedUser(seed))
	}

	var selector *theme.StaticSelector
	if cfg.Theme.Catalog != "" {
		selector, err = theme.LoadCatalog(cfg.Theme.Catalog)
		if err != nil {
			log.Fatalf("Failed to load theme catalog: %v", err)
		}
		options = append(options, cvgen.WithThemeSelector(selector))
	}

	builder := cvgen.New(options...)

	name := firstNonEmpty(*themeName, cfg.Theme.Name)
	if *interactive {
		session, err := prompt.NewSession(builder.Model())
		if err != nil {
			log.Fatalf("Failed to start prompt session: %v", err)
		}
		if err := session.Collect(ctx); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Fatal("Aborted.")
			}
			log.Fatalf("Failed to collect profile: %v", err)
		}
		if name == "" && selector != nil {
			name, err = session.ChooseTheme(ctx, selector.Names())
			if err != nil {
				log.Fatalf("Failed to choose theme: %v", err)
			}
		}
	}

	if *recap {
		renderer, err := summary.NewRenderer()
		if err != nil {
			log.Fatalf("Failed to build summary renderer: %v", err)
		}
		out, err := renderer.Render(builder.Model())
		if err != nil {
			log.Fatalf("Failed to render summary: %v", err)
		}
		fmt.Println(out)
		return
	}

	preview := cvgen.PreviewRequest{
		Theme:    name,
		Variant:  firstNonEmpty(*variant, cfg.Theme.Variant),
		Template: firstNonEmpty(*template, cfg.Theme.Template),
		Palette:  firstNonEmpty(*palette, cfg.Theme.Palette),
	}

	artifact, err := builder.Export(ctx, cvgen.ExportRequest{
		Kind:    firstNonEmpty(*format, cfg.Export.Format),
		Preview: preview,
		Options: cvgen.ExportOptions{
			Title: cfg.Export.Title,
		},
	})
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}

	if *output == "" && cfg.Export.OutputDir != "" {
		*output = filepath.Join(cfg.Export.OutputDir, artifact.Filename)
	}
	if *output != "" {
		if err := os.WriteFile(*output, artifact.Data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Exported to %s\n", *output)
	} else {
		fmt.Println(string(artifact.Data))
	}
}

// loadSeed reads a JSON object used to seed the user section. A missing flag
// returns nil; a malformed file is fatal.
func loadSeed(path string) map[string]any {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read profile seed: %v", err)
	}
	seed := map[string]any{}
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("Failed to parse profile seed: %v", err)
	}
	return seed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
