package summary

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cvgen/pkg/profile"
	"github.com/goliatone/go-cvgen/pkg/store"
)

func newTestModel(t *testing.T, user map[string]any) *profile.Model {
	t.Helper()
	return profile.New(
		profile.WithStore(store.NewMemory()),
		profile.WithUser(user),
	)
}

func TestRenderFilledProfile(t *testing.T) {
	model := newTestModel(t, map[string]any{
		"firstname": "Jane",
		"lastname":  "Doe",
		"headline":  "Staff Engineer",
		"email":     "jane@example.com",
		"social": map[string]any{
			"github":  "janedoe",
			"website": "https://janedoe.dev",
		},
		"experiences": []any{
			map[string]any{
				"title":      "Engineer",
				"location":   "Lyon",
				"start_date": "2019-02-01",
				"end_date":   "2023-06-30",
			},
		},
		"languages": []any{
			map[string]any{"name": "French", "level": "Native"},
		},
	})

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	out, err := renderer.Render(model)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"Summary of your information",
		"Name: Jane Doe",
		"Headline: Staff Engineer",
		"Email: jane@example.com",
		"GitHub: janedoe",
		"Website: https://janedoe.dev",
		"Title: Engineer",
		"Location: Lyon",
		"Period: 2019-02-01 to 2023-06-30",
		"French (Native)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("Render() output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSkipsEmptyGroups(t *testing.T) {
	model := newTestModel(t, map[string]any{
		"firstname": "Jane",
	})

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	out, err := renderer.Render(model)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(out, "Name: Jane") {
		t.Fatalf("Render() missing personal group:\n%s", out)
	}
	for _, absent := range []string{"Experience", "Education", "Competences", "Languages", "Social profiles"} {
		if strings.Contains(out, absent) {
			t.Fatalf("Render() should omit empty group %q:\n%s", absent, out)
		}
	}
}

func TestRenderOpenEndedPeriod(t *testing.T) {
	model := newTestModel(t, map[string]any{
		"experiences": []any{
			map[string]any{"title": "Consultant", "start_date": "2024-01-15"},
		},
	})

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	out, err := renderer.Render(model)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Period: since 2024-01-15") {
		t.Fatalf("Render() missing open-ended period:\n%s", out)
	}
}

func TestRenderNilModel(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, err := renderer.Render(nil); err == nil {
		t.Fatal("Render(nil) expected error, got nil")
	}
}

func TestRenderCustomTitle(t *testing.T) {
	model := newTestModel(t, map[string]any{"firstname": "Jane"})

	renderer, err := NewRenderer(WithTitle("Before you export"))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	out, err := renderer.Render(model)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Before you export") {
		t.Fatalf("Render() missing custom title:\n%s", out)
	}
}
