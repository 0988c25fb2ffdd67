package export

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubFetcher struct {
	content map[string]string
}

func (s stubFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	raw, ok := s.content[locator]
	if !ok {
		return nil, errors.New("stub: unknown locator " + locator)
	}
	return []byte(raw), nil
}

type stubRasterizer struct {
	captured []byte
	format   string
	err      error
}

func (s *stubRasterizer) Rasterize(_ context.Context, html []byte, format string) ([]byte, error) {
	s.captured = html
	s.format = format
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF"), nil
}

func TestHTMLExporter_AssemblesStandaloneDocument(t *testing.T) {
	exporter := NewHTML(WithHTMLFetcher(stubFetcher{content: map[string]string{
		"tpl.html": `<html><head><title>old</title><meta charset="utf-8"></head><body></body></html>`,
		"a.css":    "body { color: red }",
	}}))

	artifact, err := exporter.Export(context.Background(), contentSelection(t, "<p>cv content</p>"), Options{
		Title:    "CV - Doe",
		Template: "tpl.html",
		Styles:   []string{"a.css"},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	out := string(artifact.Data)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>CV - Doe</title>",
		`<meta charset="utf-8"/>`,
		"<style>body { color: red }</style>",
		"<p>cv content</p>",
	} {
		if !strings.Contains(out, want) && !strings.Contains(out, strings.ReplaceAll(want, "/>", ">")) {
			t.Fatalf("missing %q in exported document:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<title>old</title>") {
		t.Fatalf("template title must be replaced:\n%s", out)
	}
	if artifact.Filename != "CV - Doe.html" {
		t.Fatalf("unexpected filename: %q", artifact.Filename)
	}
}

func TestHTMLExporter_TemplateFetchFailureIsFatal(t *testing.T) {
	exporter := NewHTML(WithHTMLFetcher(stubFetcher{}))

	_, err := exporter.Export(context.Background(), contentSelection(t, "<p>cv</p>"), Options{
		Template: "missing.html",
	})
	if err == nil {
		t.Fatalf("template fetch failure must propagate")
	}
}

func TestHTMLExporter_UnfetchableStyleIsSkipped(t *testing.T) {
	exporter := NewHTML(WithHTMLFetcher(stubFetcher{content: map[string]string{
		"b.css": "p { margin: 0 }",
	}}))

	artifact, err := exporter.Export(context.Background(), contentSelection(t, "<p>cv</p>"), Options{
		Title:  "CV",
		Styles: []string{"missing.css", "b.css"},
	})
	if err != nil {
		t.Fatalf("one bad style must not abort the export: %v", err)
	}
	if !strings.Contains(string(artifact.Data), "p { margin: 0 }") {
		t.Fatalf("surviving style lost:\n%s", artifact.Data)
	}
}

func TestPDFExporter_ForwardsToRasterizer(t *testing.T) {
	rasterizer := &stubRasterizer{}
	exporter := NewPDF(WithRasterizer(rasterizer))

	artifact, err := exporter.Export(context.Background(), contentSelection(t, `<p class="secret">s</p><p>cv</p>`), Options{
		Title:                "CV",
		ElementsToNotDisplay: []string{"p.secret"},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	captured := string(rasterizer.captured)
	if !strings.Contains(captured, `style="display:none"`) {
		t.Fatalf("hidden elements missing from capture copy:\n%s", captured)
	}
	if rasterizer.format != DefaultRasterFormat {
		t.Fatalf("expected default format, got %q", rasterizer.format)
	}
	if artifact.Filename != "CV.pdf" || artifact.ContentType != "application/pdf" {
		t.Fatalf("unexpected artifact metadata: %+v", artifact)
	}
}

func TestPDFExporter_LeavesCallerContentUntouched(t *testing.T) {
	content := contentSelection(t, `<p class="secret">s</p>`)
	exporter := NewPDF(WithRasterizer(&stubRasterizer{}))

	if _, err := exporter.Export(context.Background(), content, Options{
		ElementsToNotDisplay: []string{"p.secret"},
	}); err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, ok := content.Find("p.secret").Attr("style"); ok {
		t.Fatalf("capture copy must not mutate the caller's document")
	}
}

func TestPDFExporter_RequiresRasterizer(t *testing.T) {
	exporter := NewPDF()
	if _, err := exporter.Export(context.Background(), contentSelection(t, "<p>cv</p>"), Options{}); err == nil {
		t.Fatalf("missing rasterizer must be an error")
	}
}

func TestPDFExporter_RasterizerErrorPropagates(t *testing.T) {
	boom := errors.New("canvas failed")
	exporter := NewPDF(WithRasterizer(&stubRasterizer{err: boom}))

	_, err := exporter.Export(context.Background(), contentSelection(t, "<p>cv</p>"), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("rasterizer error lost: %v", err)
	}
}
