package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-cvgen/pkg/profile"
	"github.com/goliatone/go-cvgen/pkg/store"
)

type captureExporter struct {
	name string
	opts Options
	err  error
}

func (c *captureExporter) Name() string        { return c.name }
func (c *captureExporter) ContentType() string { return "text/plain" }

func (c *captureExporter) Export(_ context.Context, _ *goquery.Selection, opts Options) (Artifact, error) {
	c.opts = opts
	if c.err != nil {
		return Artifact{}, c.err
	}
	return Artifact{Filename: opts.Title, Data: []byte("ok")}, nil
}

func contentSelection(t *testing.T, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return doc.Selection
}

func gatewayFixture(t *testing.T, user map[string]any, exporters ...Exporter) *Gateway {
	t.Helper()
	model := profile.New(profile.WithStore(store.NewMemory()), profile.WithUser(user))
	g := NewGateway(model)
	for _, exporter := range exporters {
		g.Registry().MustRegister(exporter)
	}
	return g
}

func TestExportAs_DefaultTitleFromProfile(t *testing.T) {
	capture := &captureExporter{name: KindPDF}
	g := gatewayFixture(t, map[string]any{"lastname": "Doe", "firstname": "Jane"}, capture)

	if _, err := g.ExportAs(context.Background(), KindPDF, contentSelection(t, "<p>cv</p>"), Options{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if capture.opts.Title != "CV - Doe Jane" {
		t.Fatalf("unexpected default title: %q", capture.opts.Title)
	}
}

func TestExportAs_TitleSuffixesOnlyWhenPresent(t *testing.T) {
	capture := &captureExporter{name: KindPDF}
	g := gatewayFixture(t, nil, capture)

	if _, err := g.ExportAs(context.Background(), KindPDF, contentSelection(t, "<p>cv</p>"), Options{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if capture.opts.Title != "CV" {
		t.Fatalf("empty profile should title plain CV, got %q", capture.opts.Title)
	}
}

func TestExportAs_CallerTitleWinsButIsSanitised(t *testing.T) {
	capture := &captureExporter{name: KindPDF}
	g := gatewayFixture(t, map[string]any{"lastname": "Doe"}, capture)

	_, err := g.ExportAs(context.Background(), KindPDF, contentSelection(t, "<p>cv</p>"), Options{
		Title: "my/cv:final?",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if capture.opts.Title != "my-cv-final-" {
		t.Fatalf("unexpected sanitised title: %q", capture.opts.Title)
	}
}

func TestExportAs_NilContentFailsFast(t *testing.T) {
	g := gatewayFixture(t, nil, &captureExporter{name: KindPDF})

	_, err := g.ExportAs(context.Background(), KindPDF, nil, Options{})
	if err == nil {
		t.Fatalf("nil content must be refused")
	}
	if !strings.Contains(err.Error(), "content") {
		t.Fatalf("error should name the missing argument: %v", err)
	}
}

func TestExportAs_UnknownKind(t *testing.T) {
	g := gatewayFixture(t, nil)

	if _, err := g.ExportAs(context.Background(), "docx", contentSelection(t, "<p>cv</p>"), Options{}); err == nil {
		t.Fatalf("unknown exporter kind must fail")
	}
}

func TestExportAs_StripsHTMLOnlyOptionsForOtherKinds(t *testing.T) {
	pdf := &captureExporter{name: KindPDF}
	html := &captureExporter{name: KindHTML}
	g := gatewayFixture(t, nil, pdf, html)
	opts := Options{Template: "tpl.html", Styles: []string{"a.css"}}

	if _, err := g.ExportAs(context.Background(), KindPDF, contentSelection(t, "<p>cv</p>"), opts); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if pdf.opts.Template != "" || pdf.opts.Styles != nil {
		t.Fatalf("html-only options must be stripped for pdf: %+v", pdf.opts)
	}

	if _, err := g.ExportAs(context.Background(), KindHTML, contentSelection(t, "<p>cv</p>"), opts); err != nil {
		t.Fatalf("export html: %v", err)
	}
	if html.opts.Template != "tpl.html" || len(html.opts.Styles) != 1 {
		t.Fatalf("html path must keep its locators: %+v", html.opts)
	}
}

func TestExportAs_CollaboratorErrorsPropagate(t *testing.T) {
	boom := errors.New("collaborator down")
	g := gatewayFixture(t, nil, &captureExporter{name: KindPDF, err: boom})

	_, err := g.ExportAs(context.Background(), KindPDF, contentSelection(t, "<p>cv</p>"), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("collaborator error lost: %v", err)
	}
}

func TestRegistry_DuplicateNamesRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&captureExporter{name: KindHTML}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(&captureExporter{name: KindHTML}); err == nil {
		t.Fatalf("duplicate register must fail")
	}
	if !r.Has(KindHTML) {
		t.Fatalf("registered exporter missing")
	}
	if got := r.List(); len(got) != 1 || got[0] != KindHTML {
		t.Fatalf("unexpected list: %v", got)
	}
}
