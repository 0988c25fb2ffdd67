// Package summary renders a plain recap of everything the user has entered so
// far, grouped by section. The recap is meant for review screens and prompt
// flows, not for the themed document itself.
package summary

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-cvgen/pkg/profile"
)

// DefaultTemplate is the embedded recap template name.
const DefaultTemplate = "templates/summary"

// DefaultTitle heads the recap when the caller does not override it.
const DefaultTitle = "Summary of your information"

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine swaps the template engine.
func WithEngine(engine *Engine) RendererOption {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplate selects a different template name inside the engine.
func WithTemplate(name string) RendererOption {
	return func(r *Renderer) {
		if strings.TrimSpace(name) != "" {
			r.template = name
		}
	}
}

// WithTitle overrides the recap heading.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		if strings.TrimSpace(title) != "" {
			r.title = title
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer produces the recap HTML for a profile model.
type Renderer struct {
	engine   *Engine
	template string
	title    string
	logger   *slog.Logger
}

// NewRenderer builds a Renderer backed by the embedded recap template unless
// an engine override is supplied.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		template: DefaultTemplate,
		title:    DefaultTitle,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		engine, err := NewEngine(WithFS(Templates))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// Render walks the model's user section and renders the recap. Sections the
// user never filled in are left out entirely.
func (r *Renderer) Render(model *profile.Model) (string, error) {
	if model == nil {
		return "", fmt.Errorf("summary: model is required, got nil")
	}

	user := model.User()
	groups := []map[string]any{}

	if lines := personalLines(user); len(lines) > 0 {
		groups = append(groups, group("personal", "Personal details", lines, nil))
	}
	if items := experienceItems(user.Experiences); len(items) > 0 {
		groups = append(groups, group("experiences", "Experience", nil, items))
	}
	if items := educationItems(user.Educations); len(items) > 0 {
		groups = append(groups, group("educations", "Education", nil, items))
	}
	if lines := competenceLines(user.Competences); len(lines) > 0 {
		groups = append(groups, group("competences", "Competences", lines, nil))
	}
	if lines := languageLines(user.Languages); len(lines) > 0 {
		groups = append(groups, group("languages", "Languages", lines, nil))
	}
	if lines := r.socialLines(model, user.Social); len(lines) > 0 {
		groups = append(groups, group("social", "Social profiles", lines, nil))
	}

	return r.engine.RenderTemplate(r.template, map[string]any{
		"title":  r.title,
		"groups": groups,
	})
}

func group(slug, heading string, lines []string, items [][]string) map[string]any {
	return map[string]any{
		"slug":    slug,
		"heading": heading,
		"lines":   lines,
		"items":   items,
	}
}

func personalLines(user profile.UserInfo) []string {
	var lines []string
	if name := strings.TrimSpace(user.Firstname + " " + user.Lastname); name != "" {
		lines = append(lines, "Name: "+name)
	}
	lines = appendLine(lines, "Headline", user.Headline)
	lines = appendLine(lines, "Email", user.Email)
	lines = appendLine(lines, "Phone", user.Phone)
	lines = appendLine(lines, "Address", user.Address)
	if user.BirthDate != "" {
		line := "Born: " + user.BirthDate
		if age := profile.AgeFromDate(user.BirthDate); age >= 0 {
			line = fmt.Sprintf("%s (%d years old)", line, age)
		}
		lines = append(lines, line)
	}
	lines = appendLine(lines, "Driving license", user.DrivingLicense)
	lines = appendLine(lines, "Interests", user.Interests)
	lines = appendLine(lines, "Introduction", user.Introduction)
	return lines
}

func appendLine(lines []string, label, value string) []string {
	if strings.TrimSpace(value) == "" {
		return lines
	}
	return append(lines, label+": "+value)
}

func experienceItems(entries []profile.ExperienceEntry) [][]string {
	var items [][]string
	for _, entry := range entries {
		var lines []string
		lines = appendLine(lines, "Title", entry.Title)
		lines = appendLine(lines, "Location", entry.Location)
		if span := dateSpan(entry.StartDate, entry.EndDate); span != "" {
			lines = append(lines, "Period: "+span)
		}
		lines = appendLine(lines, "Description", entry.Description)
		if len(lines) > 0 {
			items = append(items, lines)
		}
	}
	return items
}

func educationItems(entries []profile.EducationEntry) [][]string {
	var items [][]string
	for _, entry := range entries {
		var lines []string
		lines = appendLine(lines, "Title", entry.Title)
		lines = appendLine(lines, "Location", entry.Location)
		if span := dateSpan(entry.StartDate, entry.EndDate); span != "" {
			lines = append(lines, "Period: "+span)
		}
		lines = appendLine(lines, "Description", entry.Description)
		if len(lines) > 0 {
			items = append(items, lines)
		}
	}
	return items
}

func dateSpan(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "since " + start
	case end != "":
		return "until " + end
	}
	return ""
}

func competenceLines(entries []profile.CompetenceEntry) []string {
	var lines []string
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		desc := strings.TrimSpace(entry.Description)
		switch {
		case name != "" && desc != "":
			lines = append(lines, name+": "+desc)
		case name != "":
			lines = append(lines, name)
		case desc != "":
			lines = append(lines, desc)
		}
	}
	return lines
}

func languageLines(entries []profile.LanguageEntry) []string {
	var lines []string
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		level := strings.TrimSpace(entry.Level)
		switch {
		case name != "" && level != "":
			lines = append(lines, name+" ("+level+")")
		case name != "":
			lines = append(lines, name)
		case level != "":
			lines = append(lines, level)
		}
	}
	return lines
}

// socialChannelLabels maps channel names to recap labels.
var socialChannelLabels = map[string]string{
	"github":   "GitHub",
	"linkedin": "LinkedIn",
	"twitter":  "Twitter",
	"website":  "Website",
}

// socialLines reads the typed channels and also scans the raw document so
// that channels written by older payloads are surfaced as warnings instead of
// vanishing silently.
func (r *Renderer) socialLines(model *profile.Model, social profile.SocialLinks) []string {
	var lines []string
	for _, channel := range []struct {
		name  string
		value string
	}{
		{"github", social.GitHub},
		{"linkedin", social.LinkedIn},
		{"twitter", social.Twitter},
		{"website", social.Website},
	} {
		if strings.TrimSpace(channel.value) == "" {
			continue
		}
		lines = append(lines, socialChannelLabels[channel.name]+": "+channel.value)
	}

	for _, name := range unknownSocialChannels(model.Document()) {
		r.logger.Warn("skipping unknown social channel", "channel", name)
	}
	return lines
}

func unknownSocialChannels(doc map[string]any) []string {
	user, ok := doc["user"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := user[profile.SectionSocial].(map[string]any)
	if !ok {
		return nil
	}
	var unknown []string
	for name := range raw {
		if !profile.KnownSocialChannel(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
