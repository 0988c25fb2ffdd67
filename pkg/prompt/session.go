package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-cvgen/pkg/profile"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDriver swaps the prompt driver.
func WithDriver(driver Driver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session walks the user through filling in their profile. Answers are merged
// into the model as they are given, so an aborted session keeps everything
// entered up to that point.
type Session struct {
	driver Driver
	model  *profile.Model
	logger *slog.Logger
}

// NewSession builds a Session over the given model. The terminal-backed
// driver is used unless an override is supplied.
func NewSession(model *profile.Model, options ...SessionOption) (*Session, error) {
	if model == nil {
		return nil, fmt.Errorf("prompt: model is required, got nil")
	}
	s := &Session{
		model:  model,
		driver: NewSurveyDriver(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Collect runs the full collection flow: personal details, social channels,
// then the repeatable sections.
func (s *Session) Collect(ctx context.Context) error {
	if err := s.CollectPersonal(ctx); err != nil {
		return err
	}
	if err := s.CollectSocial(ctx); err != nil {
		return err
	}
	return s.CollectSections(ctx)
}

// personalField describes one scalar prompt in the personal details flow.
type personalField struct {
	key       string
	message   string
	help      string
	multiline bool
	validator func(string) error
	current   func(profile.UserInfo) string
}

func personalFields() []personalField {
	return []personalField{
		{key: "firstname", message: "First name", current: func(u profile.UserInfo) string { return u.Firstname }},
		{key: "lastname", message: "Last name", current: func(u profile.UserInfo) string { return u.Lastname }},
		{key: "headline", message: "Headline", help: "Shown under your name, e.g. your current role", current: func(u profile.UserInfo) string { return u.Headline }},
		{key: "email", message: "Email", current: func(u profile.UserInfo) string { return u.Email }},
		{key: "phone", message: "Phone", current: func(u profile.UserInfo) string { return u.Phone }},
		{key: "address", message: "Address", current: func(u profile.UserInfo) string { return u.Address }},
		{key: "birth_date", message: "Birth date", help: "YYYY-MM-DD, leave empty to skip", validator: validBirthDate, current: func(u profile.UserInfo) string { return u.BirthDate }},
		{key: "driving_license", message: "Driving license", current: func(u profile.UserInfo) string { return u.DrivingLicense }},
		{key: "interests", message: "Interests", current: func(u profile.UserInfo) string { return u.Interests }},
		{key: "introduction", message: "Introduction", multiline: true, current: func(u profile.UserInfo) string { return u.Introduction }},
	}
}

// CollectPersonal prompts for the scalar personal fields. Empty answers leave
// stored values untouched.
func (s *Session) CollectPersonal(ctx context.Context) error {
	user := s.model.User()
	partial := map[string]any{}

	for _, field := range personalFields() {
		var (
			answer string
			err    error
		)
		if field.multiline {
			answer, err = s.driver.TextArea(ctx, TextAreaConfig{
				Message: field.message,
				Default: field.current(user),
				Help:    field.help,
			})
		} else {
			answer, err = s.driver.Input(ctx, InputConfig{
				Message:   field.message,
				Default:   field.current(user),
				Help:      field.help,
				Validator: field.validator,
			})
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != "" {
			partial[field.key] = answer
		}
	}

	if len(partial) > 0 {
		s.model.SetUser(partial, true)
	}
	return nil
}

// socialPrompts pairs channel names with their prompt messages.
var socialPrompts = []struct {
	channel string
	message string
	help    string
}{
	{"github", "GitHub handle", "Just the handle, not the full URL"},
	{"linkedin", "LinkedIn handle", "Just the handle, not the full URL"},
	{"twitter", "Twitter handle", "Just the handle, not the full URL"},
	{"website", "Personal website", "Full URL including https://"},
}

// CollectSocial prompts for each social channel.
func (s *Session) CollectSocial(ctx context.Context) error {
	social := s.model.User().Social
	current := map[string]string{
		"github":   social.GitHub,
		"linkedin": social.LinkedIn,
		"twitter":  social.Twitter,
		"website":  social.Website,
	}
	for _, p := range socialPrompts {
		answer, err := s.driver.Input(ctx, InputConfig{
			Message: p.message,
			Default: current[p.channel],
			Help:    p.help,
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			continue
		}
		s.model.SetSocial(p.channel, answer, true)
	}
	return nil
}

// CollectSections runs the add-another loops for the repeatable sections.
func (s *Session) CollectSections(ctx context.Context) error {
	if err := s.collectRepeated(ctx, "work experience", s.collectExperience); err != nil {
		return err
	}
	if err := s.collectRepeated(ctx, "education", s.collectEducation); err != nil {
		return err
	}
	if err := s.collectRepeated(ctx, "competence", s.collectCompetence); err != nil {
		return err
	}
	return s.collectRepeated(ctx, "language", s.collectLanguage)
}

func (s *Session) collectRepeated(ctx context.Context, label string, collect func(context.Context) (bool, error)) error {
	for {
		add, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a %s entry?", label),
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
		recorded, err := collect(ctx)
		if err != nil {
			return err
		}
		if !recorded {
			if err := s.driver.Info(ctx, "Nothing entered, entry skipped."); err != nil {
				return err
			}
		}
	}
}

func (s *Session) collectExperience(ctx context.Context) (bool, error) {
	entry := profile.ExperienceEntry{}
	var err error
	if entry.Title, err = s.ask(ctx, "Job title", ""); err != nil {
		return false, err
	}
	if entry.Location, err = s.ask(ctx, "Company and location", ""); err != nil {
		return false, err
	}
	if entry.StartDate, err = s.askDate(ctx, "Start date"); err != nil {
		return false, err
	}
	if entry.EndDate, err = s.askDate(ctx, "End date"); err != nil {
		return false, err
	}
	if entry.Description, err = s.driver.TextArea(ctx, TextAreaConfig{Message: "Description"}); err != nil {
		return false, err
	}
	return s.model.AppendExperience(entry, true), nil
}

func (s *Session) collectEducation(ctx context.Context) (bool, error) {
	entry := profile.EducationEntry{}
	var err error
	if entry.Title, err = s.ask(ctx, "Degree or course", ""); err != nil {
		return false, err
	}
	if entry.Location, err = s.ask(ctx, "School and location", ""); err != nil {
		return false, err
	}
	if entry.StartDate, err = s.askDate(ctx, "Start date"); err != nil {
		return false, err
	}
	if entry.EndDate, err = s.askDate(ctx, "End date"); err != nil {
		return false, err
	}
	if entry.Description, err = s.driver.TextArea(ctx, TextAreaConfig{Message: "Description"}); err != nil {
		return false, err
	}
	return s.model.AppendEducation(entry, true), nil
}

func (s *Session) collectCompetence(ctx context.Context) (bool, error) {
	entry := profile.CompetenceEntry{}
	var err error
	if entry.Name, err = s.ask(ctx, "Competence", ""); err != nil {
		return false, err
	}
	if entry.Description, err = s.ask(ctx, "Description", ""); err != nil {
		return false, err
	}
	return s.model.AppendCompetence(entry, true), nil
}

// languageLevels mirrors the usual self-assessment ladder.
var languageLevels = []string{"Basic", "Conversational", "Fluent", "Native"}

func (s *Session) collectLanguage(ctx context.Context) (bool, error) {
	entry := profile.LanguageEntry{}
	var err error
	if entry.Name, err = s.ask(ctx, "Language", ""); err != nil {
		return false, err
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Level",
		Options: languageLevels,
	})
	if err != nil {
		return false, err
	}
	if idx >= 0 && idx < len(languageLevels) {
		entry.Level = languageLevels[idx]
	}
	return s.model.AppendLanguage(entry, true), nil
}

// ChooseTheme presents the available theme names and returns the chosen one.
// An empty slice returns "" without prompting.
func (s *Session) ChooseTheme(ctx context.Context, names []string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Theme",
		Options: names,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", nil
	}
	return names[idx], nil
}

func (s *Session) ask(ctx context.Context, message, help string) (string, error) {
	return s.driver.Input(ctx, InputConfig{Message: message, Help: help})
}

func (s *Session) askDate(ctx context.Context, message string) (string, error) {
	return s.driver.Input(ctx, InputConfig{
		Message:   message,
		Help:      "YYYY-MM-DD, leave empty to skip",
		Validator: validBirthDate,
	})
}

// validBirthDate accepts empty answers and the YYYY-MM-DD date form.
func validBirthDate(answer string) error {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return fmt.Errorf("expected a YYYY-MM-DD date, got %q", answer)
	}
	return nil
}
