// Package profile owns the CV document: the in-memory user+theme tree, its
// persistence through a store adapter, and the key-addressed merge engine
// used to update and retrieve sections without callers encoding the tree
// shape.
package profile

import (
	"encoding/json"
	"log/slog"

	"github.com/goliatone/go-cvgen/pkg/store"
)

// DefaultStorageKey is the single well-known key the document persists
// under.
const DefaultStorageKey = "cvgen"

// Option customises the model configuration.
type Option func(*config)

type config struct {
	store      store.Store
	storageKey string
	user       map[string]any
	theme      map[string]any
	logger     *slog.Logger
}

// WithStore injects the persistence medium. Defaults to an in-memory store.
func WithStore(s store.Store) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.store = s
		}
	}
}

// WithStorageKey overrides the well-known storage key.
func WithStorageKey(key string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.storageKey = key
		}
	}
}

// WithUser seeds the user section, taking precedence over any stored value.
func WithUser(user map[string]any) Option {
	return func(cfg *config) {
		cfg.user = user
	}
}

// WithTheme seeds the theme section, taking precedence over any stored
// value.
func WithTheme(theme map[string]any) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Model holds the document for one session. It is not safe for concurrent
// use; the design assumes a single writer driving serialized mutations.
type Model struct {
	store      store.Store
	storageKey string
	doc        map[string]any
	logger     *slog.Logger
}

// New constructs a Model, hydrating the document from the store. A missing,
// corrupt, or non-object stored value falls back to empty defaults; New
// never fails. Explicitly seeded sections win over loaded ones.
func New(options ...Option) *Model {
	cfg := config{
		storageKey: DefaultStorageKey,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = store.NewMemory()
	}

	m := &Model{
		store:      cfg.store,
		storageKey: cfg.storageKey,
		logger:     cfg.logger,
	}
	m.doc = m.load()

	if cfg.user != nil {
		m.doc[string(KeyUser)] = cfg.user
	} else if _, ok := m.doc[string(KeyUser)].(map[string]any); !ok {
		m.doc[string(KeyUser)] = map[string]any{}
	}
	if cfg.theme != nil {
		m.doc[string(KeyTheme)] = cfg.theme
	} else if _, ok := m.doc[string(KeyTheme)].(map[string]any); !ok {
		m.doc[string(KeyTheme)] = map[string]any{}
	}

	m.ensureUserContainers()
	return m
}

// load reads the stored document. The structural check is minimal: the raw
// value must parse as a JSON object, otherwise the model starts empty.
func (m *Model) load() map[string]any {
	raw, ok := m.store.Get(m.storageKey)
	if !ok {
		return map[string]any{}
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		m.logger.Warn("stored document is not valid JSON, starting empty",
			"key", m.storageKey)
		return map[string]any{}
	}
	doc, ok := decoded.(map[string]any)
	if !ok {
		m.logger.Warn("stored document is not an object, starting empty",
			"key", m.storageKey)
		return map[string]any{}
	}
	return doc
}

// ensureUserContainers guarantees the social section and the four
// repeatable sections exist on user as empty containers, so merge and
// projection stay total.
func (m *Model) ensureUserContainers() {
	user := m.userSection()
	if _, ok := user[SectionSocial].(map[string]any); !ok {
		user[SectionSocial] = map[string]any{}
	}
	for _, section := range []string{SectionLanguages, SectionCompetences, SectionEducations, SectionExperiences} {
		if _, ok := user[section].([]any); !ok {
			user[section] = []any{}
		}
	}
}

func (m *Model) userSection() map[string]any {
	user, ok := m.doc[string(KeyUser)].(map[string]any)
	if !ok {
		user = map[string]any{}
		m.doc[string(KeyUser)] = user
	}
	return user
}

func (m *Model) themeSection() map[string]any {
	theme, ok := m.doc[string(KeyTheme)].(map[string]any)
	if !ok {
		theme = map[string]any{}
		m.doc[string(KeyTheme)] = theme
	}
	return theme
}

// persist writes the whole document through to the store.
func (m *Model) persist() bool {
	raw, err := json.Marshal(m.doc)
	if err != nil {
		return false
	}
	return m.store.Set(m.storageKey, string(raw))
}

// SetUser shallow-merges partial into the user section. Keys present in
// partial overwrite, unrelated keys survive. Unknown social channels inside
// the partial are dropped with a warning. With persist the write routes
// through the merge engine and is stored; otherwise it stays in memory.
func (m *Model) SetUser(partial map[string]any, persist bool) bool {
	partial = m.normalizeUserPartial(partial)
	if persist {
		return m.Save(partial, KeyUser)
	}
	m.doc[string(KeyUser)] = mergeSection(m.doc[string(KeyUser)], partial)
	return true
}

// SetTheme shallow-merges partial into the theme section, persisting when
// asked, mirroring SetUser.
func (m *Model) SetTheme(partial map[string]any, persist bool) bool {
	if persist {
		return m.Save(partial, KeyTheme)
	}
	m.doc[string(KeyTheme)] = mergeSection(m.doc[string(KeyTheme)], partial)
	return true
}

// SetSocial writes one channel value. Unknown channels are warned about and
// refused.
func (m *Model) SetSocial(channel, value string, persist bool) bool {
	if !KnownSocialChannel(channel) {
		m.logger.Warn("unknown social channel ignored", "channel", channel)
		return false
	}
	social := mergeSection(m.userSection()[SectionSocial], map[string]any{channel: value})
	return m.SetUser(map[string]any{SectionSocial: social}, persist)
}

// normalizeUserPartial filters unknown social channels out of a user
// partial before it reaches the merge engine.
func (m *Model) normalizeUserPartial(partial map[string]any) map[string]any {
	raw, ok := partial[SectionSocial]
	if !ok {
		return partial
	}
	social, ok := raw.(map[string]any)
	if !ok {
		return partial
	}
	filtered := make(map[string]any, len(social))
	for channel, value := range social {
		if !KnownSocialChannel(channel) {
			m.logger.Warn("unknown social channel ignored", "channel", channel)
			continue
		}
		filtered[channel] = value
	}
	out := make(map[string]any, len(partial))
	for k, v := range partial {
		out[k] = v
	}
	out[SectionSocial] = filtered
	return out
}

// User decodes the user section into its typed view. Unknown stored fields
// are ignored, keeping the model forward-compatible with partially-unknown
// data.
func (m *Model) User() UserInfo {
	var user UserInfo
	decodeSection(m.userSection(), &user)
	return user
}

// Theme decodes the theme section into its typed view.
func (m *Model) Theme() ThemeInfo {
	var theme ThemeInfo
	decodeSection(m.themeSection(), &theme)
	return theme
}

// Document returns the live document tree. Mutating it bypasses
// persistence; callers normally go through SetUser/SetTheme/Save.
func (m *Model) Document() map[string]any {
	return m.doc
}

func decodeSection(section map[string]any, into any) {
	raw, err := json.Marshal(section)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, into)
}
