package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-cvgen/pkg/store"
)

func TestAppend_AllEmptyEntryIsNotRecorded(t *testing.T) {
	m := New(WithStore(store.NewMemory()))

	if m.AppendExperience(ExperienceEntry{}, true) {
		t.Fatalf("all-empty entry must not be recorded")
	}
	if got := len(m.User().Experiences); got != 0 {
		t.Fatalf("expected no experiences, got %d", got)
	}
}

func TestAppend_PartialEntryKeepsOnlyNonEmptyFields(t *testing.T) {
	m := New(WithStore(store.NewMemory()))

	if !m.AppendExperience(ExperienceEntry{Description: "built things"}, true) {
		t.Fatalf("entry with one field must be recorded")
	}

	stored := m.userSection()[SectionExperiences].([]any)
	if len(stored) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(stored))
	}
	want := map[string]any{"description": "built things"}
	if diff := cmp.Diff(want, stored[0]); diff != "" {
		t.Fatalf("stored entry mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_PreservesOrderAcrossSections(t *testing.T) {
	m := New(WithStore(store.NewMemory()))

	m.AppendLanguage(LanguageEntry{Name: "French", Level: "C2"}, false)
	m.AppendLanguage(LanguageEntry{Name: "English"}, false)
	m.AppendCompetence(CompetenceEntry{Name: "Go"}, false)

	user := m.User()
	if len(user.Languages) != 2 || user.Languages[0].Name != "French" || user.Languages[1].Name != "English" {
		t.Fatalf("language order lost: %+v", user.Languages)
	}
	if len(user.Competences) != 1 || user.Competences[0].Name != "Go" {
		t.Fatalf("competences mismatch: %+v", user.Competences)
	}
}
