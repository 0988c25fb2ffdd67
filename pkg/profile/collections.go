package profile

import "encoding/json"

// AppendLanguage records one language entry. Entries whose fields are all
// empty are not recorded; the call reports whether anything was written.
func (m *Model) AppendLanguage(entry LanguageEntry, persist bool) bool {
	return m.appendEntry(SectionLanguages, entryFields(entry), persist)
}

// AppendCompetence records one competence entry, dropping all-empty items.
func (m *Model) AppendCompetence(entry CompetenceEntry, persist bool) bool {
	return m.appendEntry(SectionCompetences, entryFields(entry), persist)
}

// AppendEducation records one education entry, dropping all-empty items.
func (m *Model) AppendEducation(entry EducationEntry, persist bool) bool {
	return m.appendEntry(SectionEducations, entryFields(entry), persist)
}

// AppendExperience records one experience entry, dropping all-empty items.
func (m *Model) AppendExperience(entry ExperienceEntry, persist bool) bool {
	return m.appendEntry(SectionExperiences, entryFields(entry), persist)
}

func (m *Model) appendEntry(section string, item map[string]any, persist bool) bool {
	if len(item) == 0 {
		return false
	}
	existing, _ := m.userSection()[section].([]any)
	updated := make([]any, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, item)
	return m.SetUser(map[string]any{section: updated}, persist)
}

// entryFields converts a typed entry into its map form, keeping only
// non-empty fields. The omitempty tags do the filtering.
func entryFields(entry any) map[string]any {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}
