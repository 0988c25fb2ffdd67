package profile

// UserInfo is the typed view over the "user" section of the persisted
// document. All fields are optional; zero values mean the user never filled
// the field in.
type UserInfo struct {
	Lastname       string `json:"lastname,omitempty"`
	Firstname      string `json:"firstname,omitempty"`
	Headline       string `json:"headline,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Interests      string `json:"interests,omitempty"`
	Introduction   string `json:"introduction,omitempty"`
	DrivingLicense string `json:"driving_license,omitempty"`
	// BirthDate uses the YYYY-MM-DD form produced by date inputs.
	BirthDate string `json:"birth_date,omitempty"`
	// Photo holds a base64 data URI, never a file path.
	Photo string `json:"photo,omitempty"`

	Social SocialLinks `json:"social"`

	Languages   []LanguageEntry   `json:"languages"`
	Competences []CompetenceEntry `json:"competences"`
	Educations  []EducationEntry  `json:"educations"`
	Experiences []ExperienceEntry `json:"experiences"`
}

// SocialLinks is the fixed, closed set of social channels. Channel values
// are bare handles except Website, which is a full URL.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ThemeInfo is the typed view over the "theme" section. Both locators are
// optional and fall back to the built-in defaults at projection time.
type ThemeInfo struct {
	Template string `json:"template,omitempty"`
	Palette  string `json:"palette,omitempty"`
}

// LanguageEntry is one spoken-language record.
type LanguageEntry struct {
	Name  string `json:"name,omitempty"`
	Level string `json:"level,omitempty"`
}

// CompetenceEntry is one skill record.
type CompetenceEntry struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education record.
type EducationEntry struct {
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ExperienceEntry is one work-experience record.
type ExperienceEntry struct {
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Section names for the repeatable collections inside the user section.
const (
	SectionLanguages   = "languages"
	SectionCompetences = "competences"
	SectionEducations  = "educations"
	SectionExperiences = "experiences"
	SectionSocial      = "social"
)

// socialChannels enumerates the legal channel names. Anything else found in
// a partial or in stored data is warned about and dropped.
var socialChannels = map[string]struct{}{
	"github":   {},
	"linkedin": {},
	"twitter":  {},
	"website":  {},
}

// KnownSocialChannel reports whether name is part of the closed channel set.
func KnownSocialChannel(name string) bool {
	_, ok := socialChannels[name]
	return ok
}
