package projection

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-cvgen/pkg/profile"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindPhoto
	kindSocial
	kindCollection
)

// bindingView is the resolved data a binding pulls from: the typed user
// section plus derived values.
type bindingView struct {
	user profile.UserInfo
	age  int
}

func newBindingView(user profile.UserInfo) bindingView {
	return bindingView{
		user: user,
		age:  profile.AgeFromDate(user.BirthDate),
	}
}

// binding is one row of the projection table: where the value goes, what
// kind of slot it is, and how to resolve it.
type binding struct {
	selector string
	kind     fieldKind
	fallback string
	value    func(bindingView) string
	channel  string
	items    func(bindingView) [][]string
}

// bindings is the fixed table mapping profile fields to template slots. The
// table is data, not branching code; adding a field means adding a row.
var bindings = []binding{
	{selector: "span.lastname", kind: kindText, fallback: "Lastname",
		value: func(v bindingView) string { return v.user.Lastname }},
	{selector: "span.firstname", kind: kindText, fallback: "Firstname",
		value: func(v bindingView) string { return v.user.Firstname }},
	{selector: "span.fullname", kind: kindText,
		value: func(v bindingView) string {
			return strings.TrimSpace(orDefault(v.user.Firstname, "Firstname") + " " + orDefault(v.user.Lastname, "Lastname"))
		}},
	{selector: "span.headline", kind: kindText,
		value: func(v bindingView) string { return v.user.Headline }},
	{selector: "span.address", kind: kindText,
		value: func(v bindingView) string { return v.user.Address }},
	{selector: "span.phone", kind: kindText,
		value: func(v bindingView) string { return v.user.Phone }},
	{selector: "span.email", kind: kindText,
		value: func(v bindingView) string { return v.user.Email }},
	{selector: "span.interests", kind: kindText,
		value: func(v bindingView) string { return v.user.Interests }},
	{selector: "span.introduction", kind: kindText,
		value: func(v bindingView) string { return v.user.Introduction }},
	{selector: "span.driving-license", kind: kindText,
		value: func(v bindingView) string { return v.user.DrivingLicense }},
	{selector: "span.birthdate", kind: kindText,
		value: func(v bindingView) string { return v.user.BirthDate }},
	{selector: "span.age", kind: kindText,
		value: func(v bindingView) string {
			if v.age < 0 {
				return ""
			}
			return strconv.Itoa(v.age)
		}},

	{selector: "#photo", kind: kindPhoto,
		value: func(v bindingView) string { return v.user.Photo }},

	{selector: "a.github", kind: kindSocial, channel: "github",
		value: func(v bindingView) string { return v.user.Social.GitHub }},
	{selector: "a.linkedin", kind: kindSocial, channel: "linkedin",
		value: func(v bindingView) string { return v.user.Social.LinkedIn }},
	{selector: "a.twitter", kind: kindSocial, channel: "twitter",
		value: func(v bindingView) string { return v.user.Social.Twitter }},
	{selector: "a.website", kind: kindSocial, channel: "website",
		value: func(v bindingView) string { return v.user.Social.Website }},

	{selector: "#languages", kind: kindCollection,
		items: func(v bindingView) [][]string {
			out := make([][]string, 0, len(v.user.Languages))
			for _, e := range v.user.Languages {
				out = append(out, nonEmpty(e.Name, e.Level))
			}
			return out
		}},
	{selector: "#competences", kind: kindCollection,
		items: func(v bindingView) [][]string {
			out := make([][]string, 0, len(v.user.Competences))
			for _, e := range v.user.Competences {
				out = append(out, nonEmpty(e.Name, e.Description))
			}
			return out
		}},
	{selector: "#educations", kind: kindCollection,
		items: func(v bindingView) [][]string {
			out := make([][]string, 0, len(v.user.Educations))
			for _, e := range v.user.Educations {
				out = append(out, nonEmpty(e.StartDate, e.EndDate, e.Location, e.Title, e.Description))
			}
			return out
		}},
	{selector: "#experiences", kind: kindCollection,
		items: func(v bindingView) [][]string {
			out := make([][]string, 0, len(v.user.Experiences))
			for _, e := range v.user.Experiences {
				out = append(out, nonEmpty(e.StartDate, e.EndDate, e.Location, e.Title, e.Description))
			}
			return out
		}},
}

// socialProfileURL expands a bare handle to the channel's canonical profile
// URL. Website values are already full URLs and pass through verbatim.
func socialProfileURL(channel, value string) string {
	switch channel {
	case "github":
		return "https://github.com/" + url.PathEscape(value)
	case "linkedin":
		return "https://www.linkedin.com/in/" + url.PathEscape(value)
	case "twitter":
		return "https://x.com/" + url.PathEscape(value)
	default:
		return value
	}
}

func (e *Engine) applyBinding(doc *goquery.Document, b binding, view bindingView) {
	sel := doc.Find(b.selector)
	if sel.Length() == 0 {
		return
	}

	switch b.kind {
	case kindText:
		value := e.plainText(b.value(view))
		if value == "" {
			value = b.fallback
		}
		if value == "" {
			// keep whatever default text the template ships with
			return
		}
		sel.SetText(value)

	case kindPhoto:
		value := b.value(view)
		if value != "" && !strings.HasPrefix(value, "data:image/") {
			e.logger.Warn("photo value is not an image data URI, clearing", "selector", b.selector)
			value = ""
		}
		sel.SetAttr("src", value)
		sel.SetAttr("alt", "User photo")

	case kindSocial:
		value := e.plainText(b.value(view))
		if value == "" {
			return
		}
		sel.SetAttr("href", socialProfileURL(b.channel, value))
		sel.SetAttr("target", "_blank")
		sel.SetAttr("rel", "noopener")
		sel.SetText(value)

	case kindCollection:
		var sb strings.Builder
		for _, item := range b.items(view) {
			sb.WriteString("<ul>")
			for _, field := range item {
				sb.WriteString("<li>")
				sb.WriteString(html.EscapeString(field))
				sb.WriteString("</li>")
			}
			sb.WriteString("</ul>")
		}
		sel.AppendHtml(sb.String())
	}
}

// nonEmpty keeps field values in declaration order, dropping empties. A
// zero-field item yields an empty slice and still renders as an empty
// group.
func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
