// Defines the create/update payload accepted by FrameworkService.

package catalog

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Field limits, in runes.
const (
	NameMinLen        = 2
	NameMaxLen        = 100
	VersionMaxLen     = 50
	DescriptionMaxLen = 1000
)

// FrameworkInput holds the replaceable fields of a Framework.
//
// The HTTP layer reports the same constraints with client-facing messages.
// Validate re-checks them so that every write path, seeding included, keeps
// the stored rows valid.
type FrameworkInput struct {
	Name            string
	CurrentVersion  string
	Category        Category
	PrimaryLanguage Language
	Description     string
	OfficialSite    string
}

// Normalized returns a copy with leading and trailing whitespace removed from
// every field.
func (in FrameworkInput) Normalized() FrameworkInput {
	return FrameworkInput{
		Name:            strings.TrimSpace(in.Name),
		CurrentVersion:  strings.TrimSpace(in.CurrentVersion),
		Category:        Category(strings.TrimSpace(string(in.Category))),
		PrimaryLanguage: Language(strings.TrimSpace(string(in.PrimaryLanguage))),
		Description:     strings.TrimSpace(in.Description),
		OfficialSite:    strings.TrimSpace(in.OfficialSite),
	}
}

// Validate checks every field constraint and reports all violations. It
// expects a normalized input.
func (in *FrameworkInput) Validate() error {
	verr := &ValidationError{}
	switch n := utf8.RuneCountInString(in.Name); {
	case n == 0:
		verr.add("name", "must not be blank")
	case n < NameMinLen || n > NameMaxLen:
		verr.add("name", "must be between 2 and 100 characters")
	case isAllDigits(in.Name):
		verr.add("name", "must not consist only of digits")
	}
	switch n := utf8.RuneCountInString(in.CurrentVersion); {
	case n == 0:
		verr.add("currentVersion", "must not be blank")
	case n > VersionMaxLen:
		verr.add("currentVersion", "must be at most 50 characters")
	}
	if utf8.RuneCountInString(in.Description) > DescriptionMaxLen {
		verr.add("description", "must be at most 1000 characters")
	}
	if in.OfficialSite != "" && !isWebURL(in.OfficialSite) {
		verr.add("officialSite", "must be an absolute http or https URL")
	}
	if in.Category != "" && !in.Category.IsValid() {
		verr.add("category", "unknown category "+string(in.Category))
	}
	if in.PrimaryLanguage != "" && !in.PrimaryLanguage.IsValid() {
		verr.add("primaryLanguage", "unknown language "+string(in.PrimaryLanguage))
	}
	return verr.orNil()
}

func isAllDigits(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (in *FrameworkInput) toFramework() *Framework {
	return &Framework{
		Name:            in.Name,
		CurrentVersion:  in.CurrentVersion,
		Category:        in.Category,
		PrimaryLanguage: in.PrimaryLanguage,
		Description:     in.Description,
		OfficialSite:    in.OfficialSite,
		nameKey:         foldName(in.Name),
	}
}
