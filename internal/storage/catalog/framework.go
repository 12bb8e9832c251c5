// Defines the framework entity and its classification enums.

package catalog

import "slices"

// Category classifies a framework by what it is used for.
type Category string

// Category values.
const (
	CategoryWebAutomation       Category = "WEB_AUTOMATION"
	CategoryMobileAutomation    Category = "MOBILE_AUTOMATION"
	CategoryAPITesting          Category = "API_TESTING"
	CategoryPerformanceTesting  Category = "PERFORMANCE_TESTING"
	CategoryBackendDevelopment  Category = "BACKEND_DEVELOPMENT"
	CategoryFrontendDevelopment Category = "FRONTEND_DEVELOPMENT"
)

// Categories lists every valid Category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryWebAutomation,
		CategoryMobileAutomation,
		CategoryAPITesting,
		CategoryPerformanceTesting,
		CategoryBackendDevelopment,
		CategoryFrontendDevelopment,
	}
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// Language is the main programming language of a framework.
type Language string

// Language values.
const (
	LanguageKotlin     Language = "KOTLIN"
	LanguageJava       Language = "JAVA"
	LanguageJavaScript Language = "JAVASCRIPT"
	LanguageTypeScript Language = "TYPESCRIPT"
	LanguagePython     Language = "PYTHON"
	LanguageGo         Language = "GO"
	LanguageCSharp     Language = "CSHARP"
)

// Languages lists every valid Language in declaration order.
func Languages() []Language {
	return []Language{
		LanguageKotlin,
		LanguageJava,
		LanguageJavaScript,
		LanguageTypeScript,
		LanguagePython,
		LanguageGo,
		LanguageCSharp,
	}
}

// IsValid reports whether l is one of the declared languages.
func (l Language) IsValid() bool {
	return slices.Contains(Languages(), l)
}

// Framework is a technology framework tracked by the catalog.
//
// Optional fields are empty when unset.
type Framework struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CurrentVersion  string   `json:"currentVersion"`
	Category        Category `json:"category,omitempty"`
	PrimaryLanguage Language `json:"primaryLanguage,omitempty"`
	Description     string   `json:"description,omitempty"`
	OfficialSite    string   `json:"officialSite,omitempty"`

	// nameKey is the folded form of Name used for uniqueness and search.
	nameKey string
}

// Clone returns a copy of the Framework.
func (f *Framework) Clone() *Framework {
	c := *f
	return &c
}

// GetID returns the Framework's ID.
func (f *Framework) GetID() int64 {
	return f.ID
}

// SetID sets the Framework's ID. Only the store calls it.
func (f *Framework) SetID(id int64) {
	f.ID = id
}

// collidesWith reports whether f and other share the uniqueness key: the
// case-folded name together with the exact current version.
func (f *Framework) collidesWith(other *Framework) bool {
	return f.nameKey == other.nameKey && f.CurrentVersion == other.CurrentVersion
}
