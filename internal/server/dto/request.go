package dto

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Field limits shared by create and update.
const (
	NameMinLen        = 2
	NameMaxLen        = 100
	VersionMaxLen     = 50
	DescriptionMaxLen = 1000
)

// --- Frameworks ---

// FrameworkRequest is the JSON body accepted by create and update.
//
// Name and CurrentVersion are pointers so that an absent property can be told
// apart from an empty one.
type FrameworkRequest struct {
	Name            *string  `json:"name" jsonschema:"minLength=2,maxLength=100,description=Display name; unique per version ignoring case"`
	CurrentVersion  *string  `json:"currentVersion" jsonschema:"minLength=1,maxLength=50"`
	Category        Category `json:"category,omitempty" jsonschema:"enum=WEB_AUTOMATION,enum=MOBILE_AUTOMATION,enum=API_TESTING,enum=PERFORMANCE_TESTING,enum=BACKEND_DEVELOPMENT,enum=FRONTEND_DEVELOPMENT"`
	PrimaryLanguage Language `json:"primaryLanguage,omitempty" jsonschema:"enum=KOTLIN,enum=JAVA,enum=JAVASCRIPT,enum=TYPESCRIPT,enum=PYTHON,enum=GO,enum=CSHARP"`
	Description     string   `json:"description,omitempty" jsonschema:"maxLength=1000"`
	OfficialSite    string   `json:"officialSite,omitempty" jsonschema:"format=uri"`
}

// Validate trims every field and reports all failing constraints at once.
func (r *FrameworkRequest) Validate() error {
	if r.Name == nil {
		return MissingField("name")
	}
	if r.CurrentVersion == nil {
		return MissingField("currentVersion")
	}
	r.normalize()

	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}
	switch n := utf8.RuneCountInString(*r.Name); {
	case n == 0:
		add("name", "The name cannot be blank.")
	case n < NameMinLen || n > NameMaxLen:
		add("name", "The name must be between 2 and 100 characters.")
	case isAllDigits(*r.Name):
		add("name", "The name cannot consist only of numbers.")
	}
	switch n := utf8.RuneCountInString(*r.CurrentVersion); {
	case n == 0:
		add("currentVersion", "The current version cannot be blank.")
	case n > VersionMaxLen:
		add("currentVersion", "The current version must be at most 50 characters.")
	}
	if r.Category != "" && !r.Category.IsValid() {
		add("category", "The category must be one of: "+joinEnum(categories)+".")
	}
	if r.PrimaryLanguage != "" && !r.PrimaryLanguage.IsValid() {
		add("primaryLanguage", "The primary language must be one of: "+joinEnum(languages)+".")
	}
	if utf8.RuneCountInString(r.Description) > DescriptionMaxLen {
		add("description", "The description must be at most 1000 characters.")
	}
	if r.OfficialSite != "" && !isWebURL(r.OfficialSite) {
		add("officialSite", "The official site must be an absolute http or https URL.")
	}
	if len(fields) > 0 {
		return Validation(fields...)
	}
	return nil
}

func (r *FrameworkRequest) normalize() {
	name := strings.TrimSpace(*r.Name)
	version := strings.TrimSpace(*r.CurrentVersion)
	r.Name = &name
	r.CurrentVersion = &version
	r.Category = Category(strings.TrimSpace(string(r.Category)))
	r.PrimaryLanguage = Language(strings.TrimSpace(string(r.PrimaryLanguage)))
	r.Description = strings.TrimSpace(r.Description)
	r.OfficialSite = strings.TrimSpace(r.OfficialSite)
}

// CreateFrameworkRequest is a request to register a framework.
type CreateFrameworkRequest struct {
	FrameworkRequest
}

// UpdateFrameworkRequest is a request to replace a framework.
type UpdateFrameworkRequest struct {
	ID int64 `path:"id" json:"-"`
	FrameworkRequest
}

// Validate validates the path id then the body.
func (r *UpdateFrameworkRequest) Validate() error {
	if err := validateID(r.ID); err != nil {
		return err
	}
	return r.FrameworkRequest.Validate()
}

// SearchFrameworksRequest lists frameworks, or searches them when the name
// query parameter is present.
type SearchFrameworksRequest struct {
	Name *string `query:"name"`
}

// Validate validates the name filter when present.
func (r *SearchFrameworksRequest) Validate() error {
	if r.Name == nil {
		return nil
	}
	name := strings.TrimSpace(*r.Name)
	r.Name = &name
	if name == "" {
		return InvalidField("name", "The 'name' parameter cannot be blank.")
	}
	if isAllDigits(name) {
		return InvalidField("name", "The 'name' parameter cannot consist only of numbers.")
	}
	return nil
}

// GetFrameworkRequest is a request to fetch one framework.
type GetFrameworkRequest struct {
	ID int64 `path:"id"`
}

// Validate validates the path id.
func (r *GetFrameworkRequest) Validate() error {
	return validateID(r.ID)
}

// DeleteFrameworkRequest is a request to delete one framework.
type DeleteFrameworkRequest struct {
	ID int64 `path:"id"`
}

// Validate validates the path id.
func (r *DeleteFrameworkRequest) Validate() error {
	return validateID(r.ID)
}

// --- Service ---

// HealthRequest is a request to check server health.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// RootRequest is a request for the API entry document.
type RootRequest struct{}

// Validate is a no-op for RootRequest.
func (r *RootRequest) Validate() error {
	return nil
}

// SchemaRequest is a request for the JSON Schemas of the wire types.
type SchemaRequest struct{}

// Validate is a no-op for SchemaRequest.
func (r *SchemaRequest) Validate() error {
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return InvalidField("id", "The 'id' must be a positive number.")
	}
	return nil
}

// isAllDigits reports whether s is non-empty and made of ASCII digits only.
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
