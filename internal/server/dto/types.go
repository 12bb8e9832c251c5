// Defines shared data types and enums for the API.

package dto

import (
	"slices"
	"strings"
)

// Category classifies a framework by what it is used for.
type Category string

const (
	// CategoryWebAutomation covers browser automation tools.
	CategoryWebAutomation Category = "WEB_AUTOMATION"
	// CategoryMobileAutomation covers mobile UI automation tools.
	CategoryMobileAutomation Category = "MOBILE_AUTOMATION"
	// CategoryAPITesting covers HTTP/API test tools.
	CategoryAPITesting Category = "API_TESTING"
	// CategoryPerformanceTesting covers load and performance tools.
	CategoryPerformanceTesting Category = "PERFORMANCE_TESTING"
	// CategoryBackendDevelopment covers server-side frameworks.
	CategoryBackendDevelopment Category = "BACKEND_DEVELOPMENT"
	// CategoryFrontendDevelopment covers UI frameworks.
	CategoryFrontendDevelopment Category = "FRONTEND_DEVELOPMENT"
)

var categories = []Category{
	CategoryWebAutomation,
	CategoryMobileAutomation,
	CategoryAPITesting,
	CategoryPerformanceTesting,
	CategoryBackendDevelopment,
	CategoryFrontendDevelopment,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return slices.Clone(categories)
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	return slices.Contains(categories, c)
}

// Language is the main programming language of a framework.
type Language string

const (
	// LanguageKotlin is Kotlin.
	LanguageKotlin Language = "KOTLIN"
	// LanguageJava is Java.
	LanguageJava Language = "JAVA"
	// LanguageJavaScript is JavaScript.
	LanguageJavaScript Language = "JAVASCRIPT"
	// LanguageTypeScript is TypeScript.
	LanguageTypeScript Language = "TYPESCRIPT"
	// LanguagePython is Python.
	LanguagePython Language = "PYTHON"
	// LanguageGo is Go.
	LanguageGo Language = "GO"
	// LanguageCSharp is C#.
	LanguageCSharp Language = "CSHARP"
)

var languages = []Language{
	LanguageKotlin,
	LanguageJava,
	LanguageJavaScript,
	LanguageTypeScript,
	LanguagePython,
	LanguageGo,
	LanguageCSharp,
}

// Languages returns every known language in declaration order.
func Languages() []Language {
	return slices.Clone(languages)
}

// IsValid reports whether l is a known language.
func (l Language) IsValid() bool {
	return slices.Contains(languages, l)
}

func joinEnum[T ~string](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
