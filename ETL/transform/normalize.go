package transform

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The same state or district may be labeled inconsistently across quarters
// ("jammu & kashmir", "Jammu & Kashmir", trailing spaces). All names are
// funneled through the helpers below before they become part of a key.

var (
	titleCaser = cases.Title(language.English)

	specialChars = regexp.MustCompile(`[^\w\s-]`)

	// Ampersand spellings seen in historical data, unified to "and"
	stateAliases = map[string]string{
		"andaman & nicobar islands":           "andaman and nicobar islands",
		"dadra & nagar haveli & daman & diu":  "dadra and nagar haveli and daman and diu",
		"jammu & kashmir":                     "jammu and kashmir",
	}
)

// NormalizeStateName brings a raw state name to its canonical title-cased form
func NormalizeStateName(name string) string {
	if name == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	// Path segments use hyphens ("andhra-pradesh"), document bodies use spaces
	normalized = strings.ReplaceAll(normalized, "-", " ")

	if alias, ok := stateAliases[normalized]; ok {
		normalized = alias
	}

	return titleCaser.String(normalized)
}

// CleanString collapses whitespace and strips special characters,
// keeping word characters, spaces and hyphens
func CleanString(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strings.Join(strings.Fields(text), " ")
	cleaned = specialChars.ReplaceAllString(cleaned, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	return strings.TrimSpace(cleaned)
}

// NormalizeEntityName lowercases and cleans a district or entity name
func NormalizeEntityName(name string) string {
	return CleanString(strings.ToLower(name))
}
