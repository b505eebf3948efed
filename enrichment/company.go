package enrichment

import (
	"strings"
	"unicode"
)

// CanonicalizeCompany maps a raw manufacturer/labeler name to its canonical
// spelling. The ordered pattern table is scanned first (first substring
// match wins); on a miss, corporate suffix words are stripped whole-word and
// the remainder is returned when it still looks like a name. The raw name is
// returned unchanged as a last resort, so ok=false only means absent input.
func CanonicalizeCompany(raw string) (string, bool) {
	company := strings.TrimSpace(raw)
	if company == "" {
		return "", false
	}

	lower := strings.ToLower(company)
	for _, p := range companyPatterns {
		if strings.Contains(lower, p.Pattern) {
			return p.Canonical, true
		}
	}

	if cleaned := stripCompanySuffixes(company); cleaned != "" {
		return cleaned, true
	}
	return company, true
}

// stripCompanySuffixes removes corporate suffix words and surrounding
// punctuation. Returns "" when the remainder is too short or carries no
// alphabetic character to stand as a name.
func stripCompanySuffixes(company string) string {
	var kept []string
	for _, word := range strings.Fields(company) {
		trimmed := strings.Trim(word, ",.")
		if trimmed == "" {
			continue
		}
		if companySuffixWords[strings.ToLower(trimmed)] {
			continue
		}
		kept = append(kept, trimmed)
	}

	cleaned := strings.Join(kept, " ")
	if len(cleaned) < 3 || !containsLetter(cleaned) {
		return ""
	}
	return cleaned
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// DedupeStrings removes duplicates preserving first-appearance order. Used
// for canonical manufacturer lists and standardized NDC lists, where the
// first occurrence defines the primary value.
func DedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	var unique []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}
