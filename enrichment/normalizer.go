// Package enrichment contains the normalization and generation engines that
// turn raw RxNorm concept and attribute rows into the enriched medication
// catalog: name/dose-form/strength normalization, NDC standardization,
// manufacturer canonicalization, SIG instruction generation and the pipeline
// that orchestrates them. All engines are pure functions over fixed lookup
// tables; malformed input is passed through best-effort, never rejected.
package enrichment

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	bracketRe     = regexp.MustCompile(`\[([^\]]+)\]`)
	digitLetterRe = regexp.MustCompile(`(\d)([A-Za-z%])`)

	// One compiled word-boundary pattern per token, in table order.
	uppercaseTokenRes = compileTokenPatterns(uppercaseTokens)
	romanNumeralRes   = compileTokenPatterns(romanNumerals)
	strengthUnitRes   = compileUnitPatterns(strengthUnits)
)

func compileTokenPatterns(tokens []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(tok) + `\b`)
	}
	return res
}

func compileUnitPatterns(units []strengthUnit) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(units))
	for i, u := range units {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(u.Token) + `\b`)
	}
	return res
}

// titleCase applies English title casing. A cases.Caser is stateful, so a
// fresh one is built per call to stay safe under the parallel pipeline.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// NormalizeName cleans a raw drug name: collapse whitespace, title-case,
// restore clinical abbreviations and Roman numerals to uppercase, and fix
// brand capitalization inside brackets. Empty input stays empty.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return name
	}

	name = whitespaceRe.ReplaceAllString(name, " ")
	name = titleCase(name)

	for i, re := range uppercaseTokenRes {
		name = re.ReplaceAllString(name, strings.ToUpper(uppercaseTokens[i]))
	}
	for i, re := range romanNumeralRes {
		name = re.ReplaceAllString(name, strings.ToUpper(romanNumerals[i]))
	}

	// Bracketed substrings carry brand names whose capitalization must not
	// follow generic title casing.
	name = bracketRe.ReplaceAllStringFunc(name, func(match string) string {
		inner := match[1 : len(match)-1]
		if brand, ok := brandCapitalization[strings.ToLower(inner)]; ok {
			return "[" + brand + "]"
		}
		return "[" + titleCase(inner) + "]"
	})

	return name
}

// NormalizeDoseForm resolves a raw dose form against the synonym table,
// falling back to title casing for unknown forms. Empty input stays empty.
func NormalizeDoseForm(raw string) string {
	form := strings.TrimSpace(raw)
	if form == "" {
		return form
	}

	if canonical, ok := doseFormSynonyms[strings.ToLower(form)]; ok {
		return canonical
	}
	return titleCase(form)
}

// NormalizeStrength standardizes unit casing in a strength string. A space
// is inserted between a trailing digit and a following unit first so that
// glued forms like "200mg" become "200 MG". Empty input stays empty.
func NormalizeStrength(raw string) string {
	strength := strings.TrimSpace(raw)
	if strength == "" {
		return strength
	}

	strength = digitLetterRe.ReplaceAllString(strength, "$1 $2")

	for i, re := range strengthUnitRes {
		strength = re.ReplaceAllString(strength, strengthUnits[i].Canonical)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strength, " "))
}
