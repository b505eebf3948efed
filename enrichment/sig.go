package enrichment

import (
	"fmt"
	"strings"
)

// InstructionInput carries the sparse attributes the SIG generator reasons
// over. FreeText is the lower-cased descriptive text used for route
// detection (drug name, dose form and strength combined).
type InstructionInput struct {
	DrugName string
	DoseForm string
	Strength string
	TermType string
	FreeText string
}

// MaxInstructions caps the candidate list per record.
const MaxInstructions = 10

// formRule is one (predicate, template-set) pair of the form-class dispatch.
// Rules are evaluated in order and the first match supplies the templates.
type formRule struct {
	Category  string
	Matches   func(form, route string) bool
	Templates func(in InstructionInput, route string) []string
}

var formRules = []formRule{
	{
		Category: "tablet",
		Matches: func(form, route string) bool {
			return containsAny(form, "tab", "cap", "pill")
		},
		Templates: tabletCategoryTemplates,
	},
	{
		Category: "topical",
		Matches: func(form, route string) bool {
			return containsAny(form, "cream", "ointment", "gel", "lotion", "foam")
		},
		Templates: topicalCategoryTemplates,
	},
	{
		Category: "solution",
		Matches: func(form, route string) bool {
			return containsAny(form, "sol", "solution", "liquid", "syrup", "suspension")
		},
		Templates: solutionCategoryTemplates,
	},
	{
		Category: "spray",
		Matches: func(form, route string) bool {
			return containsAny(form, "spray", "nasal") || route == "nasal"
		},
		Templates: fixedTemplates(sprayTemplates),
	},
	{
		Category: "inhaler",
		Matches: func(form, route string) bool {
			return containsAny(form, "inhaler", "aerosol") || route == "inhalation"
		},
		Templates: fixedTemplates(inhalerTemplates),
	},
	{
		Category: "suppository",
		Matches: func(form, route string) bool {
			return strings.Contains(form, "suppository") || route == "rectal"
		},
		Templates: fixedTemplates(suppositoryTemplates),
	},
	{
		Category: "eyedrop",
		Matches: func(form, route string) bool {
			return strings.Contains(form, "drop") || route == "ophthalmic"
		},
		Templates: fixedTemplates(eyeDropTemplates),
	},
	{
		Category: "otic",
		Matches: func(form, route string) bool {
			return route == "otic"
		},
		Templates: fixedTemplates(earDropTemplates),
	},
	{
		Category: "patch",
		Matches: func(form, route string) bool {
			return containsAny(form, "patch", "transdermal")
		},
		Templates: fixedTemplates(patchTemplates),
	},
	{
		Category: "injection",
		Matches: func(form, route string) bool {
			return route == "injection" || containsAny(form, "injection", "vial")
		},
		Templates: fixedTemplates(injectionTemplates),
	},
}

func fixedTemplates(templates []string) func(InstructionInput, string) []string {
	return func(InstructionInput, string) []string {
		return templates
	}
}

func tabletCategoryTemplates(in InstructionInput, route string) []string {
	name := strings.ToLower(in.DrugName)

	var sigs []string
	if containsAny(name, "extended", "xl", "er") {
		sigs = append(sigs, tabletERTemplates...)
	} else {
		sigs = append(sigs, tabletTemplates...)
	}

	if strength := strings.ToLower(in.Strength); containsAny(strength, "mg", "mcg", "g") {
		sigs = append(sigs, fmt.Sprintf("Take 1 tablet (%s) by mouth as directed", in.Strength))
	}
	return sigs
}

func topicalCategoryTemplates(in InstructionInput, route string) []string {
	form := strings.ToLower(in.DoseForm)

	sigs := append([]string{}, topicalTemplates...)
	if strings.Contains(form, "ointment") {
		sigs = append(sigs, ointmentExtraTemplate)
	} else if strings.Contains(form, "gel") {
		sigs = append(sigs, gelExtraTemplate)
	}
	return sigs
}

func solutionCategoryTemplates(in InstructionInput, route string) []string {
	switch {
	case route == "topical" || strings.Contains(in.FreeText, "topical"):
		return solutionTopicalTemplates
	case route == "oral" || strings.Contains(in.FreeText, "oral"):
		return solutionOralTemplates
	default:
		return solutionGeneralTemplates
	}
}

// detectRoute scans the free text against the route keyword table. The
// first matching route wins; "" means undetermined.
func detectRoute(freeText string) string {
	for _, rk := range routeKeywords {
		for _, kw := range rk.Keywords {
			if strings.Contains(freeText, kw) {
				return rk.Route
			}
		}
	}
	return ""
}

// GenerateInstructions produces the ranked candidate dosing instructions for
// one record: form-class templates, then drug-name category overlays, then a
// generic fallback when nothing matched, then safety phrases; finally
// deduplicated and capped at MaxInstructions. The result is never empty and
// its first entry is the primary instruction.
func GenerateInstructions(in InstructionInput) []string {
	name := strings.ToLower(in.DrugName)
	form := strings.ToLower(in.DoseForm)
	route := detectRoute(in.FreeText)

	var sigs []string
	for _, rule := range formRules {
		if rule.Matches(form, route) {
			sigs = append(sigs, rule.Templates(in, route)...)
			break
		}
	}

	for _, overlay := range categoryOverlays {
		if containsAny(name, overlay.Names...) {
			sigs = append(sigs, overlay.Phrases...)
		}
	}

	if len(sigs) == 0 {
		sigs = append(sigs, fmt.Sprintf("Use %s as directed by physician", in.DrugName))
	}

	if in.TermType == "BN" {
		sigs = append(sigs, brandCautionPhrase)
	}
	if containsAny(name, controlledSubstanceNames...) {
		sigs = append(sigs, controlledSubstancePhrases...)
	}

	unique := DedupeStrings(sigs)
	if len(unique) > MaxInstructions {
		unique = unique[:MaxInstructions]
	}
	return unique
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
