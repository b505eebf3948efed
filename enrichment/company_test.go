package enrichment

import (
	"reflect"
	"testing"
)

func TestCanonicalizeCompany_PatternTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Pfizer Labs", "Pfizer"},
		{"PFIZER INC", "Pfizer"},
		{"Pfizer U.S. Pharmaceuticals Group", "Pfizer"},
		{"Parke-Davis Div of Pfizer Inc", "Pfizer"},
		{"Lilly, Eli and Company", "Eli Lilly"},
		{"Janssen Pharmaceuticals", "Johnson & Johnson"},
		{"Merck Sharp & Dohme Corp", "Merck"},
		{"Sandoz Inc", "Novartis"},
		{"Teva Pharmaceuticals USA", "Teva"},
		{"Sun Pharmaceutical Industries", "Sun Pharma"},
	}

	for _, tt := range tests {
		got, ok := CanonicalizeCompany(tt.input)
		if !ok {
			t.Fatalf("CanonicalizeCompany(%q) returned ok=false", tt.input)
		}
		if got != tt.expected {
			t.Errorf("CanonicalizeCompany(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCanonicalizeCompany_SuffixStripping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Whole-word suffix removal, not substring removal
		{"Acme Pharmaceuticals Inc", "Acme"},
		{"Costco Wholesale Corporation", "Costco Wholesale Corporation"}, // no suffix word matches whole
		{"Rising Pharma Holdings", "Rising Holdings"},
		{"Northstar Rx LLC", "Northstar Rx"},
	}

	for _, tt := range tests {
		got, ok := CanonicalizeCompany(tt.input)
		if !ok {
			t.Fatalf("CanonicalizeCompany(%q) returned ok=false", tt.input)
		}
		if got != tt.expected {
			t.Errorf("CanonicalizeCompany(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCanonicalizeCompany_EmptyInput(t *testing.T) {
	if got, ok := CanonicalizeCompany(""); ok {
		t.Errorf("CanonicalizeCompany(\"\") = %q, expected ok=false", got)
	}
	if got, ok := CanonicalizeCompany("   "); ok {
		t.Errorf("CanonicalizeCompany(\"   \") = %q, expected ok=false", got)
	}
}

func TestCanonicalizeCompany_RawFallback(t *testing.T) {
	// Every word is a suffix word, so stripping leaves nothing and the raw
	// name comes back unchanged.
	got, ok := CanonicalizeCompany("Pharma Labs Inc")
	if !ok || got != "Pharma Labs Inc" {
		t.Errorf("CanonicalizeCompany(\"Pharma Labs Inc\") = (%q, %v), expected raw fallback", got, ok)
	}
}

func TestDedupeStrings(t *testing.T) {
	variants := []string{"Pfizer", "Pfizer", "Pfizer"}
	if got := DedupeStrings(variants); !reflect.DeepEqual(got, []string{"Pfizer"}) {
		t.Errorf("DedupeStrings collapsed to %v, expected [Pfizer]", got)
	}

	ordered := []string{"b", "a", "b", "c", "a"}
	if got := DedupeStrings(ordered); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("DedupeStrings(%v) = %v, expected first-appearance order", ordered, got)
	}

	if got := DedupeStrings(nil); got != nil {
		t.Errorf("DedupeStrings(nil) = %v, expected nil", got)
	}
}

func TestCanonicalizeCompany_DedupesPfizerVariants(t *testing.T) {
	variants := []string{"Pfizer Labs", "Pfizer Inc", "Pfizer Consumer Healthcare"}

	var canonical []string
	for _, v := range variants {
		name, ok := CanonicalizeCompany(v)
		if !ok {
			t.Fatalf("CanonicalizeCompany(%q) returned ok=false", v)
		}
		canonical = append(canonical, name)
	}

	unique := DedupeStrings(canonical)
	if !reflect.DeepEqual(unique, []string{"Pfizer"}) {
		t.Errorf("expected all variants to collapse to [Pfizer], got %v", unique)
	}
}
