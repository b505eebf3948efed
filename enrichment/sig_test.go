package enrichment

import (
	"strings"
	"testing"
)

func TestGenerateInstructions_TabletTemplates(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Amoxicillin 500 MG Oral Tablet",
		DoseForm: "tab",
		Strength: "500 mg",
		TermType: "SCD",
		FreeText: "amoxicillin 500 mg oral tablet tab 500 mg",
	})

	if len(sigs) == 0 {
		t.Fatal("expected at least one instruction")
	}
	if sigs[0] != "Take 1 tablet by mouth once daily" {
		t.Errorf("unexpected primary instruction: %q", sigs[0])
	}

	// Strength in mg adds the annotated template
	found := false
	for _, sig := range sigs {
		if strings.Contains(sig, "(500 mg)") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a strength-annotated instruction, got %v", sigs)
	}
}

func TestGenerateInstructions_ExtendedRelease(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Metformin Extended Release 500 MG",
		DoseForm: "tablet",
		Strength: "500 mg",
		TermType: "SCD",
		FreeText: "metformin extended release 500 mg tablet",
	})

	if sigs[0] != tabletERTemplates[0] {
		t.Errorf("expected ER template first, got %q", sigs[0])
	}
	for _, sig := range sigs {
		if sig == "Take 1 tablet by mouth twice daily with meals" {
			t.Errorf("immediate-release template leaked into ER set: %v", sigs)
		}
	}
}

func TestGenerateInstructions_FormDispatchFirstMatchWins(t *testing.T) {
	// "gel cap" matches both tablet (cap) and topical (gel); tablet is
	// earlier in the rule order so its templates win.
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Ibuprofen 200 MG",
		DoseForm: "gel cap",
		Strength: "200 mg",
		TermType: "SCD",
		FreeText: "ibuprofen 200 mg gel cap",
	})

	if !strings.Contains(sigs[0], "Take 1 tablet") {
		t.Errorf("expected tablet templates to win dispatch, got %q", sigs[0])
	}
}

func TestGenerateInstructions_EyeDropsByRoute(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Latanoprost 0.005% Ophthalmic Solution",
		DoseForm: "drops",
		Strength: "0.005%",
		TermType: "SCD",
		FreeText: "latanoprost 0.005% ophthalmic solution drops",
	})

	if !strings.Contains(sigs[0], "Instill 1 drop") {
		t.Errorf("expected eye drop templates, got %q", sigs[0])
	}
}

func TestGenerateInstructions_CategoryOverlay(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Ibuprofen 200 MG Oral Tablet",
		DoseForm: "tablet",
		Strength: "200 mg",
		TermType: "SCD",
		FreeText: "ibuprofen 200 mg oral tablet",
	})

	found := false
	for _, sig := range sigs {
		if sig == "Take with food to prevent stomach upset" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected analgesic overlay phrase, got %v", sigs)
	}
}

func TestGenerateInstructions_FallbackIsSingleGeneric(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Mystery Compound",
		TermType: "SCD",
		FreeText: "mystery compound",
	})

	if len(sigs) != 1 {
		t.Fatalf("expected exactly one fallback instruction, got %v", sigs)
	}
	if sigs[0] != "Use Mystery Compound as directed by physician" {
		t.Errorf("unexpected fallback instruction: %q", sigs[0])
	}
}

func TestGenerateInstructions_BrandCaution(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Lipitor",
		TermType: "BN",
		FreeText: "lipitor",
	})

	found := false
	for _, sig := range sigs {
		if sig == brandCautionPhrase {
			found = true
		}
	}
	if !found {
		t.Errorf("expected brand caution phrase for BN record, got %v", sigs)
	}
}

func TestGenerateInstructions_ControlledSubstancePhrases(t *testing.T) {
	sigs := GenerateInstructions(InstructionInput{
		DrugName: "Oxycodone 5 MG Oral Tablet",
		DoseForm: "tablet",
		Strength: "5 mg",
		TermType: "SCD",
		FreeText: "oxycodone 5 mg oral tablet",
	})

	for _, phrase := range controlledSubstancePhrases {
		found := false
		for _, sig := range sigs {
			if sig == phrase {
				found = true
			}
		}
		if !found {
			t.Errorf("missing controlled substance phrase %q in %v", phrase, sigs)
		}
	}
}

func TestGenerateInstructions_BoundsAndDedupe(t *testing.T) {
	inputs := []InstructionInput{
		{DrugName: "Mystery Compound", TermType: "SCD", FreeText: "mystery compound"},
		{DrugName: "Oxycodone 5 MG Oral Tablet", DoseForm: "tablet", Strength: "5 mg",
			TermType: "BN", FreeText: "oxycodone 5 mg oral tablet"},
		{DrugName: "Amoxicillin 500 MG Oral Capsule", DoseForm: "capsule", Strength: "500 mg",
			TermType: "SCD", FreeText: "amoxicillin 500 mg oral capsule"},
	}

	for _, in := range inputs {
		sigs := GenerateInstructions(in)

		if len(sigs) < 1 || len(sigs) > MaxInstructions {
			t.Errorf("instruction count out of bounds for %q: %d", in.DrugName, len(sigs))
		}

		seen := make(map[string]bool)
		for _, sig := range sigs {
			if seen[sig] {
				t.Errorf("duplicate instruction for %q: %q", in.DrugName, sig)
			}
			seen[sig] = true
		}
	}
}
