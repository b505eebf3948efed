package enrichment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

func sampleConcepts() []entities.ConceptRecord {
	return []entities.ConceptRecord{
		{Identifier: "100", DrugName: "ibuprofen 200mg oral tab", TermType: entities.TermTypeClinicalDrug, Language: "ENG"},
		{Identifier: "200", DrugName: "[tylenol] extra strength", TermType: entities.TermTypeBrandName, Language: "ENG"},
		{Identifier: "300", DrugName: "amoxicillin 500 mg oral capsule", TermType: entities.TermTypeClinicalDrug, Language: "ENG"},
	}
}

func sampleAttributes() []entities.AttributeTuple {
	return []entities.AttributeTuple{
		{Identifier: "100", AttributeName: entities.AttrNDC, AttributeValue: "0049241001"},
		{Identifier: "100", AttributeName: entities.AttrNDC, AttributeValue: "0049241001"},
		{Identifier: "100", AttributeName: entities.AttrLabeler, AttributeValue: "Pfizer Labs"},
		{Identifier: "100", AttributeName: entities.AttrLabeler, AttributeValue: "Pfizer Inc"},
		{Identifier: "100", AttributeName: entities.AttrDoseForm, AttributeValue: "tab"},
		{Identifier: "100", AttributeName: entities.AttrAvailableStrength, AttributeValue: "200mg"},
		{Identifier: "100", AttributeName: entities.AttrImprintCode, AttributeValue: "GPI 64100010"},
		{Identifier: "200", AttributeName: entities.AttrLabeler, AttributeValue: "McNeil Consumer Healthcare"},
		{Identifier: "300", AttributeName: entities.AttrNDC, AttributeValue: "not-an-ndc"},
	}
}

func TestEnrich_EndToEnd(t *testing.T) {
	result, err := NewPipeline(4).Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}

	rec, exists := result.ByIdentifier["100"]
	if !exists {
		t.Fatal("record 100 missing from identifier map")
	}

	if rec.DrugNameClean != "Ibuprofen 200mg Oral Tab" {
		t.Errorf("unexpected clean name: %q", rec.DrugNameClean)
	}
	if rec.DoseFormClean != "Tablet" {
		t.Errorf("unexpected clean dose form: %q", rec.DoseFormClean)
	}
	if rec.StrengthClean != "200 MG" {
		t.Errorf("unexpected clean strength: %q", rec.StrengthClean)
	}

	// Duplicate raw NDCs standardize to one code; leading-zero heuristic
	// yields the 4-4-2 interpretation
	if !reflect.DeepEqual(rec.NDCCodes, []string{"00049-2410-01"}) {
		t.Errorf("unexpected NDC codes: %v", rec.NDCCodes)
	}
	if rec.NDCPrimary != "00049-2410-01" {
		t.Errorf("unexpected primary NDC: %q", rec.NDCPrimary)
	}

	// Both labeler spellings collapse to the canonical name
	if !reflect.DeepEqual(rec.Manufacturers, []string{"Pfizer"}) {
		t.Errorf("unexpected manufacturers: %v", rec.Manufacturers)
	}
	if rec.ManufacturerPrimary != "Pfizer" {
		t.Errorf("unexpected primary manufacturer: %q", rec.ManufacturerPrimary)
	}

	if rec.GPIPrimary != "GPI 64100010" {
		t.Errorf("unexpected primary GPI: %q", rec.GPIPrimary)
	}

	if len(rec.Instructions) == 0 || rec.InstructionPrimary != rec.Instructions[0] {
		t.Errorf("primary instruction must be the first candidate: %v", rec.Instructions)
	}

	if rec.MergedName != "[Pfizer] Ibuprofen 200mg Oral Tab (Tablet) 200 MG NDC:00049-2410-01" {
		t.Errorf("unexpected merged name: %q", rec.MergedName)
	}
}

func TestEnrich_LookupMaps(t *testing.T) {
	result, err := NewPipeline(2).Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if rec, exists := result.ByNDC["00049-2410-01"]; !exists || rec.Identifier != "100" {
		t.Errorf("NDC map lookup failed: %+v", rec)
	}

	// Malformed NDC on record 300 was dropped, not kept raw
	rec300 := result.ByIdentifier["300"]
	if len(rec300.NDCCodes) != 0 {
		t.Errorf("malformed NDC should be dropped, got %v", rec300.NDCCodes)
	}

	// Attribute-less concepts still produce a record
	rec200 := result.ByIdentifier["200"]
	if rec200.DrugNameClean != "[Tylenol] Extra Strength" {
		t.Errorf("unexpected clean name for 200: %q", rec200.DrugNameClean)
	}
	if len(rec200.Instructions) == 0 {
		t.Error("record 200 must carry at least the fallback instruction")
	}
}

func TestEnrich_ManufacturerIndex(t *testing.T) {
	result, err := NewPipeline(3).Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	postings, exists := result.Index["pfizer"]
	if !exists || len(postings) != 1 {
		t.Fatalf("expected one posting for 'pfizer', got %v", postings)
	}
	if postings[0].Identifier != "100" || postings[0].Manufacturer != "Pfizer" {
		t.Errorf("unexpected posting: %+v", postings[0])
	}

	// McNeil canonicalizes to Johnson & Johnson; both long words are indexed
	if _, exists := result.Index["johnson"]; !exists {
		t.Error("expected 'johnson' keyword in index")
	}

	// Short tokens are not indexed
	for token := range result.Index {
		if len(token) <= 2 {
			t.Errorf("index contains short token %q", token)
		}
	}
}

func TestEnrich_SearchFields(t *testing.T) {
	result, err := NewPipeline(1).Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	rec := result.ByIdentifier["100"]

	wantKeywords := []string{"ibuprofen", "tablet", "tab", "tabs"}
	for _, kw := range wantKeywords {
		found := false
		for _, got := range rec.SearchKeywords {
			if got == kw {
				found = true
			}
		}
		if !found {
			t.Errorf("missing search keyword %q in %v", kw, rec.SearchKeywords)
		}
	}

	if rec.SearchableText != strings.ToLower(rec.SearchableText) {
		t.Error("searchable text must be lower case")
	}
	if !strings.Contains(rec.SearchableText, "ibuprofen") {
		t.Errorf("searchable text missing drug name: %q", rec.SearchableText)
	}
}

func TestEnrich_Stats(t *testing.T) {
	result, err := NewPipeline(2).Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	stats := result.Stats
	if stats.Records != 3 {
		t.Errorf("expected 3 records in stats, got %d", stats.Records)
	}
	if stats.RawNDCs != 3 {
		t.Errorf("expected 3 raw NDCs, got %d", stats.RawNDCs)
	}
	if stats.StandardizedNDCs != 2 {
		t.Errorf("expected 2 standardized NDCs, got %d", stats.StandardizedNDCs)
	}
	if stats.DroppedNDCs != 1 {
		t.Errorf("expected 1 dropped NDC, got %d", stats.DroppedNDCs)
	}
	if stats.RecordsWithNDC != 1 {
		t.Errorf("expected 1 record with NDC, got %d", stats.RecordsWithNDC)
	}
	if stats.RecordsWithManufacturer != 2 {
		t.Errorf("expected 2 records with manufacturer, got %d", stats.RecordsWithManufacturer)
	}
	if stats.RecordsWithGPI != 1 {
		t.Errorf("expected 1 record with GPI, got %d", stats.RecordsWithGPI)
	}
	if stats.TotalInstructions == 0 {
		t.Error("expected non-zero instruction total")
	}
}

func TestEnrich_DeterministicAcrossWorkerCounts(t *testing.T) {
	concepts := sampleConcepts()
	attributes := sampleAttributes()

	baseline, err := NewPipeline(1).Enrich(concepts, attributes)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	for _, workers := range []int{2, 4, 16} {
		result, err := NewPipeline(workers).Enrich(concepts, attributes)
		if err != nil {
			t.Fatalf("Enrich with %d workers failed: %v", workers, err)
		}
		if !reflect.DeepEqual(baseline.Records, result.Records) {
			t.Errorf("records differ with %d workers", workers)
		}
		if !reflect.DeepEqual(baseline.Index, result.Index) {
			t.Errorf("index differs with %d workers", workers)
		}
		if baseline.Stats != result.Stats {
			t.Errorf("stats differ with %d workers", workers)
		}
	}
}

func TestEnrich_RepeatedPassesAreIdentical(t *testing.T) {
	p := NewPipeline(4)

	first, err := p.Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	second, err := p.Enrich(sampleConcepts(), sampleAttributes())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated enrichment passes over the same input must be identical")
	}
}

func TestEnrich_EmptyIdentifierFailsThePass(t *testing.T) {
	concepts := []entities.ConceptRecord{{Identifier: "", DrugName: "broken row", TermType: "SCD"}}
	if _, err := NewPipeline(1).Enrich(concepts, nil); err == nil {
		t.Error("expected error for concept without identifier")
	}

	attributes := []entities.AttributeTuple{{Identifier: "", AttributeName: entities.AttrNDC, AttributeValue: "12345678901"}}
	if _, err := NewPipeline(1).Enrich(sampleConcepts(), attributes); err == nil {
		t.Error("expected error for attribute without identifier")
	}
}

func TestEnrich_FirstConceptRowWinsKeyedLookups(t *testing.T) {
	concepts := []entities.ConceptRecord{
		{Identifier: "500", DrugName: "lisinopril 10 mg oral tab", TermType: entities.TermTypeClinicalDrug},
		{Identifier: "500", DrugName: "[zestril]", TermType: entities.TermTypeBrandName},
	}

	result, err := NewPipeline(2).Enrich(concepts, nil)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("both concept rows must keep a record, got %d", len(result.Records))
	}
	if rec := result.ByIdentifier["500"]; rec.TermType != entities.TermTypeClinicalDrug {
		t.Errorf("expected first concept row to win the identifier map, got %q", rec.TermType)
	}
}

func TestEnrich_EmptyInput(t *testing.T) {
	result, err := NewPipeline(4).Enrich(nil, nil)
	if err != nil {
		t.Fatalf("Enrich failed on empty input: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
	if result.Stats.Records != 0 {
		t.Errorf("expected zero stats, got %+v", result.Stats)
	}
}
