package entities

// MedicationRecord is one fully enriched catalog entry. It is constructed
// once per enrichment pass and never mutated afterwards; re-running the
// pipeline produces a fresh record, not an in-place update.
type MedicationRecord struct {
	Identifier string `json:"rxcui"`
	TermType   string `json:"termType"`

	DrugNameRaw   string `json:"drugName"`
	DrugNameClean string `json:"drugNameClean"`

	DoseFormRaw   string `json:"doseForm,omitempty"`
	DoseFormClean string `json:"doseFormClean,omitempty"`

	StrengthRaw   string `json:"strength,omitempty"`
	StrengthClean string `json:"strengthClean,omitempty"`

	// Standardized 11-digit 5-4-2 package identifiers, deduplicated in
	// first-appearance order. Raw codes that cannot be standardized are
	// dropped, never kept in unstandardized form.
	NDCCodes   []string `json:"ndcCodes,omitempty"`
	NDCPrimary string   `json:"ndcPrimary,omitempty"`

	Manufacturers       []string `json:"manufacturers,omitempty"`
	ManufacturerPrimary string   `json:"manufacturerPrimary,omitempty"`

	GPICodes   []string `json:"gpiCodes,omitempty"`
	GPIPrimary string   `json:"gpiPrimary,omitempty"`

	// Instructions is never empty and holds at most 10 entries;
	// InstructionPrimary is always Instructions[0].
	Instructions       []string `json:"instructions"`
	InstructionPrimary string   `json:"instructionPrimary"`

	SearchKeywords []string `json:"searchKeywords,omitempty"`
	SearchableText string   `json:"searchableText"`

	// MergedName is the display form: [Manufacturer] Name (Form) Strength NDC:...
	MergedName string `json:"mergedName,omitempty"`
}

// Posting is one inverted-index entry for a manufacturer keyword.
type Posting struct {
	Identifier   string `json:"rxcui"`
	DrugName     string `json:"drugName"`
	Manufacturer string `json:"manufacturer"`
}
