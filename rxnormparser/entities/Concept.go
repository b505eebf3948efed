package entities

// Term types kept from the RxNorm release. Everything else is filtered out
// during ingestion.
const (
	TermTypeClinicalDrug = "SCD"
	TermTypeBrandedDrug  = "SBD"
	TermTypeBrandName    = "BN"
)

// ConceptRecord is one named medication entity from RXNCONSO.RRF.
// The same identifier may appear once per term type.
type ConceptRecord struct {
	Identifier string `json:"rxcui"`
	DrugName   string `json:"drugName"`
	TermType   string `json:"termType"`
	Language   string `json:"language"`
	Suppressed bool   `json:"suppressed"`
}

// AttributeTuple is one (identifier, attribute name, attribute value) fact
// about a medication from RXNSAT.RRF.
type AttributeTuple struct {
	Identifier     string `json:"rxcui"`
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
}

// Attribute names consumed by the enrichment pipeline.
const (
	AttrNDC               = "NDC"
	AttrLabeler           = "LABELER"
	AttrImprintCode       = "IMPRINT_CODE"
	AttrDoseForm          = "RXTERM_FORM"
	AttrAvailableStrength = "RXN_AVAILABLE_STRENGTH"
)
