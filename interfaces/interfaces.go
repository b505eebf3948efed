// Package interfaces defines core abstractions for the medication catalog
// service to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/vineetdaniels2108/rxnorm-api/enrichment"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// DataQualityReport provides a summary of data quality issues found in an
// enriched dataset.
type DataQualityReport struct {
	DuplicateIdentifiers    []string
	RecordsWithoutNDC       int
	RecordsWithoutDoseForm  int
	RecordsWithoutStrength  int
	RecordsWithoutCompany   int
	EmptyInstructionRecords int
	MalformedNDCRecords     int
}

// DataStore defines the contract for data storage operations. It provides
// thread-safe access to the enriched medication dataset with atomic
// operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetRecords() []entities.MedicationRecord
	GetRecordsByIdentifier() map[string]entities.MedicationRecord
	GetRecordsByNDC() map[string]entities.MedicationRecord
	GetIndex() map[string][]entities.Posting
	GetStats() enrichment.Stats
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateData(result *enrichment.Result)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for reading a raw terminology export into the
// in-memory concept and attribute tables.
type Parser interface {
	ParseAll() ([]entities.ConceptRecord, []entities.AttributeTuple, error)
}

// Enricher defines the contract for one enrichment pass over a full
// concept/attribute snapshot.
type Enricher interface {
	Enrich(concepts []entities.ConceptRecord, attributes []entities.AttributeTuple) (*enrichment.Result, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated data refreshes and staleness checks.
type Scheduler interface {
	Start() error
	Stop()
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateRecord checks if an enriched medication record is valid
	ValidateRecord(r *entities.MedicationRecord) error

	// ValidateDataIntegrity performs comprehensive dataset validation
	ValidateDataIntegrity(result *enrichment.Result) error

	// ReportDataQuality generates a data quality report with all issues found
	ReportDataQuality(result *enrichment.Result) *DataQualityReport

	// ValidateInput validates user input strings
	ValidateInput(input string) error

	// ValidateIdentifier validates RxNorm identifiers
	ValidateIdentifier(input string) (string, error)

	// ValidateNDC validates standardized NDC lookup input
	ValidateNDC(input string) (string, error)
}
