// Package scheduler provides automated data refresh scheduling and health
// monitoring for the medication catalog API. It handles cron-based release
// re-ingestion, staleness checks, and coordinates refresh operations with
// the data container using dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/metrics"
	"github.com/vineetdaniels2108/rxnorm-api/validation"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles data refreshes and health monitoring using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	enricher  interfaces.Enricher
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, enricher interfaces.Enricher) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		enricher:  enricher,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start initializes the scheduler with data refreshes and health monitoring
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	// RxNorm publishes monthly full releases and weekly updates. A daily
	// re-ingest at 06:00 picks up whatever is in the release directory.
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to update data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()

	// Start health monitoring
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// updateData performs a complete parse and enrichment pass and publishes the
// result to the data store.
func (s *Scheduler) updateData() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info(fmt.Sprintf("Starting catalog update at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	concepts, attributes, err := s.parser.ParseAll()
	if err != nil {
		logging.Error("Failed to parse RxNorm release", "error", err)
		return fmt.Errorf("failed to parse RxNorm release: %w", err)
	}

	result, err := s.enricher.Enrich(concepts, attributes)
	if err != nil {
		logging.Error("Failed to enrich catalog", "error", err)
		return fmt.Errorf("failed to enrich catalog: %w", err)
	}

	validator := validation.NewDataValidator()
	if err := validator.ValidateDataIntegrity(result); err != nil {
		logging.Error("Enriched dataset failed integrity validation", "error", err)
		return fmt.Errorf("enriched dataset failed integrity validation: %w", err)
	}

	report := validator.ReportDataQuality(result)
	if report.RecordsWithoutNDC > 0 || report.RecordsWithoutCompany > 0 {
		logging.Info("Data quality summary",
			"records_without_ndc", report.RecordsWithoutNDC,
			"records_without_dose_form", report.RecordsWithoutDoseForm,
			"records_without_strength", report.RecordsWithoutStrength,
			"records_without_company", report.RecordsWithoutCompany,
			"empty_instruction_records", report.EmptyInstructionRecords,
		)
	}
	if report.MalformedNDCRecords > 0 {
		logging.Warn("Records with malformed NDC codes detected",
			"count", report.MalformedNDCRecords,
		)
	}

	// Atomic swap, readers keep the previous snapshot until done with it
	s.dataStore.UpdateData(result)

	elapsed := time.Since(start)
	metrics.RecordEnrichmentStats(result.Stats)
	metrics.EnrichmentDuration.Observe(elapsed.Seconds())

	logging.Info("Catalog update completed",
		"duration", elapsed.String(),
		"record_count", len(result.Records),
		"standardized_ndcs", result.Stats.StandardizedNDCs,
		"dropped_ndcs", result.Stats.DroppedNDCs,
		"total_instructions", result.Stats.TotalInstructions,
	)

	return nil
}

// startHealthMonitoring monitors the freshness of the catalog data
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Catalog data hasn't been updated in over 25 hours")
			}
		}
	}()
}
