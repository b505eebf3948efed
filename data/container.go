// Package data provides thread-safe storage for the enriched medication
// catalog. The DataContainer swaps complete enrichment snapshots atomically
// so readers never observe a partially updated dataset.
package data

import (
	"sync/atomic"
	"time"

	"github.com/vineetdaniels2108/rxnorm-api/enrichment"
	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all the data with atomic pointers for zero-downtime updates
type DataContainer struct {
	records         atomic.Value // []entities.MedicationRecord
	byIdentifier    atomic.Value // map[string]entities.MedicationRecord
	byNDC           atomic.Value // map[string]entities.MedicationRecord
	index           atomic.Value // map[string][]entities.Posting
	stats           atomic.Value // enrichment.Stats
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.records.Store(make([]entities.MedicationRecord, 0))
	dc.byIdentifier.Store(make(map[string]entities.MedicationRecord))
	dc.byNDC.Store(make(map[string]entities.MedicationRecord))
	dc.index.Store(make(map[string][]entities.Posting))
	dc.stats.Store(enrichment.Stats{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetRecords returns the full enriched medication list
func (dc *DataContainer) GetRecords() []entities.MedicationRecord {
	if v := dc.records.Load(); v != nil {
		if records, ok := v.([]entities.MedicationRecord); ok {
			return records
		}
	}

	logging.Warn("Medication records list is empty or invalid")
	return []entities.MedicationRecord{}
}

// GetRecordsByIdentifier returns the identifier map for O(1) lookups
func (dc *DataContainer) GetRecordsByIdentifier() map[string]entities.MedicationRecord {
	if v := dc.byIdentifier.Load(); v != nil {
		if byIdentifier, ok := v.(map[string]entities.MedicationRecord); ok {
			return byIdentifier
		}
	}

	logging.Warn("Identifier map is empty or invalid")
	return make(map[string]entities.MedicationRecord)
}

// GetRecordsByNDC returns the NDC map for O(1) lookups
func (dc *DataContainer) GetRecordsByNDC() map[string]entities.MedicationRecord {
	if v := dc.byNDC.Load(); v != nil {
		if byNDC, ok := v.(map[string]entities.MedicationRecord); ok {
			return byNDC
		}
	}

	logging.Warn("NDC map is empty or invalid")
	return make(map[string]entities.MedicationRecord)
}

// GetIndex returns the manufacturer keyword inverted index
func (dc *DataContainer) GetIndex() map[string][]entities.Posting {
	if v := dc.index.Load(); v != nil {
		if index, ok := v.(map[string][]entities.Posting); ok {
			return index
		}
	}

	logging.Warn("Keyword index is empty or invalid")
	return make(map[string][]entities.Posting)
}

// GetStats returns the statistics of the last enrichment pass
func (dc *DataContainer) GetStats() enrichment.Stats {
	if v := dc.stats.Load(); v != nil {
		if stats, ok := v.(enrichment.Stats); ok {
			return stats
		}
	}

	logging.Warn("Could not get the enrichment stats value")
	return enrichment.Stats{}
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces the stored dataset with a new enrichment
// snapshot. Readers holding references to the previous snapshot keep a
// consistent view until they drop them.
func (dc *DataContainer) UpdateData(result *enrichment.Result) {
	// Atomic swap (zero downtime replacement)
	dc.records.Store(result.Records)
	dc.byIdentifier.Store(result.ByIdentifier)
	dc.byNDC.Store(result.ByNDC)
	dc.index.Store(result.Index)
	dc.stats.Store(result.Stats)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
