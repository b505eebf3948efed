// Package handlers provides HTTP request handlers for the medication catalog
// API endpoints. It includes handlers for keyword and substring search,
// identifier and NDC lookup, pagination, enrichment statistics, health checks,
// and response formatting with proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

const pageSize = 10

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// ServeAllRecords returns the full medication catalog
func ServeAllRecords(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := store.GetRecords()
		RespondWithJSON(w, http.StatusOK, records)
	}
}

// ServePagedRecords returns one page of the medication catalog
func ServePagedRecords(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, http.StatusBadRequest, "Invalid page number")
			return
		}

		records := store.GetRecords()
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(records) {
			RespondWithError(w, http.StatusNotFound, "Page not found")
			return
		}

		if end > len(records) {
			end = len(records)
		}

		totalItems := len(records)
		maxPage := (totalItems + pageSize - 1) / pageSize

		response := map[string]interface{}{
			"data":       records[start:end],
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    maxPage,
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

// FindMedication searches the catalog by substring over the searchable text
func FindMedication(store interfaces.DataStore, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		element := chi.URLParam(r, "element")
		if element == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing search term")
			return
		}

		if err := validator.ValidateInput(element); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		needle := strings.ToLower(element)

		records := store.GetRecords()
		results := []entities.MedicationRecord{}

		for i := range records {
			if strings.Contains(records[i].SearchableText, needle) {
				results = append(results, records[i])
			}
		}

		// Always return 200 with results array (empty if no matches)
		RespondWithJSON(w, http.StatusOK, results)
	}
}

// FindMedicationByID looks up a medication record by its concept identifier
func FindMedicationByID(store interfaces.DataStore, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "identifier")
		id, err := validator.ValidateIdentifier(idParam)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		byIdentifier := store.GetRecordsByIdentifier()
		rec, exists := byIdentifier[id]
		if !exists {
			RespondWithError(w, http.StatusNotFound, "Medication not found")
			return
		}

		RespondWithJSON(w, http.StatusOK, rec)
	}
}

// FindMedicationByNDC looks up a medication record by a standardized NDC.
// Both the dashed 5-4-2 form and the bare 11-digit form are accepted.
func FindMedicationByNDC(store interfaces.DataStore, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ndcParam := chi.URLParam(r, "ndc")
		ndc, err := validator.ValidateNDC(ndcParam)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		byNDC := store.GetRecordsByNDC()
		rec, exists := byNDC[ndc]
		if !exists {
			RespondWithError(w, http.StatusNotFound, "No medication with that NDC")
			return
		}

		RespondWithJSON(w, http.StatusOK, rec)
	}
}

// FindByManufacturer returns the posting list for a manufacturer keyword
// from the inverted index. Multi-word queries intersect the posting lists
// of every word.
func FindByManufacturer(store interfaces.DataStore, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := chi.URLParam(r, "keyword")
		if keyword == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing manufacturer keyword")
			return
		}

		if err := validator.ValidateInput(keyword); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		index := store.GetIndex()
		words := strings.Fields(strings.ToLower(keyword))

		var results []entities.Posting
		for i, word := range words {
			postings := index[word]
			if i == 0 {
				results = append([]entities.Posting{}, postings...)
				continue
			}
			allowed := make(map[string]bool, len(postings))
			for _, p := range postings {
				allowed[p.Identifier] = true
			}
			kept := results[:0]
			for _, p := range results {
				if allowed[p.Identifier] {
					kept = append(kept, p)
				}
			}
			results = kept
		}

		if results == nil {
			results = []entities.Posting{}
		}

		RespondWithJSON(w, http.StatusOK, results)
	}
}

// ServeStats returns the statistics of the last enrichment pass
func ServeStats(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := store.GetStats()
		response := map[string]interface{}{
			"records":                   stats.Records,
			"raw_ndcs":                  stats.RawNDCs,
			"standardized_ndcs":         stats.StandardizedNDCs,
			"dropped_ndcs":              stats.DroppedNDCs,
			"records_with_ndc":          stats.RecordsWithNDC,
			"records_with_manufacturer": stats.RecordsWithManufacturer,
			"records_with_gpi":          stats.RecordsWithGPI,
			"total_instructions":        stats.TotalInstructions,
			"last_update":               store.GetLastUpdated().Format(time.RFC3339),
		}
		RespondWithJSON(w, http.StatusOK, response)
	}
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	LastUpdate    string                 `json:"last_update"`
	DataAgeHours  float64                `json:"data_age_hours"`
	Uptime        string                 `json:"uptime"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information
func HealthCheck(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		uptime := time.Since(store.GetServerStartTime())

		records := store.GetRecords()
		stats := store.GetStats()
		lastUpdate := store.GetLastUpdated()
		isUpdating := store.IsUpdating()
		dataAge := time.Since(lastUpdate)

		// Health status follows data availability and age. A release refresh
		// runs daily, so anything older than 48h means refreshes are failing.
		var healthStatus string
		var httpStatus int
		switch {
		case len(records) == 0:
			healthStatus = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		case dataAge > 48*time.Hour:
			healthStatus = "degraded"
			httpStatus = http.StatusOK
		default:
			healthStatus = "healthy"
			httpStatus = http.StatusOK
		}

		response := HealthResponse{
			Status:        healthStatus,
			LastUpdate:    lastUpdate.Format(time.RFC3339),
			DataAgeHours:  dataAge.Hours(),
			Uptime:        formatUptimeHuman(uptime),
			UptimeSeconds: uptime.Seconds(),
			Data: map[string]interface{}{
				"api_version":  "1.0",
				"records":      len(records),
				"is_updating":  isUpdating,
				"instructions": stats.TotalInstructions,
			},
			System: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc_mb":       int(m.Alloc / 1024 / 1024),
					"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
					"sys_mb":         int(m.Sys / 1024 / 1024),
					"num_gc":         m.NumGC,
				},
			},
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
