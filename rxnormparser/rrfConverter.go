package rxnormparser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// RXNCONSO.RRF column positions (pipe-delimited, 18 columns).
const (
	consoColRxcui    = 0
	consoColLanguage = 1
	consoColSource   = 11
	consoColTermType = 12
	consoColDrugName = 14
	consoColSuppress = 16
	consoColCount    = 17
)

// RXNSAT.RRF column positions (pipe-delimited, 13 columns).
const (
	satColRxcui     = 0
	satColAttrName  = 8
	satColAttrValue = 10
	satColSuppress  = 11
	satColCount     = 12
)

var keptTermTypes = map[string]bool{
	entities.TermTypeClinicalDrug: true,
	entities.TermTypeBrandedDrug:  true,
	entities.TermTypeBrandName:    true,
}

var keptAttributeNames = map[string]bool{
	entities.AttrNDC:               true,
	entities.AttrLabeler:           true,
	entities.AttrImprintCode:       true,
	entities.AttrDoseForm:          true,
	entities.AttrAvailableStrength: true,
}

// decodeLine returns the line as UTF-8. RxNorm releases are mostly UTF-8
// but individual rows have shown up in Latin-1, so invalid lines are decoded
// from ISO-8859-1 instead of being dropped.
func decodeLine(line string) string {
	if utf8.ValidString(line) {
		return line
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(line)
	if err != nil {
		return line
	}
	return decoded
}

func makeConcepts(dir string) ([]entities.ConceptRecord, error) {
	path := filepath.Join(dir, "RXNCONSO.RRF")
	rrfFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := rrfFile.Close(); err != nil {
			logging.Warn("Failed to close concepts RRF file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(rrfFile)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var records []entities.ConceptRecord
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0
	skippedFiltered := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(decodeLine(line), "|")
		if len(fields) < consoColCount {
			skippedMissingColumns++
			continue
		}

		// Only RxNorm-sourced English clinical/branded drug and brand name
		// rows that are not suppressed make it into the catalog.
		if fields[consoColSource] != "RXNORM" ||
			!keptTermTypes[fields[consoColTermType]] ||
			fields[consoColLanguage] != "ENG" ||
			fields[consoColSuppress] == "Y" {
			skippedFiltered++
			continue
		}

		records = append(records, entities.ConceptRecord{
			Identifier: fields[consoColRxcui],
			DrugName:   fields[consoColDrugName],
			TermType:   fields[consoColTermType],
			Language:   fields[consoColLanguage],
			Suppressed: false,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in %s: %w", path, err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info("RXNCONSO.RRF skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"filtered_rows", skippedFiltered,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println("Concepts file conversion completed", "records_count", len(records))
	return records, nil
}

func makeAttributes(dir string) ([]entities.AttributeTuple, error) {
	path := filepath.Join(dir, "RXNSAT.RRF")
	rrfFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := rrfFile.Close(); err != nil {
			logging.Warn("Failed to close attributes RRF file", "error", err)
		}
	}()

	scanner := bufio.NewScanner(rrfFile)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var records []entities.AttributeTuple
	lineCount := 0
	skippedEmptyLines := 0
	skippedMissingColumns := 0
	skippedFiltered := 0

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			skippedEmptyLines++
			continue
		}

		fields := strings.Split(decodeLine(line), "|")
		if len(fields) < satColCount {
			skippedMissingColumns++
			continue
		}

		// NDC and LABELER rows come from label sources rather than RXNORM
		// itself, so attributes are filtered by name and suppression only.
		if !keptAttributeNames[fields[satColAttrName]] || fields[satColSuppress] == "Y" {
			skippedFiltered++
			continue
		}

		records = append(records, entities.AttributeTuple{
			Identifier:     fields[satColRxcui],
			AttributeName:  fields[satColAttrName],
			AttributeValue: fields[satColAttrValue],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in %s: %w", path, err)
	}

	if skippedEmptyLines > 0 || skippedMissingColumns > 0 {
		logging.Info("RXNSAT.RRF skip statistics",
			"empty_lines", skippedEmptyLines,
			"missing_columns", skippedMissingColumns,
			"filtered_rows", skippedFiltered,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	fmt.Println("Attributes file conversion completed", "records_count", len(records))
	return records, nil
}
