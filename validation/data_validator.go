// Package validation provides data validation functionality for the medication catalog API.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vineetdaniels2108/rxnorm-api/enrichment"
	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// Validation patterns, compiled once at package initialization
var (
	// Input validation: alphanumeric plus safe punctuation seen in drug names
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'%/\[\]]+$`)

	// Standardized NDC: 5-4-2 digit segments separated by dashes
	ndcRegex = regexp.MustCompile(`^\d{5}-\d{4}-\d{2}$`)

	// Injection patterns rejected by substring match before the character
	// whitelist runs
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// LDAP injection patterns
		"*)(", "*|(", "*)%",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateRecord checks if an enriched medication record is valid
func (v *DataValidatorImpl) ValidateRecord(r *entities.MedicationRecord) error {
	if r == nil {
		return fmt.Errorf("medication record is nil")
	}

	if strings.TrimSpace(r.Identifier) == "" {
		return fmt.Errorf("empty identifier")
	}

	if _, err := strconv.Atoi(r.Identifier); err != nil {
		return fmt.Errorf("identifier is not numeric: %s", r.Identifier)
	}

	if strings.TrimSpace(r.DrugNameClean) == "" {
		return fmt.Errorf("empty drug name for identifier %s", r.Identifier)
	}

	if len(r.DrugNameClean) > 500 {
		return fmt.Errorf("drug name too long for identifier %s: %d characters", r.Identifier, len(r.DrugNameClean))
	}

	switch r.TermType {
	case entities.TermTypeClinicalDrug, entities.TermTypeBrandedDrug, entities.TermTypeBrandName:
	default:
		return fmt.Errorf("unexpected term type for identifier %s: %s", r.Identifier, r.TermType)
	}

	for _, ndc := range r.NDCCodes {
		if !ndcRegex.MatchString(ndc) {
			return fmt.Errorf("malformed standardized NDC for identifier %s: %s", r.Identifier, ndc)
		}
	}

	if len(r.Instructions) > enrichment.MaxInstructions {
		return fmt.Errorf("too many instructions for identifier %s: %d", r.Identifier, len(r.Instructions))
	}

	if len(r.Instructions) > 0 && r.InstructionPrimary != r.Instructions[0] {
		return fmt.Errorf("primary instruction mismatch for identifier %s", r.Identifier)
	}

	return nil
}

// ValidateDataIntegrity performs comprehensive validation of an enrichment
// snapshot before it is published to the data container.
func (v *DataValidatorImpl) ValidateDataIntegrity(result *enrichment.Result) error {
	if result == nil {
		return fmt.Errorf("enrichment result is nil")
	}

	if len(result.Records) == 0 {
		return fmt.Errorf("no medication records found")
	}

	// Identifiers legitimately repeat across term types (an SCD and a BN can
	// share a concept identifier), so only an exact repeat of the same
	// identifier and term type is treated as structural corruption.
	seen := make(map[string]bool, len(result.Records))
	seenRows := make(map[string]bool, len(result.Records))
	for i := range result.Records {
		rec := &result.Records[i]
		row := rec.Identifier + "|" + rec.TermType
		if seenRows[row] {
			return fmt.Errorf("duplicate concept row found: %s (%s)", rec.Identifier, rec.TermType)
		}
		seenRows[row] = true
		seen[rec.Identifier] = true

		if err := v.ValidateRecord(rec); err != nil {
			return fmt.Errorf("invalid record %s: %w", rec.Identifier, err)
		}
	}

	// Every lookup map entry must point at a record that exists in the list
	for id := range result.ByIdentifier {
		if !seen[id] {
			return fmt.Errorf("identifier map entry %s not found in records list", id)
		}
	}

	for ndc, rec := range result.ByNDC {
		if !seen[rec.Identifier] {
			return fmt.Errorf("NDC map entry %s points at unknown identifier %s", ndc, rec.Identifier)
		}
	}

	for keyword, postings := range result.Index {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("empty keyword in manufacturer index")
		}
		for _, p := range postings {
			if !seen[p.Identifier] {
				return fmt.Errorf("index keyword %q points at unknown identifier %s", keyword, p.Identifier)
			}
		}
	}

	return nil
}

// ReportDataQuality generates a data quality report for an enrichment
// snapshot. Quality issues are logged but never block publication.
func (v *DataValidatorImpl) ReportDataQuality(result *enrichment.Result) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		DuplicateIdentifiers: []string{},
	}

	if result == nil {
		return report
	}

	seen := make(map[string]bool, len(result.Records))
	for i := range result.Records {
		rec := &result.Records[i]

		if seen[rec.Identifier] {
			report.DuplicateIdentifiers = append(report.DuplicateIdentifiers, rec.Identifier)
		}
		seen[rec.Identifier] = true

		if len(rec.NDCCodes) == 0 {
			report.RecordsWithoutNDC++
		}
		if rec.DoseFormClean == "" {
			report.RecordsWithoutDoseForm++
		}
		if rec.StrengthClean == "" {
			report.RecordsWithoutStrength++
		}
		if len(rec.Manufacturers) == 0 {
			report.RecordsWithoutCompany++
		}
		if len(rec.Instructions) == 0 {
			report.EmptyInstructionRecords++
		}
		for _, ndc := range rec.NDCCodes {
			if !ndcRegex.MatchString(ndc) {
				report.MalformedNDCRecords++
				break
			}
		}
	}

	// Repeated identifiers are expected when a concept carries several term
	// types, so they are surfaced as a quality note rather than an error
	if len(report.DuplicateIdentifiers) > 0 {
		logging.Info("Identifiers shared by multiple concept rows",
			"count", len(report.DuplicateIdentifiers),
		)
	}

	return report
}

// ValidateInput validates user input strings with enhanced security
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) < 3 {
		return fmt.Errorf("input too short: minimum 3 characters")
	}

	if len(input) > 50 {
		return fmt.Errorf("input too long: maximum 50 characters")
	}

	// Word count validation to prevent DoS attacks with many short words
	words := strings.Fields(input)
	if len(words) > 6 {
		return fmt.Errorf("search query too complex: maximum 6 words allowed")
	}

	// Reject known injection patterns before the character whitelist
	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, plus, percent, slash and brackets are allowed")
	}

	// Additional checks for repeated characters (potential DoS)
	if v.hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidateIdentifier validates RxNorm concept identifiers.
// Identifiers are numeric strings up to 8 digits long.
func (v *DataValidatorImpl) ValidateIdentifier(input string) (string, error) {
	trimmedInput := strings.TrimSpace(input)
	if trimmedInput == "" {
		return "", fmt.Errorf("input cannot be empty")
	}

	// Reject if original input contained whitespace (spaces, tabs, etc.)
	if len(input) != len(trimmedInput) {
		return "", fmt.Errorf("input contains invalid characters. Only numeric characters are allowed")
	}

	if len(trimmedInput) > 8 {
		return "", fmt.Errorf("identifier should have at most 8 digits")
	}

	num, err := strconv.Atoi(trimmedInput)
	if err != nil || num < 0 {
		return "", fmt.Errorf("input contains invalid characters. Only numeric characters are allowed")
	}

	return trimmedInput, nil
}

// ValidateNDC validates a standardized NDC lookup key. Both dashed 5-4-2
// input and bare 11-digit input are accepted, the dashed form is returned.
func (v *DataValidatorImpl) ValidateNDC(input string) (string, error) {
	trimmedInput := strings.TrimSpace(input)
	if trimmedInput == "" {
		return "", fmt.Errorf("input cannot be empty")
	}

	if len(input) != len(trimmedInput) {
		return "", fmt.Errorf("input contains invalid characters. Only digits and dashes are allowed")
	}

	if ndcRegex.MatchString(trimmedInput) {
		return trimmedInput, nil
	}

	// Bare 11-digit form, reformat to 5-4-2
	if len(trimmedInput) == 11 {
		if _, err := strconv.ParseUint(trimmedInput, 10, 64); err == nil {
			return trimmedInput[:5] + "-" + trimmedInput[5:9] + "-" + trimmedInput[9:], nil
		}
	}

	return "", fmt.Errorf("NDC should be 11 digits, formatted as 5-4-2 or unseparated")
}

// hasExcessiveRepetition checks for potential DoS patterns with excessive character repetition
func (v *DataValidatorImpl) hasExcessiveRepetition(input string) bool {
	// Check for the same character repeated more than 10 times consecutively
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
