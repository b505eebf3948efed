package enrichment

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser/entities"
)

// recordAttributes holds the grouped attribute tuples for one identifier.
type recordAttributes struct {
	ndcCodes []string
	labelers []string
	gpiCodes []string
	doseForm string
	strength string
}

// Stats summarizes one enrichment pass for logging and metrics.
type Stats struct {
	Records                 int
	RawNDCs                 int
	StandardizedNDCs        int
	DroppedNDCs             int
	RecordsWithNDC          int
	RecordsWithManufacturer int
	RecordsWithGPI          int
	TotalInstructions       int
}

// Result is the complete output of one enrichment pass. All fields are
// built once and treated as read-only afterwards.
type Result struct {
	Records      []entities.MedicationRecord
	ByIdentifier map[string]entities.MedicationRecord
	ByNDC        map[string]entities.MedicationRecord
	Index        map[string][]entities.Posting
	Stats        Stats
}

// Pipeline runs the four engines over a full concept/attribute snapshot.
// It is stateless apart from its worker count and safe for reuse.
type Pipeline struct {
	workers int
}

// NewPipeline creates a pipeline with the given worker count (minimum 1).
func NewPipeline(workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{workers: workers}
}

// Enrich groups attribute tuples by identifier, left-joins them onto the
// concept rows and applies the engines per record. Records are enriched in
// concept input order regardless of worker count, so repeated passes over
// the same input produce identical output. The only error is a structurally
// broken input collection (rows without an identifier); everything else is
// handled as absence.
func (p *Pipeline) Enrich(concepts []entities.ConceptRecord, attributes []entities.AttributeTuple) (*Result, error) {
	for i := range concepts {
		if concepts[i].Identifier == "" {
			return nil, fmt.Errorf("concept row %d (%q) has no identifier", i, concepts[i].DrugName)
		}
	}
	for i := range attributes {
		if attributes[i].Identifier == "" {
			return nil, fmt.Errorf("attribute row %d (%s) has no identifier", i, attributes[i].AttributeName)
		}
	}

	grouped := groupAttributes(attributes)

	records := make([]entities.MedicationRecord, len(concepts))

	// Each record depends only on its own grouped attributes and the fixed
	// tables, so the per-record work is partitioned across workers. Partial
	// indexes and stats are merged in partition order afterwards.
	partitions := p.partition(len(concepts))
	partialIndexes := make([]map[string][]entities.Posting, len(partitions))
	partialStats := make([]Stats, len(partitions))

	var eg errgroup.Group
	for pi, part := range partitions {
		pi, part := pi, part
		eg.Go(func() error {
			index := make(map[string][]entities.Posting)
			var stats Stats
			for i := part.start; i < part.end; i++ {
				records[i] = enrichRecord(concepts[i], grouped[concepts[i].Identifier], &stats)
				indexRecord(index, &records[i])
			}
			partialIndexes[pi] = index
			partialStats[pi] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Records:      records,
		ByIdentifier: make(map[string]entities.MedicationRecord, len(records)),
		ByNDC:        make(map[string]entities.MedicationRecord),
		Index:        make(map[string][]entities.Posting),
	}

	for _, index := range partialIndexes {
		for token, postings := range index {
			result.Index[token] = append(result.Index[token], postings...)
		}
	}
	for _, stats := range partialStats {
		result.Stats.Records += stats.Records
		result.Stats.RawNDCs += stats.RawNDCs
		result.Stats.StandardizedNDCs += stats.StandardizedNDCs
		result.Stats.DroppedNDCs += stats.DroppedNDCs
		result.Stats.RecordsWithNDC += stats.RecordsWithNDC
		result.Stats.RecordsWithManufacturer += stats.RecordsWithManufacturer
		result.Stats.RecordsWithGPI += stats.RecordsWithGPI
		result.Stats.TotalInstructions += stats.TotalInstructions
	}

	// Identifiers repeat across term types; the first concept row wins the
	// keyed lookups so repeated passes stay deterministic.
	for i := range records {
		if _, exists := result.ByIdentifier[records[i].Identifier]; !exists {
			result.ByIdentifier[records[i].Identifier] = records[i]
		}
		for _, ndc := range records[i].NDCCodes {
			if _, exists := result.ByNDC[ndc]; !exists {
				result.ByNDC[ndc] = records[i]
			}
		}
	}

	return result, nil
}

type span struct {
	start, end int
}

func (p *Pipeline) partition(n int) []span {
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil
	}

	size := (n + workers - 1) / workers
	var spans []span
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{start, end})
	}
	return spans
}

// groupAttributes buckets the relevant attribute tuples per identifier.
// Dose form and strength keep the first value seen; NDC, labeler and GPI
// values accumulate in input order.
func groupAttributes(attributes []entities.AttributeTuple) map[string]*recordAttributes {
	grouped := make(map[string]*recordAttributes)

	get := func(id string) *recordAttributes {
		attrs, ok := grouped[id]
		if !ok {
			attrs = &recordAttributes{}
			grouped[id] = attrs
		}
		return attrs
	}

	for _, tuple := range attributes {
		value := strings.TrimSpace(tuple.AttributeValue)
		if value == "" {
			continue
		}

		switch tuple.AttributeName {
		case entities.AttrNDC:
			attrs := get(tuple.Identifier)
			attrs.ndcCodes = append(attrs.ndcCodes, value)
		case entities.AttrLabeler:
			attrs := get(tuple.Identifier)
			attrs.labelers = append(attrs.labelers, value)
		case entities.AttrImprintCode:
			// GPI codes ride inside free-text imprint values.
			if strings.Contains(strings.ToUpper(value), "GPI") {
				attrs := get(tuple.Identifier)
				attrs.gpiCodes = append(attrs.gpiCodes, value)
			}
		case entities.AttrDoseForm:
			if attrs := get(tuple.Identifier); attrs.doseForm == "" {
				attrs.doseForm = value
			}
		case entities.AttrAvailableStrength:
			if attrs := get(tuple.Identifier); attrs.strength == "" {
				attrs.strength = value
			}
		}
	}

	return grouped
}

// enrichRecord builds one MedicationRecord from a concept row and its
// grouped attributes. Absent attributes yield empty fields, never a dropped
// record.
func enrichRecord(concept entities.ConceptRecord, attrs *recordAttributes, stats *Stats) entities.MedicationRecord {
	if attrs == nil {
		attrs = &recordAttributes{}
	}

	record := entities.MedicationRecord{
		Identifier:    concept.Identifier,
		TermType:      concept.TermType,
		DrugNameRaw:   concept.DrugName,
		DrugNameClean: NormalizeName(concept.DrugName),
		DoseFormRaw:   attrs.doseForm,
		DoseFormClean: NormalizeDoseForm(attrs.doseForm),
		StrengthRaw:   attrs.strength,
		StrengthClean: NormalizeStrength(attrs.strength),
	}

	var standardized []string
	for _, raw := range attrs.ndcCodes {
		stats.RawNDCs++
		ndc, ok := StandardizeNDC(raw)
		if !ok {
			stats.DroppedNDCs++
			continue
		}
		stats.StandardizedNDCs++
		standardized = append(standardized, ndc)
	}
	record.NDCCodes = DedupeStrings(standardized)
	if len(record.NDCCodes) > 0 {
		record.NDCPrimary = record.NDCCodes[0]
		stats.RecordsWithNDC++
	}

	var canonical []string
	for _, raw := range attrs.labelers {
		if name, ok := CanonicalizeCompany(raw); ok {
			canonical = append(canonical, name)
		}
	}
	record.Manufacturers = DedupeStrings(canonical)
	if len(record.Manufacturers) > 0 {
		record.ManufacturerPrimary = record.Manufacturers[0]
		stats.RecordsWithManufacturer++
	}

	if len(attrs.gpiCodes) > 0 {
		record.GPICodes = append([]string{}, attrs.gpiCodes...)
		record.GPIPrimary = record.GPICodes[0]
		stats.RecordsWithGPI++
	}

	record.SearchKeywords = buildSearchKeywords(&record)
	record.SearchableText = buildSearchableText(&record)

	record.Instructions = GenerateInstructions(InstructionInput{
		DrugName: concept.DrugName,
		DoseForm: attrs.doseForm,
		Strength: attrs.strength,
		TermType: concept.TermType,
		FreeText: strings.ToLower(strings.Join(nonEmpty(concept.DrugName, attrs.doseForm, attrs.strength), " ")),
	})
	record.InstructionPrimary = record.Instructions[0]
	stats.TotalInstructions += len(record.Instructions)

	record.MergedName = buildMergedName(&record)
	stats.Records++

	return record
}

// buildSearchKeywords collects lower-cased keywords in a deterministic
// first-appearance order: name words, dose form plus its common
// abbreviations, strength components and the term type.
func buildSearchKeywords(record *entities.MedicationRecord) []string {
	var keywords []string
	seen := make(map[string]bool)

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	nameWords := strings.NewReplacer("[", "", "]", "").Replace(record.DrugNameClean)
	for _, word := range strings.Fields(nameWords) {
		if len(word) > 2 {
			add(word)
		}
	}

	if record.DoseFormClean != "" {
		form := strings.ToLower(record.DoseFormClean)
		add(form)
		for _, abbrev := range doseFormAbbrevs[form] {
			add(abbrev)
		}
	}

	for _, word := range strings.Fields(record.StrengthClean) {
		add(word)
	}

	add(record.TermType)

	return keywords
}

func buildSearchableText(record *entities.MedicationRecord) string {
	parts := nonEmpty(record.DrugNameClean, record.DoseFormClean, record.StrengthClean, record.TermType)
	parts = append(parts, record.SearchKeywords...)
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
}

// buildMergedName renders the display form used by downstream consumers:
// [Manufacturer] Name (Form) Strength NDC:xxxxx-xxxx-xx.
func buildMergedName(record *entities.MedicationRecord) string {
	var parts []string
	if record.ManufacturerPrimary != "" {
		parts = append(parts, "["+record.ManufacturerPrimary+"]")
	}
	if name := firstNonEmpty(record.DrugNameClean, record.DrugNameRaw); name != "" {
		parts = append(parts, name)
	}
	if form := firstNonEmpty(record.DoseFormClean, record.DoseFormRaw); form != "" {
		parts = append(parts, "("+form+")")
	}
	if strength := firstNonEmpty(record.StrengthClean, record.StrengthRaw); strength != "" {
		parts = append(parts, strength)
	}
	if record.NDCPrimary != "" {
		parts = append(parts, "NDC:"+record.NDCPrimary)
	}
	return strings.Join(parts, " ")
}

// indexRecord appends one posting per alphabetic manufacturer word (length
// > 2) to the keyword posting lists. Tokens are not stemmed; a record with
// several manufacturers gets one posting per manufacturer word.
func indexRecord(index map[string][]entities.Posting, record *entities.MedicationRecord) {
	for _, manufacturer := range record.Manufacturers {
		for _, token := range alphabeticWords(manufacturer) {
			if len(token) <= 2 {
				continue
			}
			token = strings.ToLower(token)
			index[token] = append(index[token], entities.Posting{
				Identifier:   record.Identifier,
				DrugName:     record.DrugNameClean,
				Manufacturer: manufacturer,
			})
		}
	}
}

func alphabeticWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	})
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
