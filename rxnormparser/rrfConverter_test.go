package rxnormparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRelease writes RXNCONSO.RRF and RXNSAT.RRF into a temp directory.
func writeRelease(t *testing.T, consoLines, satLines []string) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "RXNCONSO.RRF"), []byte(strings.Join(consoLines, "\n")), 0644); err != nil {
		t.Fatalf("failed to write RXNCONSO.RRF: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "RXNSAT.RRF"), []byte(strings.Join(satLines, "\n")), 0644); err != nil {
		t.Fatalf("failed to write RXNSAT.RRF: %v", err)
	}
	return dir
}

// consoLine builds an 18-column RXNCONSO row with the tested fields set.
func consoLine(rxcui, language, source, termType, drugName, suppress string) string {
	fields := make([]string, consoColCount+1)
	fields[consoColRxcui] = rxcui
	fields[consoColLanguage] = language
	fields[consoColSource] = source
	fields[consoColTermType] = termType
	fields[consoColDrugName] = drugName
	fields[consoColSuppress] = suppress
	return strings.Join(fields, "|")
}

// satLine builds a 13-column RXNSAT row with the tested fields set.
func satLine(rxcui, attrName, attrValue, suppress string) string {
	fields := make([]string, satColCount+1)
	fields[satColRxcui] = rxcui
	fields[satColAttrName] = attrName
	fields[satColAttrValue] = attrValue
	fields[satColSuppress] = suppress
	return strings.Join(fields, "|")
}

func TestMakeConcepts_Filtering(t *testing.T) {
	dir := writeRelease(t, []string{
		consoLine("100", "ENG", "RXNORM", "SCD", "ibuprofen 200 mg oral tablet", "N"),
		consoLine("200", "ENG", "RXNORM", "BN", "Advil", "N"),
		consoLine("300", "ENG", "RXNORM", "SBD", "ibuprofen 200 mg oral tablet [Advil]", "N"),
		consoLine("400", "ENG", "RXNORM", "IN", "ibuprofen", "N"),    // wrong term type
		consoLine("500", "FRE", "RXNORM", "SCD", "ibuprofene", "N"),  // wrong language
		consoLine("600", "ENG", "MTHSPL", "SCD", "some product", "N"), // wrong source
		consoLine("700", "ENG", "RXNORM", "SCD", "suppressed row", "Y"),
		"", // empty line
		"too|few|columns",
	}, nil)

	concepts, err := makeConcepts(dir)
	if err != nil {
		t.Fatalf("makeConcepts failed: %v", err)
	}

	if len(concepts) != 3 {
		t.Fatalf("expected 3 concepts, got %d: %+v", len(concepts), concepts)
	}

	expected := map[string]string{"100": "SCD", "200": "BN", "300": "SBD"}
	for _, c := range concepts {
		if expected[c.Identifier] != c.TermType {
			t.Errorf("unexpected concept %s with term type %s", c.Identifier, c.TermType)
		}
		if c.Suppressed {
			t.Errorf("kept concept %s must not be suppressed", c.Identifier)
		}
	}
}

func TestMakeAttributes_Filtering(t *testing.T) {
	dir := writeRelease(t, nil, []string{
		satLine("100", "NDC", "0049241001", "N"),
		satLine("100", "LABELER", "Pfizer Labs", "N"),
		satLine("100", "RXTERM_FORM", "Tab", "N"),
		satLine("100", "RXN_AVAILABLE_STRENGTH", "200 MG", "N"),
		satLine("100", "IMPRINT_CODE", "GPI 64100010", "N"),
		satLine("100", "SPL_SET_ID", "irrelevant", "N"), // attribute name not kept
		satLine("100", "NDC", "0049241002", "Y"),        // suppressed
		"short|line",
	})

	attributes, err := makeAttributes(dir)
	if err != nil {
		t.Fatalf("makeAttributes failed: %v", err)
	}

	if len(attributes) != 5 {
		t.Fatalf("expected 5 attributes, got %d: %+v", len(attributes), attributes)
	}

	for _, a := range attributes {
		if a.Identifier != "100" {
			t.Errorf("unexpected identifier %s", a.Identifier)
		}
		if a.AttributeName == "SPL_SET_ID" {
			t.Error("filtered attribute name leaked through")
		}
	}
}

func TestDecodeLine_Latin1Fallback(t *testing.T) {
	// A bare 0xE9 byte ('é' in ISO-8859-1) is invalid UTF-8.
	raw := "caf" + string([]byte{0xE9})
	decoded := decodeLine(raw)
	if decoded != "café" {
		t.Errorf("expected Latin-1 fallback to yield %q, got %q", "café", decoded)
	}

	// Valid UTF-8 passes through untouched.
	if got := decodeLine("café"); got != "café" {
		t.Errorf("valid UTF-8 must pass through, got %q", got)
	}
}

func TestParseAll(t *testing.T) {
	dir := writeRelease(t,
		[]string{consoLine("100", "ENG", "RXNORM", "SCD", "ibuprofen 200 mg oral tablet", "N")},
		[]string{satLine("100", "NDC", "0049241001", "N")},
	)

	concepts, attributes, err := ParseAll(dir)
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(concepts) != 1 || len(attributes) != 1 {
		t.Errorf("unexpected counts: %d concepts, %d attributes", len(concepts), len(attributes))
	}
}

func TestParseAll_MissingDirectory(t *testing.T) {
	if _, _, err := ParseAll(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing release directory")
	}
}

func TestRxNormParser_ImplementsParser(t *testing.T) {
	dir := writeRelease(t,
		[]string{consoLine("100", "ENG", "RXNORM", "SCD", "ibuprofen 200 mg oral tablet", "N")},
		[]string{satLine("100", "NDC", "0049241001", "N")},
	)

	p := NewRxNormParser(dir)
	concepts, attributes, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(concepts) != 1 || len(attributes) != 1 {
		t.Errorf("unexpected counts: %d concepts, %d attributes", len(concepts), len(attributes))
	}
}
