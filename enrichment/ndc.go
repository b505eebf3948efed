package enrichment

import (
	"fmt"
	"strings"
)

// StandardizeNDC reconstructs an 11-digit HIPAA NDC (5-4-2, dash separated)
// from a raw code in any of the FDA 10-digit formats. It returns ok=false
// when the code cannot be brought into that exact shape; callers drop such
// codes rather than keeping them unstandardized.
//
// The 10-digit unformatted case is inherently ambiguous: the same digit
// string can originate from 4-4-2, 5-3-2 or 5-4-1. The three heuristics
// below commit to one interpretation in a fixed precedence and do not
// backtrack. This is an accepted approximation, not a bug; codes that carry
// separators are always preferred because their grouping is explicit.
func StandardizeNDC(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", false
	}

	if strings.Contains(code, "-") {
		return standardizeFormattedNDC(code)
	}

	digits := digitsOnly(code)
	var labeler, product, pkg string

	switch len(digits) {
	case 11:
		labeler, product, pkg = digits[:5], digits[5:9], digits[9:11]
	case 10:
		labeler, product, pkg = splitAmbiguousNDC(digits)
	default:
		return "", false
	}

	return assembleNDC(labeler, product, pkg)
}

// standardizeFormattedNDC handles codes that already carry dash separators:
// the grouping is explicit, only zero padding is needed.
func standardizeFormattedNDC(code string) (string, bool) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return "", false
	}

	labeler := digitsOnly(parts[0])
	product := digitsOnly(parts[1])
	pkg := digitsOnly(parts[2])

	if len(labeler) == 4 {
		labeler = "0" + labeler
	} else if len(product) == 3 {
		product = "0" + product
	} else if len(pkg) == 1 {
		pkg = "0" + pkg
	}

	return assembleNDC(labeler, product, pkg)
}

// splitAmbiguousNDC picks a 5-4-2 grouping for a 10-digit code, in order:
//  1. common package-size ending with a zero last digit: treat as 5-3-2
//     missing the product segment's leading zero;
//  2. leading zero with a varied product window: treat as 4-4-2;
//  3. default to 5-4-1, the most common format.
func splitAmbiguousNDC(digits string) (labeler, product, pkg string) {
	switch {
	case ndcPackageEndings[digits[8:10]] && digits[9] == '0':
		return digits[:5], "0" + digits[5:8], digits[8:10]
	case digits[0] == '0' && !allSameDigits(digits[4:8]):
		return "0" + digits[:4], digits[4:8], digits[8:10]
	default:
		return digits[:5], digits[5:9], "0" + digits[9:10]
	}
}

func assembleNDC(labeler, product, pkg string) (string, bool) {
	if len(labeler) != 5 || len(product) != 4 || len(pkg) != 2 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", labeler, product, pkg), true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
