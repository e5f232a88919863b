package item

import (
	"slices"
	"unicode"
)

// CompareCodes orders item codes so that embedded digit runs compare by
// numeric magnitude ("2" before "10", "11BG1" before "11BG2") and letters
// compare case-insensitively.
func CompareCodes(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		ca, cb := ra[i], rb[j]
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			// Compare whole digit runs numerically. Leading zeros
			// make the runs unequal in length but not in value, so
			// compare by trimmed length first, then digit by digit.
			si, sj := i, j
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}
			da := trimLeadingZeros(ra[si:i])
			db := trimLeadingZeros(rb[sj:j])
			if len(da) != len(db) {
				if len(da) < len(db) {
					return -1
				}
				return 1
			}
			if c := slices.Compare(da, db); c != 0 {
				return c
			}
			continue
		}
		la, lb := unicode.ToLower(ca), unicode.ToLower(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(ra):
		return 1
	case j < len(rb):
		return -1
	default:
		return 0
	}
}

func trimLeadingZeros(digits []rune) []rune {
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}

// SortByCode returns a new slice ordered by CompareCodes. The sort is
// stable: items with equal codes keep their relative input order.
func SortByCode(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		return CompareCodes(a.Code, b.Code)
	})
	return out
}
