package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.\-]`)

// ParseFloatLoose parses numbers the way they appear in spreadsheet
// cells: "1 234,50", NBSP/thin-space group separators, comma decimals,
// parenthesized negatives, stray currency junk.
func ParseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", " ", "", "\t", "", ",", ".")
	s = repl.Replace(s)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// ParseQty parses a quantity cell. Malformed or missing quantities
// default to 1; negatives clamp to 0 (stock never goes below zero).
func ParseQty(s string) int {
	f, ok := ParseFloatLoose(s)
	if !ok {
		return 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}
