package service

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

var (
	reSizeSeps = regexp.MustCompile(`[,/|]+`)
	reParens   = regexp.MustCompile(`^([^()]+)\(([^()]+)\)$`)
)

// CanonicalizeSizeToken maps a token to its canonical label on full
// equality with the label or one of its variants (exact match only,
// unlike name synonyms). Unknown tokens come back unchanged.
func CanonicalizeSizeToken(tok string, groups []model.SynonymGroup) string {
	t := strings.ToLower(tok)
	for _, g := range groups {
		canon := strings.ToLower(g.Canon)
		if t == canon {
			return canon
		}
		for _, v := range g.Variants {
			if t == strings.ToLower(v) {
				return canon
			}
		}
	}
	return t
}

// ExtractSizeTokens splits a raw size cell into canonical tokens:
// "7(M), 9(L)" -> [7 9 l m]. A parenthesized suffix yields both sides as
// separate candidates, so "7(M)" matches either a "7" or an "m" on the
// other table. Set semantics; returned sorted for deterministic walks.
func ExtractSizeTokens(s string, groups []model.SynonymGroup) []string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "~", " ~ ")
	s = reSizeSeps.ReplaceAllString(s, " ")
	s = strings.ToLower(collapseSpaces(s))

	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		vals := []string{tok}
		if m := reParens.FindStringSubmatch(tok); m != nil {
			vals = vals[:0]
			if out := strings.TrimSpace(m[1]); out != "" {
				vals = append(vals, out)
			}
			if in := strings.TrimSpace(m[2]); in != "" {
				vals = append(vals, in)
			}
		}
		for _, v := range vals {
			v = reNonToken.ReplaceAllString(v, "")
			if v == "" {
				continue
			}
			set[CanonicalizeSizeToken(v, groups)] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// intersects reports whether two sorted token slices share a value.
func intersects(a, b []string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
