package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

// Digits, lowercase latin and hangul syllables survive normalization;
// every other run collapses to a single space.
var (
	reSpaces   = regexp.MustCompile(`\s+`)
	reNonToken = regexp.MustCompile(`[^0-9a-z가-힣]+`)
)

// NormalizeText is the shared brand/name normalizer: trim, NFKC,
// lowercase, collapse whitespace, strip foreign runs to spaces.
// Idempotent: normalizing an already-normalized string is a no-op.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNonToken.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// NormalizeColor maps each normalized token through the alias table;
// unmapped tokens pass through unchanged.
func NormalizeColor(s string, aliases map[string]string) string {
	s = NormalizeText(s)
	if s == "" {
		return ""
	}
	toks := strings.Fields(s)
	for i, t := range toks {
		if canon, ok := aliases[t]; ok {
			toks[i] = canon
		}
	}
	return strings.Join(toks, " ")
}

// CanonicalizeName rewrites every occurrence of a variant substring
// (not just whole tokens) to its canonical label. Groups and variants
// apply in configuration order; with overlapping variants the outcome
// depends on that order, and that order-sensitivity is the contract.
func CanonicalizeName(s string, groups []model.SynonymGroup) string {
	if s == "" {
		return s
	}
	for _, g := range groups {
		canon := strings.ToLower(g.Canon)
		for _, v := range g.Variants {
			v = strings.ToLower(v)
			if v == "" || v == canon {
				continue
			}
			s = strings.ReplaceAll(s, v, canon)
		}
	}
	return s
}

// NormalizeRows fills the cached normalized columns in place. Pure per
// row, so recomputation is idempotent.
func NormalizeRows(rows []model.Row, cfg model.MatchConfig) {
	for i := range rows {
		rows[i].BrandNorm = NormalizeText(rows[i].Brand)
		rows[i].NameNorm = CanonicalizeName(NormalizeText(rows[i].Name), cfg.NameSynonyms)
		rows[i].ColorNorm = NormalizeColor(rows[i].Color, cfg.ColorAliases)
		rows[i].SizeTokens = ExtractSizeTokens(rows[i].Size, cfg.SizeSynonyms)
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
