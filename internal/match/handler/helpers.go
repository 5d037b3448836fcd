package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/match/model"
	"github.com/jihun2da/product-matching-system/internal/middleware"
	"github.com/jihun2da/product-matching-system/internal/utils"
)

func reqLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, v any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func formOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

var reHeaderKey = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey flattens a column header for comparison: lowercase,
// NBSP to space, punctuation to space, collapsed.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = reHeaderKey.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Headers that make a row look like a repeated header line, and that get
// a containment bias when resolving composite column names such as
// "주문 수량 합계".
var headerWords = []string{"브랜드", "상품명", "색상", "사이즈", "수량", "금액", "도매가"}

// resolveKey finds the actual record key for a wanted column name.
// Alternatives split on "|"; exact match wins, then normalized equality,
// then containment either way with a bias toward the well-known Korean
// headers. Keys are walked in sorted order so ties resolve the same way
// on every request.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	nWantAll := make([]string, 0, len(alts))
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := ""
	bestScore := 0
	for _, k := range keys {
		nk := normHeaderKey(k)
		score := 0
		for _, n := range nWantAll {
			if n == "" {
				continue
			}
			if nk == n {
				return k
			}
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = max(score, len(n))
			}
			for _, w := range headerWords {
				if strings.Contains(n, w) && strings.Contains(nk, w) {
					score += 100
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// looksLikeHeaderMap spots header lines repeated inside the data area
// (merged exports do this) so they are not matched as products.
func looksLikeHeaderMap(rec map[string]string) bool {
	cnt := 0
	for _, v := range rec {
		s := strings.TrimSpace(v)
		for _, w := range headerWords {
			if strings.Contains(s, w) {
				cnt++
				break
			}
		}
	}
	return cnt >= 2
}

// requireColumns is the caller-level hard failure of the contract: the
// engine is never invoked when a required column cannot be resolved.
func requireColumns(maps []map[string]string, m model.Mapping) error {
	if len(maps) == 0 {
		return errors.New("empty table")
	}
	rec := maps[0]
	for _, req := range []struct{ label, want string }{
		{"brand", m.BrandKey},
		{"product name", m.NameKey},
		{"color", m.ColorKey},
		{"size", m.SizeKey},
		{"quantity", m.QtyKey},
	} {
		if resolveKey(rec, req.want) == "" {
			return fmt.Errorf("required column %q (%s) not found", req.want, req.label)
		}
	}
	return nil
}

// toRows converts parsed records to engine rows. Idx is the record index
// within the table, so it stays aligned with the sheet row even when
// filler rows are skipped. Malformed quantities default to 1.
func toRows(maps []map[string]string, m model.Mapping) []model.Row {
	rows := make([]model.Row, 0, len(maps))
	for i, rec := range maps {
		if looksLikeHeaderMap(rec) {
			continue
		}

		brand := strings.TrimSpace(rec[resolveKey(rec, m.BrandKey)])
		name := strings.TrimSpace(rec[resolveKey(rec, m.NameKey)])
		if brand == "" && name == "" {
			continue
		}

		qty := 1
		if k := resolveKey(rec, m.QtyKey); k != "" {
			qty = utils.ParseQty(rec[k])
		}
		amount := 0.0
		if k := resolveKey(rec, m.AmountKey); k != "" {
			if f, ok := utils.ParseFloatLoose(rec[k]); ok {
				amount = f
			}
		}

		rows = append(rows, model.Row{
			Idx:    i,
			Brand:  brand,
			Name:   name,
			Color:  strings.TrimSpace(rec[resolveKey(rec, m.ColorKey)]),
			Size:   strings.TrimSpace(rec[resolveKey(rec, m.SizeKey)]),
			Qty:    qty,
			Amount: amount,
		})
	}
	return rows
}
