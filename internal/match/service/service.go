package service

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

// Run matches order rows against the catalog. Both datasets are
// normalized, the blocking index is built once, then order rows are
// walked in their original order, greedily consuming catalog quantity
// from the best-scoring candidates. Remaining quantity lives in maps
// owned here; the datasets are only touched to cache normalized columns.
//
// The loop is deliberately sequential: every allocation decrements
// shared catalog counters, so the outcome is order-dependent and must
// stay deterministic.
func Run(orders, catalog []model.Row, cfg model.MatchConfig, log zerolog.Logger) model.Result {
	NormalizeRows(orders, cfg)
	NormalizeRows(catalog, cfg)

	idx := BuildIndex(catalog)
	sc := Scorer{Weights: cfg.Weights, Cutoff: cfg.NameCutoff}

	orderLeft := make(map[int]int, len(orders))
	catalogLeft := make(map[int]int, len(catalog))
	for _, r := range orders {
		orderLeft[r.Idx] = r.Qty
	}
	for _, r := range catalog {
		catalogLeft[r.Idx] = r.Qty
	}

	byIdx := make(map[int]*model.Row, len(catalog))
	for i := range catalog {
		byIdx[catalog[i].Idx] = &catalog[i]
	}

	type scored struct {
		id   int
		conf float64
		d    model.Breakdown
	}

	matches := make([]model.MatchResult, 0, len(orders))

	for i := range orders {
		o := &orders[i]
		remain := orderLeft[o.Idx]
		if remain <= 0 {
			continue
		}

		ids := idx.Candidates(o.BrandNorm, o.ColorNorm, o.SizeTokens, catalogLeft)
		if len(ids) == 0 {
			continue // zero matched quantity for this line, not an error
		}

		cand := make([]scored, 0, len(ids))
		for _, id := range ids {
			if ok, conf, d := sc.ScoreSafe(o, byIdx[id], log); ok {
				cand = append(cand, scored{id: id, conf: conf, d: d})
			}
		}
		if len(cand) == 0 {
			continue
		}

		// best confidence first, ties by original catalog order
		sort.Slice(cand, func(a, b int) bool {
			if cand[a].conf != cand[b].conf {
				return cand[a].conf > cand[b].conf
			}
			return cand[a].id < cand[b].id
		})

		for _, c := range cand {
			if remain <= 0 {
				break
			}
			avail := catalogLeft[c.id]
			if avail <= 0 {
				continue
			}
			take := min(remain, avail)
			for u := 0; u < take; u++ {
				matches = append(matches, model.MatchResult{
					OrderIdx:   o.Idx,
					CatalogIdx: c.id,
					Confidence: c.conf,
					Detail:     c.d,
				})
			}
			remain -= take
			orderLeft[o.Idx] = remain
			catalogLeft[c.id] = avail - take
		}
	}

	res := model.Result{
		Matches:          matches,
		Report:           Summarize(matches),
		UnmatchedOrders:  make([]model.Residual, 0),
		UnmatchedCatalog: make([]model.Residual, 0),
	}
	for _, r := range orders {
		if left := orderLeft[r.Idx]; left > 0 {
			res.UnmatchedOrders = append(res.UnmatchedOrders, model.Residual{Idx: r.Idx, Name: r.Name, Remaining: left})
		}
	}
	for _, r := range catalog {
		if left := catalogLeft[r.Idx]; left > 0 {
			res.UnmatchedCatalog = append(res.UnmatchedCatalog, model.Residual{Idx: r.Idx, Name: r.Name, Remaining: left})
		}
	}

	log.Info().
		Int("orders", len(orders)).
		Int("catalog", len(catalog)).
		Int("matches", len(matches)).
		Msg("match run done")
	return res
}
