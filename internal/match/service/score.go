package service

import (
	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

// Scorer gates and scores one order/catalog pair. Gates short-circuit in
// cost order: size-token intersection, exact brand, exact color, then
// the fuzzy name comparison. Components that passed an exact gate score
// a flat 100; the name component carries the partial ratio.
type Scorer struct {
	Weights model.Weights
	Cutoff  float64
}

func (sc Scorer) Score(o, c *model.Row) (bool, float64, model.Breakdown) {
	if !intersects(o.SizeTokens, c.SizeTokens) {
		return false, 0, model.Breakdown{}
	}
	if o.BrandNorm != c.BrandNorm {
		return false, 0, model.Breakdown{}
	}
	if o.ColorNorm != c.ColorNorm {
		return false, 0, model.Breakdown{}
	}
	nameScore := PartialRatio(o.NameNorm, c.NameNorm)
	if nameScore < sc.Cutoff {
		return false, 0, model.Breakdown{}
	}

	d := model.Breakdown{Brand: 100, Name: nameScore, Color: 100, Size: 100}
	conf := d.Brand*sc.Weights.Brand +
		d.Name*sc.Weights.Name +
		d.Color*sc.Weights.Color +
		d.Size*sc.Weights.Size
	return true, conf, d
}

// ScoreSafe shields the run from a panic while comparing a single pair:
// the pair is logged and rejected, the run continues.
func (sc Scorer) ScoreSafe(o, c *model.Row, log zerolog.Logger) (ok bool, conf float64, d model.Breakdown) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Int("order", o.Idx).
				Int("catalog", c.Idx).
				Interface("panic", rec).
				Msg("score pair")
			ok, conf, d = false, 0, model.Breakdown{}
		}
	}()
	return sc.Score(o, c)
}
