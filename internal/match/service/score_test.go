package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

func normed(t *testing.T, brand, name, color, size string) model.Row {
	t.Helper()
	rows := []model.Row{{Brand: brand, Name: name, Color: color, Size: size, Qty: 1}}
	NormalizeRows(rows, model.DefaultMatchConfig())
	return rows[0]
}

func defaultScorer() Scorer {
	cfg := model.DefaultMatchConfig()
	return Scorer{Weights: cfg.Weights, Cutoff: cfg.NameCutoff}
}

func TestScoreAllGatesPass(t *testing.T) {
	sc := defaultScorer()
	o := normed(t, "A", "기모 맨투맨", "검정", "M")
	c := normed(t, "A", "기모 맨투맨", "black", "M(9)")

	ok, conf, d := sc.Score(&o, &c)
	if !ok {
		t.Fatal("expected accept")
	}
	// identical names: every component at 100, default weights sum to 1
	if conf != 100 {
		t.Fatalf("confidence = %v, want 100", conf)
	}
	if d.Brand != 100 || d.Color != 100 || d.Size != 100 || d.Name != 100 {
		t.Fatalf("breakdown = %+v", d)
	}
}

func TestScoreRejections(t *testing.T) {
	sc := defaultScorer()
	base := normed(t, "A", "기모 맨투맨", "검정", "M")

	cases := []struct {
		name string
		c    model.Row
	}{
		{"disjoint sizes", normed(t, "A", "기모 맨투맨", "검정", "L")},
		{"brand differs", normed(t, "B", "기모 맨투맨", "검정", "M")},
		{"color differs", normed(t, "A", "기모 맨투맨", "노랑", "M")},
		{"name below cutoff", normed(t, "A", "원피스 셔링 롱", "검정", "M")},
		{"empty sizes", normed(t, "A", "기모 맨투맨", "검정", "")},
	}
	for _, tc := range cases {
		ok, conf, _ := sc.Score(&base, &tc.c)
		if ok || conf != 0 {
			t.Fatalf("%s: expected reject with 0 confidence, got ok=%v conf=%v", tc.name, ok, conf)
		}
	}
}

func TestScoreUnnormalizedWeightsPassThrough(t *testing.T) {
	// out-of-range weights are not validated; the sum just is what it is
	sc := Scorer{Weights: model.Weights{Brand: 1, Name: 1, Color: 1, Size: 1}, Cutoff: 70}
	o := normed(t, "A", "기모 맨투맨", "검정", "M")
	c := normed(t, "A", "기모 맨투맨", "black", "M")
	ok, conf, _ := sc.Score(&o, &c)
	if !ok || conf != 400 {
		t.Fatalf("got ok=%v conf=%v, want 400", ok, conf)
	}
}

func TestScoreSafeMatchesScore(t *testing.T) {
	sc := defaultScorer()
	o := normed(t, "A", "기모 맨투맨", "검정", "M")
	c := normed(t, "A", "맨투맨", "black", "M")
	ok1, conf1, d1 := sc.Score(&o, &c)
	ok2, conf2, d2 := sc.ScoreSafe(&o, &c, zerolog.Nop())
	if ok1 != ok2 || conf1 != conf2 || d1 != d2 {
		t.Fatalf("ScoreSafe diverges: (%v,%v,%+v) vs (%v,%v,%+v)", ok1, conf1, d1, ok2, conf2, d2)
	}
}
