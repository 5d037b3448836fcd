package service

import (
	"github.com/jihun2da/product-matching-system/internal/match/model"
)

type bcKey struct{ brand, color string }
type bcsKey struct{ brand, color, size string }

// Index blocks catalog rows by coarse normalized attributes so the
// scorer only ever sees plausible candidates. Fully consumed rows stay
// in the maps; remaining quantity is filtered at lookup time.
type Index struct {
	byBrand          map[string][]int
	byBrandColor     map[bcKey][]int
	byBrandColorSize map[bcsKey][]int
}

// BuildIndex indexes normalized catalog rows under (brand),
// (brand,color) and (brand,color,token) for every one of their tokens.
func BuildIndex(catalog []model.Row) *Index {
	idx := &Index{
		byBrand:          make(map[string][]int),
		byBrandColor:     make(map[bcKey][]int),
		byBrandColorSize: make(map[bcsKey][]int),
	}
	for _, r := range catalog {
		idx.byBrand[r.BrandNorm] = append(idx.byBrand[r.BrandNorm], r.Idx)
		bc := bcKey{r.BrandNorm, r.ColorNorm}
		idx.byBrandColor[bc] = append(idx.byBrandColor[bc], r.Idx)
		for _, s := range r.SizeTokens {
			k := bcsKey{r.BrandNorm, r.ColorNorm, s}
			idx.byBrandColorSize[k] = append(idx.byBrandColorSize[k], r.Idx)
		}
	}
	return idx
}

// Candidates returns catalog row ids for one order line. The three tiers
// run in order and the first one that still has rows with remaining
// quantity wins; the looser tiers only widen the search when size or
// color data gave nothing. Duplicates collapse first-seen.
func (idx *Index) Candidates(brand, color string, sizes []string, remaining map[int]int) []int {
	var pool []int
	for _, s := range sizes {
		pool = append(pool, idx.byBrandColorSize[bcsKey{brand, color, s}]...)
	}
	if out := filterAlive(pool, remaining); len(out) > 0 {
		return out
	}
	if out := filterAlive(idx.byBrandColor[bcKey{brand, color}], remaining); len(out) > 0 {
		return out
	}
	return filterAlive(idx.byBrand[brand], remaining)
}

func filterAlive(ids []int, remaining map[int]int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if remaining[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}
