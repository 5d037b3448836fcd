package service

import (
	"github.com/jihun2da/product-matching-system/internal/match/model"
)

// Summarize aggregates per-unit match results into confidence buckets.
// Pure; empty input yields an all-zero report.
func Summarize(results []model.MatchResult) model.Report {
	rep := model.Report{Total: len(results)}
	if rep.Total == 0 {
		return rep
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Confidence
		switch {
		case r.Confidence >= 90:
			rep.Distribution.High++
		case r.Confidence >= 70:
			rep.Distribution.Medium++
		default:
			rep.Distribution.Low++
		}
	}
	rep.AverageConfidence = sum / float64(rep.Total)
	return rep
}
