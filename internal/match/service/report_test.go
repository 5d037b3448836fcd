package service

import (
	"math"
	"testing"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

func TestSummarizeEmpty(t *testing.T) {
	rep := Summarize(nil)
	if rep.Total != 0 || rep.AverageConfidence != 0 ||
		rep.Distribution.High != 0 || rep.Distribution.Medium != 0 || rep.Distribution.Low != 0 {
		t.Fatalf("empty input must yield all-zero report: %+v", rep)
	}
}

func TestSummarizeBuckets(t *testing.T) {
	results := []model.MatchResult{
		{Confidence: 95},
		{Confidence: 90}, // boundary: high
		{Confidence: 89.9},
		{Confidence: 70}, // boundary: medium
		{Confidence: 69.9},
	}
	rep := Summarize(results)
	if rep.Total != 5 {
		t.Fatalf("total = %d", rep.Total)
	}
	if rep.Distribution.High != 2 || rep.Distribution.Medium != 2 || rep.Distribution.Low != 1 {
		t.Fatalf("distribution = %+v", rep.Distribution)
	}
	want := (95 + 90 + 89.9 + 70 + 69.9) / 5
	if math.Abs(rep.AverageConfidence-want) > 1e-9 {
		t.Fatalf("average = %v, want %v", rep.AverageConfidence, want)
	}
}
