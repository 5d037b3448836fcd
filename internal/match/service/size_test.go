package service

import (
	"reflect"
	"testing"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

var sizeGroups = []model.SynonymGroup{
	{Canon: "xxl", Variants: []string{"2xl"}},
	{Canon: "free", Variants: []string{"f", "프리"}},
}

func TestExtractSizeTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []string // sorted
	}{
		{"7(M)", []string{"7", "m"}},
		{"M(9)", []string{"9", "m"}},
		{"L", []string{"l"}},
		{"9", []string{"9"}},
		{"XL(100)", []string{"100", "xl"}},
		{"7(M), 9(L)", []string{"7", "9", "l", "m"}},
		{"S/M/L", []string{"l", "m", "s"}},
		{"S~XL", []string{"s", "xl"}},
		{"2XL", []string{"xxl"}},
		{"FREE, F", []string{"free"}},
		{"", nil},
		{" , / ", nil},
	}
	for _, c := range cases {
		got := ExtractSizeTokens(c.in, sizeGroups)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("ExtractSizeTokens(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeSizeTokenExactOnly(t *testing.T) {
	if got := CanonicalizeSizeToken("2xl", sizeGroups); got != "xxl" {
		t.Fatalf("2xl -> %q, want xxl", got)
	}
	if got := CanonicalizeSizeToken("XXL", sizeGroups); got != "xxl" {
		t.Fatalf("XXL -> %q, want xxl", got)
	}
	// no substring semantics for size tokens
	if got := CanonicalizeSizeToken("22xl", sizeGroups); got != "22xl" {
		t.Fatalf("22xl -> %q, want unchanged", got)
	}
}

func TestIntersects(t *testing.T) {
	cases := []struct {
		a, b []string
		want bool
	}{
		{[]string{"7", "m"}, []string{"m"}, true},
		{[]string{"7", "m"}, []string{"9", "l"}, false},
		{nil, []string{"m"}, false},
		{nil, nil, false},
		{[]string{"a", "c", "e"}, []string{"b", "d", "e"}, true},
	}
	for _, c := range cases {
		if got := intersects(c.a, c.b); got != c.want {
			t.Fatalf("intersects(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
