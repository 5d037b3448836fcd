package handler

import (
	"testing"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

func TestResolveKey(t *testing.T) {
	rec := map[string]string{
		"브랜드":     "",
		"사방넷 상품명": "",
		"주문수량":    "",
		"옵션(색상)":  "",
	}
	cases := []struct {
		want, key string
	}{
		{"브랜드", "브랜드"},       // exact
		{"상품명", "사방넷 상품명"},  // contained in a composite header
		{"수량", "주문수량"},      // contained without a space
		{"색상", "옵션(색상)"},    // punctuation in the header
		{"없는컬럼", ""},         // unresolvable
		{"상품명|품명", "사방넷 상품명"}, // alternatives
	}
	for _, c := range cases {
		if got := resolveKey(rec, c.want); got != c.key {
			t.Fatalf("resolveKey(%q) = %q, want %q", c.want, got, c.key)
		}
	}
}

func TestLooksLikeHeaderMap(t *testing.T) {
	if !looksLikeHeaderMap(map[string]string{"a": "브랜드", "b": "상품명", "c": ""}) {
		t.Fatal("repeated header row not detected")
	}
	if looksLikeHeaderMap(map[string]string{"a": "나이키", "b": "에어포스", "c": "2"}) {
		t.Fatal("data row misdetected as header")
	}
}

func TestToRows(t *testing.T) {
	m := model.Mapping{
		BrandKey: "브랜드", NameKey: "상품명", ColorKey: "색상",
		SizeKey: "사이즈", QtyKey: "수량", AmountKey: "금액", HeaderRow: 1,
	}
	maps := []map[string]string{
		{"브랜드": "A", "상품명": "맨투맨", "색상": "검정", "사이즈": "M", "수량": "2", "금액": "10000"},
		{"브랜드": "", "상품명": "", "색상": "", "사이즈": "", "수량": "", "금액": ""}, // filler
		{"브랜드": "B", "상품명": "원피스", "색상": "흰색", "사이즈": "L", "수량": "abc", "금액": ""},
	}
	rows := toRows(maps, m)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Idx != 0 || rows[0].Qty != 2 || rows[0].Amount != 10000 {
		t.Fatalf("row0 = %+v", rows[0])
	}
	// filler row skipped but identity preserved for the next row
	if rows[1].Idx != 2 {
		t.Fatalf("row1 idx = %d, want 2", rows[1].Idx)
	}
	// malformed quantity defaults to 1
	if rows[1].Qty != 1 {
		t.Fatalf("row1 qty = %d, want 1", rows[1].Qty)
	}
}

func TestRequireColumns(t *testing.T) {
	m := model.Mapping{
		BrandKey: "브랜드", NameKey: "상품명", ColorKey: "색상",
		SizeKey: "사이즈", QtyKey: "수량",
	}
	good := []map[string]string{
		{"브랜드": "A", "상품명": "x", "색상": "y", "사이즈": "M", "수량": "1"},
	}
	if err := requireColumns(good, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []map[string]string{
		{"브랜드": "A", "상품명": "x", "색상": "y"},
	}
	if err := requireColumns(bad, m); err == nil {
		t.Fatal("expected hard failure on missing size/qty columns")
	}
	if err := requireColumns(nil, m); err == nil {
		t.Fatal("expected error on empty table")
	}
}
