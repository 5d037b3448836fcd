package fileio

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	excelize "github.com/xuri/excelize/v2"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

func buildBook(t *testing.T, headers []string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestAnnotateZip(t *testing.T) {
	headers := []string{"브랜드", "상품명", "색상", "사이즈", "수량", "금액"}
	orderBook := buildBook(t, headers, [][]any{
		{"A", "기모 맨투맨", "검정", "M", 2, 2000},
	})
	catHeaders := []string{"브랜드", "상품명", "색상", "사이즈", "수량", "도매가"}
	catalogBook := buildBook(t, catHeaders, [][]any{
		{"A", "기모 맨투맨", "black", "M", 5, 900},
	})

	orders := []model.Row{{Idx: 0, Brand: "A", Name: "기모 맨투맨", Color: "검정", Size: "M", Qty: 2, Amount: 2000}}
	catalog := []model.Row{{Idx: 0, Brand: "A", Name: "기모 맨투맨", Color: "black", Size: "M", Qty: 5, Amount: 900}}
	res := model.Result{Matches: []model.MatchResult{
		{OrderIdx: 0, CatalogIdx: 0, Confidence: 100},
		{OrderIdx: 0, CatalogIdx: 0, Confidence: 100},
	}}

	mapOrder := model.Mapping{BrandKey: "브랜드", NameKey: "상품명", ColorKey: "색상", SizeKey: "사이즈", QtyKey: "수량", AmountKey: "금액", HeaderRow: 1}
	mapCatalog := model.Mapping{BrandKey: "브랜드", NameKey: "상품명", ColorKey: "색상", SizeKey: "사이즈", QtyKey: "수량", AmountKey: "도매가", HeaderRow: 1}
	colors := model.DefaultMatchConfig().Colors

	out, err := AnnotateZip(orderBook, catalogBook, orders, catalog, res, mapOrder, mapCatalog, colors)
	if err != nil {
		t.Fatalf("AnnotateZip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("zip entries = %d, want 2", len(zr.File))
	}

	var orderOut []byte
	for _, zf := range zr.File {
		if zf.Name == "order_matched.xlsx" {
			rc, err := zf.Open()
			if err != nil {
				t.Fatalf("open zip entry: %v", err)
			}
			orderOut, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("read zip entry: %v", err)
			}
		}
	}
	if orderOut == nil {
		t.Fatal("order_matched.xlsx missing from zip")
	}

	f, err := excelize.OpenReader(bytes.NewReader(orderOut))
	if err != nil {
		t.Fatalf("reopen annotated order book: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	// matched reference lands right of the data: G2 summary, H2 sheet row
	summary, _ := f.GetCellValue(sheet, "G2")
	if summary != "기모 맨투맨 / M" {
		t.Fatalf("summary = %q", summary)
	}
	ref, _ := f.GetCellValue(sheet, "H2")
	if ref != "2" {
		t.Fatalf("catalog sheet row ref = %q, want 2", ref)
	}
}
