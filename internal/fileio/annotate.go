package fileio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

// book wraps one open workbook with its resolved header row and the
// fill styles used for annotation.
type book struct {
	f         *excelize.File
	sheet     string
	headers   []string
	headerRow int

	matched  int
	checked  int
	mismatch int
}

func openBook(b []byte, headerRow int, colors model.AnnotateColors) (*book, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	if headerRow < 1 || headerRow > len(rows) {
		headerRow = 1
	}
	var headers []string
	if len(rows) > 0 {
		for _, h := range rows[headerRow-1] {
			headers = append(headers, normalizeCell(h))
		}
	}
	bk := &book{f: f, sheet: sheet, headers: headers, headerRow: headerRow}
	bk.matched = fillStyle(f, colors.Matched)
	bk.checked = fillStyle(f, colors.Checked)
	bk.mismatch = fillStyle(f, colors.Mismatch)
	return bk, nil
}

func fillStyle(f *excelize.File, rgb string) int {
	if rgb == "" {
		return 0
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}},
	})
	if err != nil {
		return 0
	}
	return id
}

// col returns the 1-based column of a header, 0 when absent.
func (bk *book) col(name string) int {
	name = normalizeCell(name)
	if name == "" {
		return 0
	}
	for i, h := range bk.headers {
		if h == name {
			return i + 1
		}
	}
	return 0
}

// cell addresses data row idx (0-based record index) in column col.
func (bk *book) cell(col, idx int) string {
	name, _ := excelize.CoordinatesToCellName(col, bk.headerRow+1+idx)
	return name
}

func (bk *book) fillCell(col, idx, style int) {
	if col == 0 || style == 0 {
		return
	}
	c := bk.cell(col, idx)
	_ = bk.f.SetCellStyle(bk.sheet, c, c, style)
}

// mappedCols resolves the data columns of a mapping that exist in the
// sheet, in brand..amount order.
func (bk *book) mappedCols(m model.Mapping) []int {
	var out []int
	for _, key := range []string{m.BrandKey, m.NameKey, m.ColorKey, m.SizeKey, m.QtyKey, m.AmountKey} {
		if c := bk.col(key); c != 0 {
			out = append(out, c)
		}
	}
	return out
}

// AnnotateZip paints a finished run back onto the two uploaded XLSX
// workbooks: matched rows get the matched fill (or the checked fill when
// the order sheet carries a truthy 확인 column), a price mismatch between
// the order line total and wholesale price x quantity turns both amount
// cells red, and each order row gets the matched catalog reference
// written to the columns right of its data. Both annotated workbooks
// come back in one zip.
func AnnotateZip(orderBook, catalogBook []byte, orders, catalog []model.Row,
	res model.Result, mapOrder, mapCatalog model.Mapping, colors model.AnnotateColors) ([]byte, error) {

	ob, err := openBook(orderBook, mapOrder.HeaderRow, colors)
	if err != nil {
		return nil, fmt.Errorf("order workbook: %w", err)
	}
	defer ob.f.Close()
	cb, err := openBook(catalogBook, mapCatalog.HeaderRow, colors)
	if err != nil {
		return nil, fmt.Errorf("catalog workbook: %w", err)
	}
	defer cb.f.Close()

	orderRows := make(map[int]*model.Row, len(orders))
	for i := range orders {
		orderRows[orders[i].Idx] = &orders[i]
	}
	catalogRows := make(map[int]*model.Row, len(catalog))
	for i := range catalog {
		catalogRows[catalog[i].Idx] = &catalog[i]
	}

	// collapse per-unit results to unique pairs, keeping emission order
	type pairKey struct{ o, c int }
	seen := make(map[pairKey]struct{})
	var pairs []pairKey
	refs := make(map[int][]int)
	for _, m := range res.Matches {
		p := pairKey{m.OrderIdx, m.CatalogIdx}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
		refs[p.o] = append(refs[p.o], p.c)
	}

	oCols := ob.mappedCols(mapOrder)
	cCols := cb.mappedCols(mapCatalog)
	oAmount := ob.col(mapOrder.AmountKey)
	cAmount := cb.col(mapCatalog.AmountKey)
	checkedCol := ob.col("확인")

	for _, p := range pairs {
		o, c := orderRows[p.o], catalogRows[p.c]
		if o == nil || c == nil {
			continue
		}

		fill := ob.matched
		catFill := cb.matched
		if checkedCol != 0 {
			v, _ := ob.f.GetCellValue(ob.sheet, ob.cell(checkedCol, o.Idx))
			if strings.EqualFold(strings.TrimSpace(v), "true") {
				fill = ob.checked
				catFill = cb.checked
			}
		}

		for _, col := range oCols {
			ob.fillCell(col, o.Idx, fill)
		}
		for _, col := range cCols {
			cb.fillCell(col, c.Idx, catFill)
		}

		// line total vs wholesale price x ordered quantity
		if oAmount != 0 && cAmount != 0 && o.Amount != c.Amount*float64(o.Qty) {
			ob.fillCell(oAmount, o.Idx, ob.mismatch)
			cb.fillCell(cAmount, c.Idx, cb.mismatch)
		}
	}

	// matched references to the right of the order data: a summary of the
	// first catalog hit, then the actual sheet row numbers of every hit
	base := len(ob.headers) + 1
	const maxRefs = 6
	for i := range orders {
		o := &orders[i]
		list := refs[o.Idx]
		if len(list) == 0 {
			continue
		}
		if first := catalogRows[list[0]]; first != nil {
			summary := strings.Trim(first.Name+" / "+first.Size, " /")
			_ = ob.f.SetCellValue(ob.sheet, ob.cell(base, o.Idx), summary)
		}
		for k, cIdx := range list {
			if k >= maxRefs {
				break
			}
			sheetRow := mapCatalog.HeaderRow + 1 + cIdx
			_ = ob.f.SetCellValue(ob.sheet, ob.cell(base+1+k, o.Idx), sheetRow)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct {
		name string
		f    *excelize.File
	}{
		{"order_matched.xlsx", ob.f},
		{"catalog_matched.xlsx", cb.f},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		body, err := part.f.WriteToBuffer()
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(body.Bytes()); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
