package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jihun2da/product-matching-system/internal/config"
	"github.com/jihun2da/product-matching-system/internal/fileio"
	"github.com/jihun2da/product-matching-system/internal/match/model"
	matchSvc "github.com/jihun2da/product-matching-system/internal/match/service"
)

// matchInput is everything one request contributes to a run: both
// datasets, the column mappings, the effective config, and the raw
// workbook bytes (annotation rewrites the uploaded files).
type matchInput struct {
	orders, catalog          []model.Row
	mapOrder, mapCatalog     model.Mapping
	cfg                      model.MatchConfig
	orderBytes, catalogBytes []byte
	orderName, catalogName   string
}

func parseRequest(r *http.Request, srvCfg config.Config, base model.MatchConfig) (*matchInput, int, error) {
	limit := int64(srvCfg.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 200 << 20
	}
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("bad multipart form: %w", err)
	}

	orderBytes, orderName, err := readUpload(r, "order")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	catalogBytes, catalogName, err := readUpload(r, "catalog")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	in := &matchInput{
		orderBytes:   orderBytes,
		catalogBytes: catalogBytes,
		orderName:    orderName,
		catalogName:  catalogName,
		mapOrder: model.Mapping{
			BrandKey:  formOr(r, "order_brand", "브랜드"),
			NameKey:   formOr(r, "order_name", "상품명"),
			ColorKey:  formOr(r, "order_color", "색상"),
			SizeKey:   formOr(r, "order_size", "사이즈"),
			QtyKey:    formOr(r, "order_qty", "수량"),
			AmountKey: formOr(r, "order_amount", "금액"),
			HeaderRow: atoi(r.FormValue("order_header_row"), 1),
		},
		mapCatalog: model.Mapping{
			BrandKey:  formOr(r, "catalog_brand", "브랜드"),
			NameKey:   formOr(r, "catalog_name", "상품명"),
			ColorKey:  formOr(r, "catalog_color", "색상"),
			SizeKey:   formOr(r, "catalog_size", "사이즈"),
			QtyKey:    formOr(r, "catalog_qty", "수량"),
			AmountKey: formOr(r, "catalog_amount", "도매가"),
			HeaderRow: atoi(r.FormValue("catalog_header_row"), 1),
		},
	}

	// per-request overrides on top of the server's matching config
	cfg := base
	cfg.NameCutoff = toFloat(r.FormValue("cutoff"), cfg.NameCutoff)
	cfg.Weights.Brand = toFloat(r.FormValue("weight_brand"), cfg.Weights.Brand)
	cfg.Weights.Name = toFloat(r.FormValue("weight_name"), cfg.Weights.Name)
	cfg.Weights.Color = toFloat(r.FormValue("weight_color"), cfg.Weights.Color)
	cfg.Weights.Size = toFloat(r.FormValue("weight_size"), cfg.Weights.Size)
	in.cfg = cfg

	orderMaps, err := fileio.ReadAnyMaps(bytes.NewReader(orderBytes), orderName, in.mapOrder.HeaderRow)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read order file: %w", err)
	}
	catalogMaps, err := fileio.ReadAnyMaps(bytes.NewReader(catalogBytes), catalogName, in.mapCatalog.HeaderRow)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read catalog file: %w", err)
	}

	// missing required columns fail here, before the engine runs
	if err := requireColumns(orderMaps, in.mapOrder); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("order file: %w", err)
	}
	if err := requireColumns(catalogMaps, in.mapCatalog); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("catalog file: %w", err)
	}

	in.orders = toRows(orderMaps, in.mapOrder)
	in.catalog = toRows(catalogMaps, in.mapCatalog)
	return in, 0, nil
}

func readUpload(r *http.Request, field string) ([]byte, string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing %s: %w", field, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", field, err)
	}
	return b, hdr.Filename, nil
}

// Match runs the engine over two uploaded tables and returns the match
// results, report, and residuals as JSON.
func Match(cfg config.Config, matchCfg model.MatchConfig, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		in, code, err := parseRequest(r, cfg, matchCfg)
		if err != nil {
			http.Error(w, err.Error(), code)
			return
		}

		res := matchSvc.Run(in.orders, in.catalog, in.cfg, log)
		res.Weights = in.cfg.Weights
		res.NameCutoff = in.cfg.NameCutoff
		res.MapOrder = in.mapOrder
		res.MapCatalog = in.mapCatalog

		writeJSON(w, res, log)
		log.Info().
			Int("orders", len(in.orders)).
			Int("catalog", len(in.catalog)).
			Int("matches", len(res.Matches)).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// Annotate runs the engine and streams back a zip with both workbooks
// color-annotated. XLSX only: annotation rewrites the uploaded files.
func Annotate(cfg config.Config, matchCfg model.MatchConfig, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		in, code, err := parseRequest(r, cfg, matchCfg)
		if err != nil {
			http.Error(w, err.Error(), code)
			return
		}
		for _, name := range []string{in.orderName, in.catalogName} {
			if strings.ToLower(filepath.Ext(name)) != ".xlsx" {
				http.Error(w, "annotate supports .xlsx only: "+name, http.StatusBadRequest)
				return
			}
		}

		res := matchSvc.Run(in.orders, in.catalog, in.cfg, log)

		zipBytes, err := fileio.AnnotateZip(
			in.orderBytes, in.catalogBytes,
			in.orders, in.catalog, res,
			in.mapOrder, in.mapCatalog, in.cfg.Colors,
		)
		if err != nil {
			log.Error().Err(err).Msg("annotate workbooks")
			http.Error(w, "failed to annotate: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="matched.zip"`)
		if _, err := w.Write(zipBytes); err != nil {
			log.Error().Err(err).Msg("write zip")
			return
		}
		log.Info().
			Int("matches", len(res.Matches)).
			Dur("elapsed", time.Since(start)).
			Msg("annotate done")
	}
}

// ShowConfig echoes the effective matching configuration. Read-only:
// editing is a collaborator concern, not this service's.
func ShowConfig(matchCfg model.MatchConfig, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, matchCfg, reqLogger(logger, r))
	}
}
