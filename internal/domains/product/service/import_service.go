package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"jewelstore-backend/internal/domains/product/model"
	"jewelstore-backend/internal/shared/utils"
	"jewelstore-backend/pkg/logger"
)

// Spreadsheet columns, in order. The first row is the header and is
// skipped.
//
//	name | category | metal | purity | gemstone | weight_grams | price | compare_at_price | stock | active | description
const importColumnCount = 11

// ImportSpreadsheet ingests an xlsx catalog sheet. Rows match existing
// products by slug (derived from the name), so re-importing the same
// sheet updates instead of duplicating. A bad row is reported and
// skipped, never aborting the rest of the sheet.
func (s *productService) ImportSpreadsheet(ctx context.Context, r io.Reader) (*model.ImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	summary := &model.ImportSummary{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		product, err := parseImportRow(row)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		created, err := s.repo.UpsertBySlug(ctx, product)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	logger.Info("catalog import finished", map[string]interface{}{
		"created": summary.Created,
		"updated": summary.Updated,
		"skipped": summary.Skipped,
	})
	return summary, nil
}

func parseImportRow(row []string) (*model.Product, error) {
	// Trailing empty cells are dropped by the reader; pad them back.
	for len(row) < importColumnCount {
		row = append(row, "")
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	category := model.Category(strings.ToLower(strings.TrimSpace(row[1])))
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q", row[1])
	}

	metal := strings.TrimSpace(row[2])
	if metal == "" {
		return nil, fmt.Errorf("metal is empty")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row[6]))
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("invalid price %q", row[6])
	}

	stock := 0
	if v := strings.TrimSpace(row[8]); v != "" {
		stock, err = strconv.Atoi(v)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock %q", row[8])
		}
	}

	p := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		Slug:       utils.Slugify(name),
		Category:   category,
		Metal:      metal,
		Price:      price,
		StockCount: stock,
		IsActive:   parseBool(row[9], true),
	}

	if v := strings.TrimSpace(row[3]); v != "" {
		p.Purity = &v
	}
	if v := strings.TrimSpace(row[4]); v != "" {
		p.Gemstone = &v
	}
	if v := strings.TrimSpace(row[5]); v != "" {
		w, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", v)
		}
		p.WeightGrams = &w
	}
	if v := strings.TrimSpace(row[7]); v != "" {
		cp, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid compare price %q", v)
		}
		p.CompareAtPrice = &cp
	}
	if v := strings.TrimSpace(row[10]); v != "" {
		p.Description = &v
	}

	return p, nil
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y":
		return true
	case "false", "no", "0", "n":
		return false
	default:
		return def
	}
}
