// internal/service/import_service.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/VictorRSilva05/proactive-inventory/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Sale CSV column names follow the legacy ERP export.
var requiredImportColumns = []string{"produto_id", "data_venda", "produto", "quantidade", "preco_unitario"}

var importTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ImportResult summarizes one processed CSV file.
type ImportResult struct {
	Rows       int    `json:"rows"`
	Products   int    `json:"products"`
	ArchiveKey string `json:"archive_key,omitempty"`
}

// ImportService ingests sales history CSV files: it upserts categories and
// products, appends sale rows, and fires the ingestion trigger for every
// affected product once the whole file is written.
type ImportService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	sales      repository.SaleRepository
	archive    storage.ImportArchive
	notifier   Notifier
}

func NewImportService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	sales repository.SaleRepository,
	archive storage.ImportArchive,
	notifier Notifier,
) *ImportService {
	if archive == nil {
		archive = storage.NewNoopImportArchive()
	}
	return &ImportService{
		products:   products,
		categories: categories,
		sales:      sales,
		archive:    archive,
		notifier:   notifier,
	}
}

// ImportFile ingests the CSV at path.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	result, err := s.importReader(ctx, f)
	if err != nil {
		return nil, err
	}

	key, err := s.archiveFile(ctx, path)
	if err != nil {
		// The data is already imported; a failed archive copy is not fatal.
		log.Warn().Err(err).Str("file", path).Msg("import archive failed")
	}
	result.ArchiveKey = key

	return result, nil
}

func (s *ImportService) importReader(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}

	for _, col := range requiredImportColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var (
		rows     int
		affected []int64
		seen     = make(map[int64]bool)
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		productID, err := s.processRow(ctx, record, colMap)
		if err != nil {
			return nil, fmt.Errorf("failed to process row %d: %w", rows+2, err)
		}

		rows++
		if !seen[productID] {
			seen[productID] = true
			affected = append(affected, productID)
		}
	}

	if len(affected) > 0 {
		if err := s.notifier.OnInventoryOrSalesChanged(ctx, affected...); err != nil {
			return nil, fmt.Errorf("post-import pipeline: %w", err)
		}
	}

	log.Info().Int("rows", rows).Int("products", len(affected)).Msg("sales import completed")

	return &ImportResult{Rows: rows, Products: len(affected)}, nil
}

func (s *ImportService) processRow(ctx context.Context, record []string, colMap map[string]int) (int64, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	getInt := func(colName string) int64 {
		v, _ := strconv.ParseInt(getValue(colName), 10, 64)
		return v
	}

	getDecimal := func(colName string) decimal.Decimal {
		d, err := decimal.NewFromString(getValue(colName))
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	originID := getInt("produto_id")
	if originID == 0 {
		return 0, fmt.Errorf("invalid produto_id %q", getValue("produto_id"))
	}

	soldAt, err := parseImportTime(getValue("data_venda"))
	if err != nil {
		return 0, fmt.Errorf("invalid data_venda: %w", err)
	}

	quantity := int(getInt("quantidade"))
	if quantity <= 0 {
		return 0, fmt.Errorf("invalid quantidade %q", getValue("quantidade"))
	}

	var expiresAt *time.Time
	if raw := getValue("data_validade"); raw != "" {
		t, err := parseImportTime(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid data_validade: %w", err)
		}
		expiresAt = &t
	}

	category, err := s.upsertCategory(ctx, getValue("categoria"))
	if err != nil {
		return 0, err
	}

	product, err := s.upsertProduct(ctx, originID, category.ID, getValue, getDecimal, expiresAt)
	if err != nil {
		return 0, err
	}

	sale := &domain.Sale{
		ProductID: product.ID,
		SoldAt:    soldAt,
		ExpiresAt: expiresAt,
		Quantity:  quantity,
		UnitPrice: getDecimal("preco_unitario"),
	}
	if supplier := getValue("fornecedor"); supplier != "" {
		sale.Supplier = &supplier
	}
	if raw := getValue("estoque_atual"); raw != "" {
		stock := int(getInt("estoque_atual"))
		sale.StockAtSale = &stock
	}

	if err := s.sales.Insert(ctx, sale); err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	return product.ID, nil
}

func (s *ImportService) upsertCategory(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		name = "Unclassified"
	}

	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup category %q: %w", name, err)
	}
	if category != nil {
		return category, nil
	}

	category = &domain.Category{
		Name:        name,
		Description: "Created by CSV import",
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return category, nil
}

func (s *ImportService) upsertProduct(
	ctx context.Context,
	originID int64,
	categoryID int64,
	getValue func(string) string,
	getDecimal func(string) decimal.Decimal,
	expiresAt *time.Time,
) (*domain.Product, error) {
	product, err := s.products.GetByOriginID(ctx, originID)
	if err != nil {
		return nil, fmt.Errorf("lookup product by origin id %d: %w", originID, err)
	}

	var barcode *string
	if raw := getValue("codigo_barras"); raw != "" {
		barcode = &raw
	}

	if product == nil {
		product = &domain.Product{
			Name:         getValue("produto"),
			Barcode:      barcode,
			CategoryID:   categoryID,
			AvgUnitPrice: getDecimal("preco_unitario"),
			ExpiresAt:    expiresAt,
			OriginID:     originID,
		}
		if raw := getValue("estoque_atual"); raw != "" {
			stock, _ := strconv.Atoi(raw)
			product.CurrentStock = stock
		}
		if err := s.products.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return product, nil
	}

	product.Name = getValue("produto")
	product.Barcode = barcode
	product.CategoryID = categoryID
	product.AvgUnitPrice = getDecimal("preco_unitario")
	product.ExpiresAt = expiresAt
	if raw := getValue("estoque_atual"); raw != "" {
		stock, _ := strconv.Atoi(raw)
		product.CurrentStock = stock
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", product.ID, err)
	}
	return product, nil
}

func (s *ImportService) archiveFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	return s.archive.Store(ctx, filepath.Base(path), f, info.Size())
}

// parseImportTime parses a legacy-export timestamp and forces UTC.
func parseImportTime(value string) (time.Time, error) {
	for _, layout := range importTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
