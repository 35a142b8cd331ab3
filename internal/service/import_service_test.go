// internal/service/import_service_test.go
package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRSilva05/proactive-inventory/internal/repository/memory"
	"github.com/VictorRSilva05/proactive-inventory/internal/storage"
)

// recordingNotifier captures trigger invocations instead of running the
// pipeline.
type recordingNotifier struct {
	calls [][]int64
}

func (n *recordingNotifier) OnInventoryOrSalesChanged(ctx context.Context, productIDs ...int64) error {
	ids := make([]int64, len(productIDs))
	copy(ids, productIDs)
	n.calls = append(n.calls, ids)
	return nil
}

type importFixture struct {
	products   *memory.ProductRepository
	categories *memory.CategoryRepository
	sales      *memory.SaleRepository
	notifier   *recordingNotifier
	service    *ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		products:   memory.NewProductRepository(),
		categories: memory.NewCategoryRepository(),
		sales:      memory.NewSaleRepository(),
		notifier:   &recordingNotifier{},
	}
	f.service = NewImportService(f.products, f.categories, f.sales, storage.NewNoopImportArchive(), f.notifier)
	return f
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const importHeader = "produto_id,codigo_barras,data_venda,data_validade,produto,quantidade,preco_unitario,categoria,fornecedor,estoque_atual\n"

func TestImportFileCreatesEverything(t *testing.T) {
	f := newImportFixture()

	path := writeCSV(t, importHeader+
		"101,789100001,2025-06-01 10:30:00,2026-01-15,Shampoo,2,12.50,Hygiene,Acme,40\n"+
		"101,789100001,2025-06-02 11:00:00,2026-01-15,Shampoo,1,12.50,Hygiene,Acme,39\n"+
		"205,,2025-06-02,,Soap,3,4.90,,,\n")

	result, err := f.service.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 2, result.Products)

	shampoo, err := f.products.GetByOriginID(context.Background(), 101)
	require.NoError(t, err)
	require.NotNil(t, shampoo)
	assert.Equal(t, "Shampoo", shampoo.Name)
	assert.Equal(t, 39, shampoo.CurrentStock) // last row wins
	require.NotNil(t, shampoo.Barcode)
	assert.Equal(t, "789100001", *shampoo.Barcode)
	require.NotNil(t, shampoo.ExpiresAt)

	soap, err := f.products.GetByOriginID(context.Background(), 205)
	require.NoError(t, err)
	require.NotNil(t, soap)
	assert.Nil(t, soap.Barcode)
	assert.Nil(t, soap.ExpiresAt)

	hygiene, err := f.categories.GetByName(context.Background(), "Hygiene")
	require.NoError(t, err)
	require.NotNil(t, hygiene)
	assert.Equal(t, shampoo.CategoryID, hygiene.ID)

	// Rows without a category land in the fallback bucket.
	fallback, err := f.categories.GetByName(context.Background(), "Unclassified")
	require.NoError(t, err)
	require.NotNil(t, fallback)
	assert.Equal(t, soap.CategoryID, fallback.ID)

	exists, err := f.sales.ExistsForProduct(context.Background(), shampoo.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestImportFiresNotifierOncePerFile(t *testing.T) {
	f := newImportFixture()

	path := writeCSV(t, importHeader+
		"101,,2025-06-01,,Shampoo,2,12.50,Hygiene,,\n"+
		"101,,2025-06-02,,Shampoo,1,12.50,Hygiene,,\n"+
		"205,,2025-06-02,,Soap,3,4.90,Hygiene,,\n")

	_, err := f.service.ImportFile(context.Background(), path)
	require.NoError(t, err)

	// One call, affected products deduplicated in first-seen order.
	require.Len(t, f.notifier.calls, 1)
	assert.Len(t, f.notifier.calls[0], 2)
}

func TestImportRejectsMissingColumns(t *testing.T) {
	f := newImportFixture()

	path := writeCSV(t, "produto_id,data_venda\n101,2025-06-01\n")

	_, err := f.service.ImportFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
	assert.Empty(t, f.notifier.calls)
}

func TestImportRejectsBadRows(t *testing.T) {
	f := newImportFixture()

	t.Run("zero quantity", func(t *testing.T) {
		path := writeCSV(t, importHeader+"101,,2025-06-01,,Shampoo,0,12.50,,,\n")
		_, err := f.service.ImportFile(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		path := writeCSV(t, importHeader+"101,,junk,,Shampoo,1,12.50,,,\n")
		_, err := f.service.ImportFile(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data_venda")
	})

	t.Run("missing product id", func(t *testing.T) {
		path := writeCSV(t, importHeader+",,2025-06-01,,Shampoo,1,12.50,,,\n")
		_, err := f.service.ImportFile(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "produto_id")
	})
}

func TestImportParsesLegacyTimestamps(t *testing.T) {
	for _, value := range []string{
		"2025-06-01T10:30:00Z",
		"2025-06-01 10:30:00",
		"2025-06-01",
	} {
		parsed, err := parseImportTime(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2025, parsed.Year())
		assert.Equal(t, "UTC", parsed.Location().String())
	}

	_, err := parseImportTime("06/01/2025")
	assert.Error(t, err)
}
