// internal/service/product_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository/memory"
)

func TestProductMutationsFireNotifier(t *testing.T) {
	products := memory.NewProductRepository()
	sales := memory.NewSaleRepository()
	notifier := &recordingNotifier{}
	svc := NewProductService(products, sales, notifier)

	product := &domain.Product{Name: "Widget", CategoryID: 1, CurrentStock: 10}
	require.NoError(t, svc.Create(context.Background(), product))
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, []int64{product.ID}, notifier.calls[0])

	product.CurrentStock = 3
	require.NoError(t, svc.Update(context.Background(), product))
	assert.Len(t, notifier.calls, 2)
}

func TestProductDeleteGuardedBySales(t *testing.T) {
	products := memory.NewProductRepository()
	sales := memory.NewSaleRepository()
	svc := NewProductService(products, sales, &recordingNotifier{})

	withSales := &domain.Product{Name: "Sold", CategoryID: 1}
	require.NoError(t, svc.Create(context.Background(), withSales))
	require.NoError(t, sales.Insert(context.Background(), &domain.Sale{
		ProductID: withSales.ID, SoldAt: time.Now().UTC(), Quantity: 1,
	}))

	unsold := &domain.Product{Name: "Unsold", CategoryID: 1}
	require.NoError(t, svc.Create(context.Background(), unsold))

	err := svc.Delete(context.Background(), withSales.ID)
	assert.ErrorIs(t, err, domain.ErrProductHasSales)

	require.NoError(t, svc.Delete(context.Background(), unsold.ID))
	_, err = products.GetByID(context.Background(), unsold.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductGetFillsLastSaleDate(t *testing.T) {
	products := memory.NewProductRepository()
	sales := memory.NewSaleRepository()
	svc := NewProductService(products, sales, &recordingNotifier{})

	product := &domain.Product{Name: "Widget", CategoryID: 1}
	require.NoError(t, svc.Create(context.Background(), product))

	latest := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, sales.Insert(context.Background(), &domain.Sale{
		ProductID: product.ID, SoldAt: latest.Add(-48 * time.Hour), Quantity: 1,
	}))
	require.NoError(t, sales.Insert(context.Background(), &domain.Sale{
		ProductID: product.ID, SoldAt: latest, Quantity: 1,
	}))

	got, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastSaleAt)
	assert.True(t, got.LastSaleAt.Equal(latest))
}
