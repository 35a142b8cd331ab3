// internal/forecast/engine.go
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// minSampleWindow is the seasonal cycle length of the statistical projection.
// The statistical branch needs more than twice this many observed sale events;
// below that the simple projection is used.
const minSampleWindow = 7

// Engine computes demand estimates from sale history and appends them to the
// forecast log.
type Engine struct {
	sales     repository.SaleRepository
	forecasts repository.ForecastRepository
}

func NewEngine(sales repository.SaleRepository, forecasts repository.ForecastRepository) *Engine {
	return &Engine{sales: sales, forecasts: forecasts}
}

// Generate computes and persists a demand estimate for the product over the
// given horizon, observing the trailing observationDays of sale history.
// A product with no sales in the window produces no forecast and returns
// (nil, nil): absence of data is absence of an opinion, not a zero-demand
// claim.
func (e *Engine) Generate(ctx context.Context, productID int64, observationDays, horizonDays int) (*domain.Forecast, error) {
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -observationDays)

	sales, err := e.sales.GetSalesSince(ctx, productID, since)
	if err != nil {
		return nil, fmt.Errorf("load sale history: %w", err)
	}

	if len(sales) == 0 {
		log.Debug().
			Int64("product_id", productID).
			Int("observation_days", observationDays).
			Msg("no sales in observation window, skipping forecast")
		return nil, nil
	}

	// Mean quantity per sale event, not per calendar day.
	var total int64
	series := make([]float64, len(sales))
	for i, sale := range sales {
		total += int64(sale.Quantity)
		series[i] = float64(sale.Quantity)
	}
	mean := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(len(sales))))

	var demand int
	if len(sales) <= 2*minSampleWindow {
		demand = simpleProjection(mean, horizonDays)
	} else {
		demand = seasonalProjection(series, horizonDays)
	}

	forecast := &domain.Forecast{
		ProductID:       productID,
		ObservationDays: observationDays,
		HorizonDays:     horizonDays,
		MeanQuantity:    mean,
		Demand:          demand,
		ComputedAt:      time.Now().UTC(),
	}

	if err := e.forecasts.Save(ctx, forecast); err != nil {
		return nil, fmt.Errorf("save forecast: %w", err)
	}

	log.Info().
		Int64("product_id", productID).
		Int("horizon_days", horizonDays).
		Int("demand", demand).
		Int("samples", len(sales)).
		Msg("forecast generated")

	return forecast, nil
}

// simpleProjection scales the observed mean per-event quantity across the
// horizon. Used when the sample is too small for the seasonal projection.
func simpleProjection(mean decimal.Decimal, horizonDays int) int {
	return int(mean.Mul(decimal.NewFromInt(int64(horizonDays))).Round(0).IntPart())
}

// seasonalProjection projects the ordered per-event quantity series across the
// horizon using a trailing moving-average level adjusted by a seasonal index
// over a minSampleWindow-slot cycle, then sums the horizon.
func seasonalProjection(series []float64, horizonDays int) int {
	n := len(series)

	var level float64
	for _, v := range series[n-minSampleWindow:] {
		level += v
	}
	level /= float64(minSampleWindow)

	var sum float64
	for _, v := range series {
		sum += v
	}
	overall := sum / float64(n)

	index := make([]float64, minSampleWindow)
	counts := make([]int, minSampleWindow)
	for i, v := range series {
		pos := i % minSampleWindow
		index[pos] += v
		counts[pos]++
	}
	for pos := range index {
		if counts[pos] > 0 && overall > 0 {
			index[pos] = (index[pos] / float64(counts[pos])) / overall
		} else {
			index[pos] = 1
		}
	}

	var total float64
	for h := 1; h <= horizonDays; h++ {
		total += level * index[(n+h-1)%minSampleWindow]
	}

	return int(math.Round(total))
}
