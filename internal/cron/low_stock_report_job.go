package cron

import (
	"context"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

type LowStockReportJobParams struct {
	Logger  *logger.Logger
	Counter stockCounter
	Gauge   lowStockGauge
}

type stockCounter interface {
	CountsByStockState(ctx context.Context) (*inventory.StockCounts, error)
}

type lowStockGauge interface {
	SetLowStockProducts(count int64)
}

// NewLowStockReportJob builds the read-only stock-state report job. It never
// mutates inventory; it only refreshes the gauge and writes a summary line.
func NewLowStockReportJob(params LowStockReportJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Counter == nil {
		return nil, fmt.Errorf("stock counter required")
	}
	return &lowStockReportJob{
		logg:    params.Logger,
		counter: params.Counter,
		gauge:   params.Gauge,
	}, nil
}

type lowStockReportJob struct {
	logg    *logger.Logger
	counter stockCounter
	gauge   lowStockGauge
}

func (j *lowStockReportJob) Name() string { return "low-stock-report" }

func (j *lowStockReportJob) Run(ctx context.Context) error {
	counts, err := j.counter.CountsByStockState(ctx)
	if err != nil {
		return fmt.Errorf("low stock report: %w", err)
	}
	if j.gauge != nil {
		j.gauge.SetLowStockProducts(counts.LowStock)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"total_products": counts.TotalProducts,
		"in_stock":       counts.InStock,
		"low_stock":      counts.LowStock,
		"out_of_stock":   counts.OutOfStock,
	})
	j.logg.Info(logCtx, "low stock report complete")
	return nil
}
