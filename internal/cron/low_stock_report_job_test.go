package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

func TestLowStockReportJobSetsGauge(t *testing.T) {
	counter := &fakeStockCounter{counts: inventory.StockCounts{
		TotalProducts: 12,
		InStock:       9,
		LowStock:      4,
		OutOfStock:    3,
	}}
	gauge := &fakeLowStockGauge{}
	job := newLowStockReportJob(t, counter, gauge)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counter.called != 1 {
		t.Fatalf("expected counter called once, got %d", counter.called)
	}
	if gauge.value != 4 {
		t.Fatalf("expected gauge 4, got %d", gauge.value)
	}
}

func TestLowStockReportJobPropagatesError(t *testing.T) {
	counter := &fakeStockCounter{err: errors.New("boom")}
	gauge := &fakeLowStockGauge{}
	job := newLowStockReportJob(t, counter, gauge)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if gauge.sets != 0 {
		t.Fatalf("gauge should not be set on error, got %d sets", gauge.sets)
	}
}

func newLowStockReportJob(t *testing.T, counter *fakeStockCounter, gauge *fakeLowStockGauge) Job {
	t.Helper()
	job, err := NewLowStockReportJob(LowStockReportJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Counter: counter,
		Gauge:   gauge,
	})
	if err != nil {
		t.Fatalf("NewLowStockReportJob: %v", err)
	}
	return job
}

type fakeStockCounter struct {
	counts inventory.StockCounts
	err    error
	called int
}

func (f *fakeStockCounter) CountsByStockState(ctx context.Context) (*inventory.StockCounts, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	counts := f.counts
	return &counts, nil
}

type fakeLowStockGauge struct {
	value int64
	sets  int
}

func (f *fakeLowStockGauge) SetLowStockProducts(count int64) {
	f.value = count
	f.sets++
}
