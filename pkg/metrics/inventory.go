package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

// InventoryMetrics records stock adjustment outcomes.
type InventoryMetrics struct {
	scans            *prometheus.CounterVec
	insufficient     prometheus.Counter
	orderDeductions  prometheus.Counter
	lowStockProducts prometheus.Gauge
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	scans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_scans_total",
		Help: "Processed inventory scans by action and result.",
	}, []string{"action", "result"})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_insufficient_stock_total",
		Help: "Adjustments rejected for insufficient stock.",
	})
	orderDeductions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_order_deductions_total",
		Help: "Inventory deductions applied by order creation.",
	})
	lowStock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_low_stock_products",
		Help: "Products with nonzero quantity at or below their low stock threshold.",
	})
	reg.MustRegister(scans, insufficient, orderDeductions, lowStock)
	return &InventoryMetrics{
		scans:            scans,
		insufficient:     insufficient,
		orderDeductions:  orderDeductions,
		lowStockProducts: lowStock,
	}
}

// IncScan counts one processed scan by action and result label.
func (m *InventoryMetrics) IncScan(action enums.InventoryAction, result string) {
	if m == nil || m.scans == nil {
		return
	}
	m.scans.WithLabelValues(normalizeLabel(action.String()), normalizeLabel(result)).Inc()
}

// IncInsufficientStock counts one rejected adjustment.
func (m *InventoryMetrics) IncInsufficientStock() {
	if m == nil || m.insufficient == nil {
		return
	}
	m.insufficient.Inc()
}

// IncOrderDeduction counts one applied order deduction.
func (m *InventoryMetrics) IncOrderDeduction() {
	if m == nil || m.orderDeductions == nil {
		return
	}
	m.orderDeductions.Inc()
}

// SetLowStockProducts reports the current low stock product count.
func (m *InventoryMetrics) SetLowStockProducts(count int64) {
	if m == nil || m.lowStockProducts == nil {
		return
	}
	m.lowStockProducts.Set(float64(count))
}
