package types

import (
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// StockMovementRow mirrors the stock_movements BigQuery schema. One row per
// applied inventory mutation, regardless of whether a scan, a manual set or a
// variant adjustment produced it.
type StockMovementRow struct {
	EventID        string             `bigquery:"event_id"`
	EventType      string             `bigquery:"event_type"`
	OccurredAt     time.Time          `bigquery:"occurred_at"`
	Action         string             `bigquery:"action"`
	ProductID      int64              `bigquery:"product_id"`
	ProductUUID    *string            `bigquery:"product_uuid"`
	VariantID      *int64             `bigquery:"variant_id"`
	ItemName       *string            `bigquery:"item_name"`
	ItemSKU        *string            `bigquery:"item_sku"`
	QuantityChange int64              `bigquery:"quantity_change"`
	QuantityBefore int64              `bigquery:"quantity_before"`
	QuantityAfter  int64              `bigquery:"quantity_after"`
	Reason         *string            `bigquery:"reason"`
	DeviceType     *string            `bigquery:"device_type"`
	Payload        cbigquery.NullJSON `bigquery:"payload"`
}

// OrderFactRow mirrors the order_facts BigQuery schema. Creation facts carry
// the money columns; status transitions leave them null.
type OrderFactRow struct {
	EventID        string             `bigquery:"event_id"`
	EventType      string             `bigquery:"event_type"`
	OccurredAt     time.Time          `bigquery:"occurred_at"`
	OrderID        int64              `bigquery:"order_id"`
	OrderNumber    string             `bigquery:"order_number"`
	Status         string             `bigquery:"status"`
	PreviousStatus *string            `bigquery:"previous_status"`
	ItemCount      *int64             `bigquery:"item_count"`
	SubtotalCents  *int64             `bigquery:"subtotal_cents"`
	TotalCents     *int64             `bigquery:"total_cents"`
	Payload        cbigquery.NullJSON `bigquery:"payload"`
}
