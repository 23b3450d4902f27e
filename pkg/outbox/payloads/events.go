package payloads

import (
	"github.com/google/uuid"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

// InventoryScannedEvent mirrors one applied device scan against a record.
type InventoryScannedEvent struct {
	ProductID        int64                 `json:"product_id"`
	ProductUUID      uuid.UUID             `json:"product_uuid"`
	VariantID        *int64                `json:"variant_id,omitempty"`
	VariantUUID      *uuid.UUID            `json:"variant_uuid,omitempty"`
	VariantName      *string               `json:"variant_name,omitempty"`
	ItemName         string                `json:"item_name"`
	ItemSKU          string                `json:"item_sku"`
	Action           enums.InventoryAction `json:"action"`
	PreviousQuantity int                   `json:"previous_quantity"`
	NewQuantity      int                   `json:"new_quantity"`
	Change           int                   `json:"change"`
	DeviceType       *string               `json:"device_type,omitempty"`
}

// InventoryUpdatedEvent is emitted when a manual quantity set changes a
// product-level record.
type InventoryUpdatedEvent struct {
	ProductID        int64     `json:"product_id"`
	ProductUUID      uuid.UUID `json:"product_uuid"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Change           int       `json:"change"`
}

// VariantInventoryAdjustedEvent is emitted by the manual variant endpoint.
type VariantInventoryAdjustedEvent struct {
	ProductID        int64                   `json:"product_id"`
	VariantID        int64                   `json:"variant_id"`
	VariantUUID      uuid.UUID               `json:"variant_uuid"`
	Mode             enums.VariantAdjustMode `json:"mode"`
	PreviousQuantity int                     `json:"previous_quantity"`
	NewQuantity      int                     `json:"new_quantity"`
	Change           int                     `json:"change"`
	Reason           *string                 `json:"reason,omitempty"`
}

// ProductCreatedEvent announces a new catalog listing with its record.
type ProductCreatedEvent struct {
	ProductID       int64     `json:"product_id"`
	ProductUUID     uuid.UUID `json:"product_uuid"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	SKU             string    `json:"sku"`
	Barcode         *string   `json:"barcode,omitempty"`
	InitialQuantity int       `json:"initial_quantity"`
}

// VariantCreatedEvent announces a new variant with its record.
type VariantCreatedEvent struct {
	ProductID       int64     `json:"product_id"`
	VariantID       int64     `json:"variant_id"`
	VariantUUID     uuid.UUID `json:"variant_uuid"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	Barcode         *string   `json:"barcode,omitempty"`
	IsDefault       bool      `json:"is_default"`
	InitialQuantity int       `json:"initial_quantity"`
}

// OrderCreatedEvent carries the order header facts after stock deduction.
type OrderCreatedEvent struct {
	OrderID       int64             `json:"order_id"`
	OrderUUID     uuid.UUID         `json:"order_uuid"`
	OrderNumber   string            `json:"order_number"`
	Status        enums.OrderStatus `json:"status"`
	ItemCount     int               `json:"item_count"`
	SubtotalCents int64             `json:"subtotal_cents"`
	TotalCents    int64             `json:"total_cents"`
}

// OrderStatusChangedEvent records a status transition.
type OrderStatusChangedEvent struct {
	OrderID        int64             `json:"order_id"`
	OrderUUID      uuid.UUID         `json:"order_uuid"`
	OrderNumber    string            `json:"order_number"`
	PreviousStatus enums.OrderStatus `json:"previous_status"`
	Status         enums.OrderStatus `json:"status"`
}

// DirectOrderCreatedEvent announces a brand-fulfilled order that never touches
// inventory.
type DirectOrderCreatedEvent struct {
	DirectOrderID   int64                   `json:"direct_order_id"`
	DirectOrderUUID uuid.UUID               `json:"direct_order_uuid"`
	OrderNumber     string                  `json:"order_number"`
	Status          enums.DirectOrderStatus `json:"status"`
	ItemCount       int                     `json:"item_count"`
}
