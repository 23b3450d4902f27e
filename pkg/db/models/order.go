package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/types"
)

// Order is a fulfillment order whose line items deduct catalog inventory when
// the order is created. Customer, shipping, payment and invoice details live
// in jsonb maps so the shape can evolve without schema changes. Shipping and
// delivery timestamps are stamped exactly once on the first transition into
// the matching status.
type Order struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UUID            uuid.UUID         `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_orders_uuid"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex:ux_orders_order_number"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending';index"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount  decimal.Decimal   `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	ShippingCost    decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(12,2);not null"`
	TaxAmount       decimal.Decimal   `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	ShippingInfo    types.JSONMap     `gorm:"column:shipping_info;type:jsonb;serializer:json"`
	BillingInfo     types.JSONMap     `gorm:"column:billing_info;type:jsonb;serializer:json"`
	ShippingDetails types.JSONMap     `gorm:"column:shipping_details;type:jsonb;serializer:json"`
	PaymentInfo     types.JSONMap     `gorm:"column:payment_info;type:jsonb;serializer:json"`
	InvoiceData     types.JSONMap     `gorm:"column:invoice_data;type:jsonb;serializer:json"`
	ExtraData       types.JSONMap     `gorm:"column:extra_data;type:jsonb;serializer:json"`
	InternalNotes   *string           `gorm:"column:internal_notes"`
	CustomerNotes   *string           `gorm:"column:customer_notes"`
	CreatedByID     *int64            `gorm:"column:created_by_id"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippedAt       *time.Time        `gorm:"column:shipped_at"`
	DeliveredAt     *time.Time        `gorm:"column:delivered_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one line of an order. Product and variant details are
// snapshotted at order time so later catalog edits never rewrite history;
// the id references stay nullable for the same reason.
type OrderItem struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID       `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_order_items_uuid"`
	OrderID        int64           `gorm:"column:order_id;not null;index"`
	ProductID      *int64          `gorm:"column:product_id;index"`
	VariantID      *int64          `gorm:"column:variant_id;index"`
	ProductName    string          `gorm:"column:product_name;not null"`
	ProductSKU     *string         `gorm:"column:product_sku"`
	ProductBarcode *string         `gorm:"column:product_barcode"`
	VariantName    *string         `gorm:"column:variant_name"`
	VariantOptions types.StringMap `gorm:"column:variant_options;type:jsonb;serializer:json"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	Discount       decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	ExtraData      types.JSONMap   `gorm:"column:extra_data;type:jsonb;serializer:json"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
