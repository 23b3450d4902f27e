package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/types"
)

// DirectOrder is a brand-fulfilled order tracked for bookkeeping only. It
// never touches catalog inventory.
type DirectOrder struct {
	ID             int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID               `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_direct_orders_uuid"`
	OrderNumber    string                  `gorm:"column:order_number;not null;uniqueIndex:ux_direct_orders_order_number"`
	Status         enums.DirectOrderStatus `gorm:"column:status;not null;default:'pending';index"`
	CustomerInfo   types.JSONMap           `gorm:"column:customer_info;type:jsonb;serializer:json"`
	BrandName      *string                 `gorm:"column:brand_name"`
	BrandID        *int64                  `gorm:"column:brand_id"`
	TrackingNumber *string                 `gorm:"column:tracking_number"`
	Carrier        *string                 `gorm:"column:carrier"`
	Notes          *string                 `gorm:"column:notes"`
	ExtraData      types.JSONMap           `gorm:"column:extra_data;type:jsonb;serializer:json"`
	CreatedByID    *int64                  `gorm:"column:created_by_id"`
	Items          []DirectOrderItem       `gorm:"foreignKey:DirectOrderID;constraint:OnDelete:CASCADE"`
	OrderDate      time.Time               `gorm:"column:order_date;autoCreateTime"`
	ShippedAt      *time.Time              `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time              `gorm:"column:delivered_at"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// DirectOrderItem is one line of a direct order. Unit price is optional since
// these orders are often logged after the fact for tracking only.
type DirectOrderItem struct {
	ID             int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID        `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_direct_order_items_uuid"`
	DirectOrderID  int64            `gorm:"column:direct_order_id;not null;index"`
	ProductID      *int64           `gorm:"column:product_id;index"`
	VariantID      *int64           `gorm:"column:variant_id;index"`
	ProductName    string           `gorm:"column:product_name;not null"`
	ProductSKU     *string          `gorm:"column:product_sku"`
	VariantName    *string          `gorm:"column:variant_name"`
	VariantOptions types.StringMap  `gorm:"column:variant_options;type:jsonb;serializer:json"`
	Quantity       int              `gorm:"column:quantity;not null"`
	UnitPrice      *decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	ExtraData      types.JSONMap    `gorm:"column:extra_data;type:jsonb;serializer:json"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}
