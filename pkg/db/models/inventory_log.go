package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

// InventoryLog is one append-only ledger entry for a product-level stock
// change. Rows are never updated or deleted, and quantity_after always equals
// quantity_before plus quantity_change.
type InventoryLog struct {
	ID             int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID             `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_inventory_logs_uuid"`
	InventoryID    int64                 `gorm:"column:inventory_id;not null;index"`
	Action         enums.InventoryAction `gorm:"column:action;not null"`
	QuantityChange int                   `gorm:"column:quantity_change;not null"`
	QuantityBefore int                   `gorm:"column:quantity_before;not null"`
	QuantityAfter  int                   `gorm:"column:quantity_after;not null"`
	Reason         *string               `gorm:"column:reason"`
	Reference      *string               `gorm:"column:reference"`
	DeviceType     *string               `gorm:"column:device_type"`
	DeviceInfo     *string               `gorm:"column:device_info"`
	UserID         *int64                `gorm:"column:user_id"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}

// VariantInventoryLog is the variant-level counterpart of InventoryLog.
type VariantInventoryLog struct {
	ID                 int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	UUID               uuid.UUID             `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_variant_inventory_logs_uuid"`
	VariantInventoryID int64                 `gorm:"column:variant_inventory_id;not null;index"`
	Action             enums.InventoryAction `gorm:"column:action;not null"`
	QuantityChange     int                   `gorm:"column:quantity_change;not null"`
	QuantityBefore     int                   `gorm:"column:quantity_before;not null"`
	QuantityAfter      int                   `gorm:"column:quantity_after;not null"`
	Reason             *string               `gorm:"column:reason"`
	Reference          *string               `gorm:"column:reference"`
	DeviceType         *string               `gorm:"column:device_type"`
	DeviceInfo         *string               `gorm:"column:device_info"`
	UserID             *int64                `gorm:"column:user_id"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (VariantInventoryLog) TableName() string {
	return "variant_inventory_logs"
}
