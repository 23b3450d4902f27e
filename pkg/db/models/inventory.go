package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is the product-level stock record. Exactly one row per product,
// created alongside it. reserved_quantity is a reservation hook that nothing
// increments yet; available quantity still subtracts it.
type Inventory struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UUID              uuid.UUID  `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_inventories_uuid"`
	ProductID         int64      `gorm:"column:product_id;not null;uniqueIndex:ux_inventories_product_id"`
	Quantity          int        `gorm:"column:quantity;not null;default:0"`
	ReservedQuantity  int        `gorm:"column:reserved_quantity;not null;default:0"`
	LowStockThreshold int        `gorm:"column:low_stock_threshold;not null;default:5"`
	ReorderPoint      int        `gorm:"column:reorder_point;not null;default:10"`
	Location          string     `gorm:"column:location;not null;default:'main'"`
	TrackInventory    bool       `gorm:"column:track_inventory;not null;default:true"`
	AllowBackorder    bool       `gorm:"column:allow_backorder;not null;default:false"`
	LastScannedAt     *time.Time `gorm:"column:last_scanned_at"`
	Product           *Product   `gorm:"foreignKey:ProductID"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// AvailableQuantity is quantity minus reservations, unclamped. A negative
// value means the product is oversold against reservations.
func (i Inventory) AvailableQuantity() int {
	return i.Quantity - i.ReservedQuantity
}

func (i Inventory) IsInStock() bool {
	return i.AvailableQuantity() > 0
}

func (i Inventory) IsLowStock() bool {
	return i.AvailableQuantity() <= i.LowStockThreshold
}

// VariantInventory is the variant-level stock record. Variant scans do not
// stamp a last-scanned time; only the product-level record tracks that.
type VariantInventory struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UUID              uuid.UUID `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_variant_inventories_uuid"`
	VariantID         int64     `gorm:"column:variant_id;not null;uniqueIndex:ux_variant_inventories_variant_id"`
	Quantity          int       `gorm:"column:quantity;not null;default:0"`
	ReservedQuantity  int       `gorm:"column:reserved_quantity;not null;default:0"`
	LowStockThreshold int       `gorm:"column:low_stock_threshold;not null;default:5"`
	ReorderPoint      int       `gorm:"column:reorder_point;not null;default:10"`
	Location          string    `gorm:"column:location;not null;default:'main'"`
	TrackInventory    bool      `gorm:"column:track_inventory;not null;default:true"`
	AllowBackorder    bool      `gorm:"column:allow_backorder;not null;default:false"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AvailableQuantity is quantity minus reservations, clamped at zero. Unlike
// the product-level record this never reports a negative number.
func (v VariantInventory) AvailableQuantity() int {
	if available := v.Quantity - v.ReservedQuantity; available > 0 {
		return available
	}
	return 0
}

func (v VariantInventory) IsInStock() bool {
	return v.AvailableQuantity() > 0
}

func (v VariantInventory) IsLowStock() bool {
	return v.AvailableQuantity() <= v.LowStockThreshold
}
