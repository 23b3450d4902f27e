package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/pkg/types"
)

// Product is the canonical catalog listing. Inventory hangs off it 1:1 and is
// created in the same transaction as the product itself.
type Product struct {
	ID             int64            `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID        `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_products_uuid"`
	Name           string           `gorm:"column:name;not null"`
	Slug           string           `gorm:"column:slug;not null;uniqueIndex:ux_products_slug"`
	Description    *string          `gorm:"column:description"`
	SKU            string           `gorm:"column:sku;not null;uniqueIndex:ux_products_sku"`
	Barcode        *string          `gorm:"column:barcode;uniqueIndex:ux_products_barcode"`
	QRCode         *string          `gorm:"column:qr_code"`
	Price          *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	CostPrice      *decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2)"`
	CompareAtPrice *decimal.Decimal `gorm:"column:compare_at_price;type:numeric(12,2)"`
	IsActive       bool             `gorm:"column:is_active;not null"`
	IsFeatured     bool             `gorm:"column:is_featured;not null;default:false"`
	Inventory      *Inventory       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants       []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// HasVariants reports whether any variant rows are loaded on the product.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// DefaultVariant returns the variant flagged as default, falling back to the
// first one by sort order. Variants must be preloaded ordered by sort_order.
func (p Product) DefaultVariant() *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}

// ProductVariant is a purchasable variation of a product with its own SKU,
// barcode and inventory record.
type ProductVariant struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UUID           uuid.UUID         `gorm:"column:uuid;type:uuid;not null;default:gen_random_uuid();uniqueIndex:ux_product_variants_uuid"`
	ProductID      int64             `gorm:"column:product_id;not null;index"`
	Name           string            `gorm:"column:name;not null"`
	SKU            string            `gorm:"column:sku;not null;uniqueIndex:ux_product_variants_sku"`
	Barcode        *string           `gorm:"column:barcode;uniqueIndex:ux_product_variants_barcode"`
	Options        types.StringMap   `gorm:"column:options;type:jsonb;serializer:json"`
	Price          *decimal.Decimal  `gorm:"column:price;type:numeric(12,2)"`
	CostPrice      *decimal.Decimal  `gorm:"column:cost_price;type:numeric(12,2)"`
	CompareAtPrice *decimal.Decimal  `gorm:"column:compare_at_price;type:numeric(12,2)"`
	IsActive       bool              `gorm:"column:is_active;not null"`
	IsDefault      bool              `gorm:"column:is_default;not null;default:false"`
	SortOrder      int               `gorm:"column:sort_order;not null;default:0"`
	Product        *Product          `gorm:"foreignKey:ProductID"`
	Inventory      *VariantInventory `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
