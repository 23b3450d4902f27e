package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
)

// ProductDTO is the full product payload returned to clients, with the stock
// record and ordered variants attached when loaded.
type ProductDTO struct {
	ID             int64             `json:"id"`
	UUID           uuid.UUID         `json:"uuid"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    *string           `json:"description,omitempty"`
	SKU            string            `json:"sku"`
	Barcode        *string           `json:"barcode,omitempty"`
	QRCode         *string           `json:"qr_code,omitempty"`
	Price          *decimal.Decimal  `json:"price,omitempty"`
	CostPrice      *decimal.Decimal  `json:"cost_price,omitempty"`
	CompareAtPrice *decimal.Decimal  `json:"compare_at_price,omitempty"`
	IsActive       bool              `json:"is_active"`
	IsFeatured     bool              `json:"is_featured"`
	Inventory      *InventoryInfoDTO `json:"inventory,omitempty"`
	Variants       []VariantDTO      `json:"variants,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// InventoryInfoDTO exposes the stock counts embedded in catalog payloads.
type InventoryInfoDTO struct {
	Quantity          int  `json:"quantity"`
	ReservedQuantity  int  `json:"reserved_quantity"`
	AvailableQuantity int  `json:"available_quantity"`
	IsInStock         bool `json:"is_in_stock"`
	IsLowStock        bool `json:"is_low_stock"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// VariantDTO is the variant payload returned to clients.
type VariantDTO struct {
	ID             int64             `json:"id"`
	UUID           uuid.UUID         `json:"uuid"`
	ProductID      int64             `json:"product_id"`
	Name           string            `json:"name"`
	SKU            string            `json:"sku"`
	Barcode        *string           `json:"barcode,omitempty"`
	Options        map[string]string `json:"options"`
	Price          *decimal.Decimal  `json:"price,omitempty"`
	CostPrice      *decimal.Decimal  `json:"cost_price,omitempty"`
	CompareAtPrice *decimal.Decimal  `json:"compare_at_price,omitempty"`
	IsActive       bool              `json:"is_active"`
	IsDefault      bool              `json:"is_default"`
	SortOrder      int               `json:"sort_order"`
	Inventory      *InventoryInfoDTO `json:"inventory,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductSummary is one row of the catalog list endpoint.
type ProductSummary struct {
	ID                int64            `json:"id"`
	UUID              uuid.UUID        `json:"uuid"`
	Name              string           `json:"name"`
	Slug              string           `json:"slug"`
	SKU               string           `json:"sku"`
	Barcode           *string          `json:"barcode,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	InventoryQuantity int              `json:"inventory_quantity"`
	IsInStock         bool             `json:"is_in_stock"`
	IsActive          bool             `json:"is_active"`
	IsFeatured        bool             `json:"is_featured"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListFilters describe the filter knobs for the catalog list endpoint.
type ProductListFilters struct {
	IsActive   *bool  `json:"is_active,omitempty"`
	IsFeatured *bool  `json:"is_featured,omitempty"`
	InStock    *bool  `json:"in_stock,omitempty"`
	Query      string `json:"q,omitempty"`
}

// ProductListResult carries one page of summaries plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		UUID:           product.UUID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		SKU:            product.SKU,
		Barcode:        product.Barcode,
		QRCode:         product.QRCode,
		Price:          product.Price,
		CostPrice:      product.CostPrice,
		CompareAtPrice: product.CompareAtPrice,
		IsActive:       product.IsActive,
		IsFeatured:     product.IsFeatured,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}

	if product.Inventory != nil {
		info := newInventoryInfo(*product.Inventory)
		dto.Inventory = &info
	}

	if len(product.Variants) > 0 {
		dto.Variants = make([]VariantDTO, len(product.Variants))
		for i := range product.Variants {
			dto.Variants[i] = *NewVariantDTO(&product.Variants[i])
		}
	}

	return dto
}

// NewVariantDTO builds a DTO from the persisted variant.
func NewVariantDTO(variant *models.ProductVariant) *VariantDTO {
	dto := &VariantDTO{
		ID:             variant.ID,
		UUID:           variant.UUID,
		ProductID:      variant.ProductID,
		Name:           variant.Name,
		SKU:            variant.SKU,
		Barcode:        variant.Barcode,
		Options:        variant.Options,
		Price:          variant.Price,
		CostPrice:      variant.CostPrice,
		CompareAtPrice: variant.CompareAtPrice,
		IsActive:       variant.IsActive,
		IsDefault:      variant.IsDefault,
		SortOrder:      variant.SortOrder,
		CreatedAt:      variant.CreatedAt,
		UpdatedAt:      variant.UpdatedAt,
	}
	if dto.Options == nil {
		dto.Options = map[string]string{}
	}

	if variant.Inventory != nil {
		info := newVariantInventoryInfo(*variant.Inventory)
		dto.Inventory = &info
	}

	return dto
}

func newInventoryInfo(inv models.Inventory) InventoryInfoDTO {
	return InventoryInfoDTO{
		Quantity:          inv.Quantity,
		ReservedQuantity:  inv.ReservedQuantity,
		AvailableQuantity: inv.AvailableQuantity(),
		IsInStock:         inv.IsInStock(),
		IsLowStock:        inv.IsLowStock(),
		LowStockThreshold: inv.LowStockThreshold,
	}
}

func newVariantInventoryInfo(inv models.VariantInventory) InventoryInfoDTO {
	return InventoryInfoDTO{
		Quantity:          inv.Quantity,
		ReservedQuantity:  inv.ReservedQuantity,
		AvailableQuantity: inv.AvailableQuantity(),
		IsInStock:         inv.IsInStock(),
		IsLowStock:        inv.IsLowStock(),
		LowStockThreshold: inv.LowStockThreshold,
	}
}
