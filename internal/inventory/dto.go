package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

// RecordDTO is the product-level record payload returned to clients.
type RecordDTO struct {
	ID                int64      `json:"id"`
	UUID              uuid.UUID  `json:"uuid"`
	ProductID         int64      `json:"product_id"`
	ProductName       string     `json:"product_name,omitempty"`
	Quantity          int        `json:"quantity"`
	ReservedQuantity  int        `json:"reserved_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	LowStockThreshold int        `json:"low_stock_threshold"`
	ReorderPoint      int        `json:"reorder_point"`
	Location          string     `json:"location"`
	TrackInventory    bool       `json:"track_inventory"`
	AllowBackorder    bool       `json:"allow_backorder"`
	IsInStock         bool       `json:"is_in_stock"`
	IsLowStock        bool       `json:"is_low_stock"`
	LastScannedAt     *time.Time `json:"last_scanned_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewRecordDTO builds the payload from the persisted record.
func NewRecordDTO(inv *models.Inventory) *RecordDTO {
	dto := &RecordDTO{
		ID:                inv.ID,
		UUID:              inv.UUID,
		ProductID:         inv.ProductID,
		Quantity:          inv.Quantity,
		ReservedQuantity:  inv.ReservedQuantity,
		AvailableQuantity: inv.AvailableQuantity(),
		LowStockThreshold: inv.LowStockThreshold,
		ReorderPoint:      inv.ReorderPoint,
		Location:          inv.Location,
		TrackInventory:    inv.TrackInventory,
		AllowBackorder:    inv.AllowBackorder,
		IsInStock:         inv.IsInStock(),
		IsLowStock:        inv.IsLowStock(),
		LastScannedAt:     inv.LastScannedAt,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	if inv.Product != nil {
		dto.ProductName = inv.Product.Name
	}
	return dto
}

// VariantRecordDTO is the variant-level record payload.
type VariantRecordDTO struct {
	ID                int64     `json:"id"`
	UUID              uuid.UUID `json:"uuid"`
	VariantID         int64     `json:"variant_id"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	ReorderPoint      int       `json:"reorder_point"`
	Location          string    `json:"location"`
	TrackInventory    bool      `json:"track_inventory"`
	AllowBackorder    bool      `json:"allow_backorder"`
	IsInStock         bool      `json:"is_in_stock"`
	IsLowStock        bool      `json:"is_low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewVariantRecordDTO builds the payload from the persisted record.
func NewVariantRecordDTO(inv *models.VariantInventory) *VariantRecordDTO {
	return &VariantRecordDTO{
		ID:                inv.ID,
		UUID:              inv.UUID,
		VariantID:         inv.VariantID,
		Quantity:          inv.Quantity,
		ReservedQuantity:  inv.ReservedQuantity,
		AvailableQuantity: inv.AvailableQuantity(),
		LowStockThreshold: inv.LowStockThreshold,
		ReorderPoint:      inv.ReorderPoint,
		Location:          inv.Location,
		TrackInventory:    inv.TrackInventory,
		AllowBackorder:    inv.AllowBackorder,
		IsInStock:         inv.IsInStock(),
		IsLowStock:        inv.IsLowStock(),
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// LogDTO is one ledger row, shared by product and variant histories.
type LogDTO struct {
	ID             int64                 `json:"id"`
	UUID           uuid.UUID             `json:"uuid"`
	Action         enums.InventoryAction `json:"action"`
	QuantityChange int                   `json:"quantity_change"`
	QuantityBefore int                   `json:"quantity_before"`
	QuantityAfter  int                   `json:"quantity_after"`
	Reason         *string               `json:"reason,omitempty"`
	Reference      *string               `json:"reference,omitempty"`
	DeviceType     *string               `json:"device_type,omitempty"`
	UserID         *int64                `json:"user_id,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// NewLogDTO builds the payload from a product ledger row.
func NewLogDTO(log models.InventoryLog) LogDTO {
	return LogDTO{
		ID:             log.ID,
		UUID:           log.UUID,
		Action:         log.Action,
		QuantityChange: log.QuantityChange,
		QuantityBefore: log.QuantityBefore,
		QuantityAfter:  log.QuantityAfter,
		Reason:         log.Reason,
		Reference:      log.Reference,
		DeviceType:     log.DeviceType,
		UserID:         log.UserID,
		CreatedAt:      log.CreatedAt,
	}
}

// NewVariantLogDTO builds the payload from a variant ledger row.
func NewVariantLogDTO(log models.VariantInventoryLog) LogDTO {
	return LogDTO{
		ID:             log.ID,
		UUID:           log.UUID,
		Action:         log.Action,
		QuantityChange: log.QuantityChange,
		QuantityBefore: log.QuantityBefore,
		QuantityAfter:  log.QuantityAfter,
		Reason:         log.Reason,
		Reference:      log.Reference,
		DeviceType:     log.DeviceType,
		UserID:         log.UserID,
		CreatedAt:      log.CreatedAt,
	}
}

// ScanResult is the response for one applied scan.
type ScanResult struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	ProductID        int64     `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ProductSKU       string    `json:"product_sku"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Change           int       `json:"change"`
	IsInStock        bool      `json:"is_in_stock"`
	IsLowStock       bool      `json:"is_low_stock"`
	Timestamp        time.Time `json:"timestamp"`
}

// ScanError is one failed entry in a bulk scan.
type ScanError struct {
	Barcode   string `json:"barcode,omitempty"`
	ProductID *int64 `json:"product_id,omitempty"`
	Error     string `json:"error"`
}

// BulkScanResult aggregates a bulk scan. Failures never abort the batch.
type BulkScanResult struct {
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Results      []ScanResult `json:"results"`
	Errors       []ScanError  `json:"errors"`
}

// StatsDTO is the stock-state summary across the catalog.
type StatsDTO struct {
	TotalProducts int64 `json:"total_products"`
	InStock       int64 `json:"in_stock"`
	OutOfStock    int64 `json:"out_of_stock"`
	LowStock      int64 `json:"low_stock"`
}
