package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
)

const (
	// DefaultLogLimit bounds ledger reads when the caller does not say.
	DefaultLogLimit = 50
	// MaxLogLimit is the hard ceiling for a single ledger page.
	MaxLogLimit = 100
)

// Filter narrows inventory listings by stock state. OutOfStock wins when both
// flags are set.
type Filter struct {
	LowStock   bool
	OutOfStock bool
}

// StockCounts summarizes the catalog by stock state. LowStock excludes
// zero-quantity records, which count as OutOfStock instead.
type StockCounts struct {
	TotalProducts int64
	InStock       int64
	OutOfStock    int64
	LowStock      int64
}

// Repository wires together inventory record and ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByProductID loads the product-level record.
func (r *Repository) FindByProductID(ctx context.Context, productID int64) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.WithContext(ctx).First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByVariantID loads the variant-level record.
func (r *Repository) FindByVariantID(ctx context.Context, variantID int64) (*models.VariantInventory, error) {
	var inv models.VariantInventory
	if err := r.db.WithContext(ctx).First(&inv, "variant_id = ?", variantID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindVariant loads a bare variant row.
func (r *Repository) FindVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindVariantByBarcode matches a variant by its exact barcode, with its record
// and parent product attached for scan messages.
func (r *Repository) FindVariantByBarcode(ctx context.Context, code string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Preload("Product").
		First(&variant, "barcode = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindProductForScan loads a product with everything a scan resolution needs:
// its own record plus variants in sort order with their records.
func (r *Repository) FindProductForScan(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Variants.Inventory").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByBarcode is FindProductForScan keyed by the raw barcode column.
func (r *Repository) FindProductByBarcode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Variants.Inventory").
		First(&product, "barcode = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProductRecord inserts a product-level record.
func (r *Repository) CreateProductRecord(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateVariantRecord inserts a variant-level record.
func (r *Repository) CreateVariantRecord(ctx context.Context, inv *models.VariantInventory) (*models.VariantInventory, error) {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInventory writes the full product-level record back.
func (r *Repository) UpdateInventory(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := r.db.WithContext(ctx).Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateVariantInventory writes the full variant-level record back.
func (r *Repository) UpdateVariantInventory(ctx context.Context, inv *models.VariantInventory) (*models.VariantInventory, error) {
	if err := r.db.WithContext(ctx).Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// AppendProductLog inserts one product ledger row. Rows are append-only.
func (r *Repository) AppendProductLog(ctx context.Context, log *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// AppendVariantLog inserts one variant ledger row.
func (r *Repository) AppendVariantLog(ctx context.Context, log *models.VariantInventoryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListProductLogs returns the newest ledger rows for a product record.
func (r *Repository) ListProductLogs(ctx context.Context, inventoryID int64, limit int) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(normalizeLogLimit(limit)).
		Find(&logs).Error
	return logs, err
}

// ListVariantLogs returns the newest ledger rows for a variant record.
func (r *Repository) ListVariantLogs(ctx context.Context, variantInventoryID int64, limit int) ([]models.VariantInventoryLog, error) {
	var logs []models.VariantInventoryLog
	err := r.db.WithContext(ctx).
		Where("variant_inventory_id = ?", variantInventoryID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(normalizeLogLimit(limit)).
		Find(&logs).Error
	return logs, err
}

// List returns product-level records with their products, optionally narrowed
// to a stock state.
func (r *Repository) List(ctx context.Context, filter Filter) ([]models.Inventory, error) {
	query := r.db.WithContext(ctx).Model(&models.Inventory{}).Preload("Product")
	switch {
	case filter.OutOfStock:
		query = query.Where("quantity = 0")
	case filter.LowStock:
		query = query.Where("quantity > 0 AND quantity <= low_stock_threshold")
	}

	var rows []models.Inventory
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountsByStockState tallies the stats payload in four counts.
func (r *Repository) CountsByStockState(ctx context.Context) (*StockCounts, error) {
	var counts StockCounts
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&counts.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Inventory{}).
		Where("quantity > 0").Count(&counts.InStock).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Inventory{}).
		Where("quantity = 0").Count(&counts.OutOfStock).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Inventory{}).
		Where("quantity > 0 AND quantity <= low_stock_threshold").Count(&counts.LowStock).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

func normalizeLogLimit(limit int) int {
	if limit <= 0 {
		return DefaultLogLimit
	}
	if limit > MaxLogLimit {
		return MaxLogLimit
	}
	return limit
}
