package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/pagination"
)

// Repository wires together product and variant persistence.
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

// FindProduct loads the product row without associations.
func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductWithInventory loads the product with its stock record, which
// variant creation reads for quantity inheritance.
func (r *Repository) FindProductWithInventory(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail fetches a product with its record and ordered variants.
func (r *Repository) GetProductDetail(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.productDetailQuery(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetailBySlug is GetProductDetail keyed by the URL slug.
func (r *Repository) GetProductDetailBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.productDetailQuery(ctx).First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) productDetailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Inventory").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Variants.Inventory")
}

// ListSlugs returns every product slug, optionally excluding one product so
// an update can keep its own slug.
func (r *Repository) ListSlugs(ctx context.Context, excludeID *int64) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var slugs []string
	if err := query.Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.UUID == uuid.Nil {
		product.UUID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists the full product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by id. Inventory, variants and their
// records go with it through the FK cascades.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ProductSKUExists reports whether any product already carries the SKU.
func (r *Repository) ProductSKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("sku = ?", sku).
		Count(&count).
		Error
	return count > 0, err
}

// ProductBarcodeExists reports whether any product already carries the barcode.
func (r *Repository) ProductBarcodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("barcode = ?", code).
		Count(&count).
		Error
	return count > 0, err
}

// FindVariant loads the variant row without associations.
func (r *Repository) FindVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// GetVariantDetail fetches a variant with its stock record.
func (r *Repository) GetVariantDetail(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		First(&variant, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListVariants returns the product's variants in display order.
func (r *Repository) ListVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	var rows []models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&rows).
		Error
	return rows, err
}

// CountVariants returns how many variants the product already has.
func (r *Repository) CountVariants(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("product_id = ?", productID).
		Count(&count).
		Error
	return count, err
}

// CreateVariant inserts a new variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if variant.UUID == uuid.Nil {
		variant.UUID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant persists the full variant row.
func (r *Repository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes a variant by id.
func (r *Repository) DeleteVariant(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductVariant{}).Error
}

// VariantSKUExists reports whether any variant already carries the SKU.
func (r *Repository) VariantSKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("sku = ?", sku).
		Count(&count).
		Error
	return count > 0, err
}

// VariantBarcodeExists reports whether any variant already carries the barcode.
func (r *Repository) VariantBarcodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("barcode = ?", code).
		Count(&count).
		Error
	return count > 0, err
}

// ClearDefaultVariants unsets the default flag on the product's variants,
// optionally sparing one row. Default exclusivity is enforced here rather
// than with a partial index so the flag can move in a single transaction.
func (r *Repository) ClearDefaultVariants(ctx context.Context, productID int64, exceptID *int64) error {
	query := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("product_id = ?", productID)
	if exceptID != nil {
		query = query.Where("id <> ?", *exceptID)
	}
	return query.Update("is_default", false).Error
}

type productListQuery struct {
	Pagination pagination.Params
	Filters    ProductListFilters
}

// ListProductSummaries pages through the catalog newest-first with a
// keyset cursor, joining each product's stock count in one pass.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.uuid",
			"p.name",
			"p.slug",
			"p.sku",
			"p.barcode",
			"p.price",
			"p.compare_at_price",
			"p.is_active",
			"p.is_featured",
			"p.created_at",
			"p.updated_at",
			"COALESCE(i.quantity, 0) AS quantity",
		}, ", ")).
		Joins("LEFT JOIN inventories i ON i.product_id = p.id")

	filter := query.Filters
	if filter.IsActive != nil {
		qb = qb.Where("p.is_active = ?", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		qb = qb.Where("p.is_featured = ?", *filter.IsFeatured)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			qb = qb.Where("COALESCE(i.quantity, 0) > 0")
		} else {
			qb = qb.Where("COALESCE(i.quantity, 0) = 0")
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.sku) LIKE ? OR LOWER(p.barcode) LIKE ?)", pattern, pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID             int64
	UUID           uuid.UUID
	Name           string
	Slug           string
	SKU            string
	Barcode        sql.NullString
	Price          decimal.NullDecimal
	CompareAtPrice decimal.NullDecimal
	IsActive       bool
	IsFeatured     bool
	Quantity       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:                r.ID,
		UUID:              r.UUID,
		Name:              r.Name,
		Slug:              r.Slug,
		SKU:               r.SKU,
		Barcode:           nullStringPtr(r.Barcode),
		Price:             nullDecimalPtr(r.Price),
		CompareAtPrice:    nullDecimalPtr(r.CompareAtPrice),
		InventoryQuantity: r.Quantity,
		IsInStock:         r.Quantity > 0,
		IsActive:          r.IsActive,
		IsFeatured:        r.IsFeatured,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func nullDecimalPtr(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	v := value.Decimal
	return &v
}
