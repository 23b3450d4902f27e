package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/barcode"
	dbpkg "github.com/speedcraftlabs/gearstock-backend/pkg/db"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
	"github.com/speedcraftlabs/gearstock-backend/pkg/pagination"
)

// tempSKU holds the unique slot while the row is inserted; the real code is
// derived from the assigned id before the transaction commits.
const tempSKU = "TEMP"

// Service exposes product and variant management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID int64) (*ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID int64) error

	CreateVariant(ctx context.Context, productID int64, input CreateVariantInput) (*VariantDTO, error)
	GetVariant(ctx context.Context, variantID int64) (*VariantDTO, error)
	ListVariants(ctx context.Context, productID int64) ([]VariantDTO, error)
	UpdateVariant(ctx context.Context, variantID int64, input UpdateVariantInput) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, variantID int64) error
}

// CreateProductInput holds the validated payload to create a product. SKU and
// Barcode override the generated SPC codes when set.
type CreateProductInput struct {
	Name            string
	Description     *string
	SKU             *string
	Barcode         *string
	Price           *decimal.Decimal
	CostPrice       *decimal.Decimal
	CompareAtPrice  *decimal.Decimal
	InitialQuantity int
	IsActive        bool
	IsFeatured      bool
	UserID          *int64
}

// UpdateProductInput holds optional mutation values. Nil fields are left
// alone; a new name regenerates the slug.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	CostPrice      *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	IsActive       *bool
	IsFeatured     *bool
}

// ListProductsInput captures filter and cursor inputs for the catalog list.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
}

// CreateVariantInput holds the validated payload to create a variant.
type CreateVariantInput struct {
	Name            string
	SKU             *string
	Barcode         *string
	Options         map[string]string
	Price           *decimal.Decimal
	CostPrice       *decimal.Decimal
	CompareAtPrice  *decimal.Decimal
	IsActive        bool
	IsDefault       bool
	SortOrder       int
	InitialQuantity int
	UserID          *int64
}

// UpdateVariantInput holds optional mutation values for a variant.
type UpdateVariantInput struct {
	Name           *string
	SKU            *string
	Barcode        *string
	Options        *map[string]string
	Price          *decimal.Decimal
	CostPrice      *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	IsActive       *bool
	IsDefault      *bool
	SortOrder      *int
}

type dbClient interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type inventoryInitializer interface {
	InitializeProductInventory(ctx context.Context, tx *gorm.DB, productID int64, quantity int) (*models.Inventory, error)
	InitializeVariantInventory(ctx context.Context, tx *gorm.DB, variantID int64, quantity int) (*models.VariantInventory, error)
}

// service implements the catalog service.
type service struct {
	repo      *Repository
	dbClient  dbClient
	inventory inventoryInitializer
	events    eventEmitter
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient dbClient, inventory inventoryInitializer, events eventEmitter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory initializer required")
	}
	if events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		inventory: inventory,
		events:    events,
	}, nil
}

// CreateProduct inserts the product, derives its SPC codes from the assigned
// id, and creates the stock record in the same transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.InitialQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial_quantity must be non-negative")
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.SKU != nil {
			exists, err := txRepo.ProductSKUExists(ctx, *input.SKU)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product sku")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeConflict, "Product with this SKU already exists")
			}
		}
		if input.Barcode != nil {
			exists, err := txRepo.ProductBarcodeExists(ctx, *input.Barcode)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product barcode")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeConflict, "Product with this barcode already exists")
			}
		}

		slugs, err := txRepo.ListSlugs(ctx, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product slugs")
		}

		product := &models.Product{
			Name:           name,
			Slug:           uniqueSlug(name, slugs),
			Description:    input.Description,
			SKU:            tempSKU,
			Barcode:        input.Barcode,
			Price:          input.Price,
			CostPrice:      input.CostPrice,
			CompareAtPrice: input.CompareAtPrice,
			IsActive:       input.IsActive,
			IsFeatured:     input.IsFeatured,
		}
		if input.SKU != nil {
			product.SKU = *input.SKU
		}
		if _, err := txRepo.CreateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		// Codes embed the surrogate id, which exists only after the insert.
		if input.SKU == nil {
			product.SKU = barcode.ProductSKU(product.ID)
		}
		if input.Barcode == nil {
			code := barcode.ProductBarcode(product.ID)
			product.Barcode = &code
		}
		qr := barcode.ProductQR(product.ID)
		product.QRCode = &qr
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: assign product codes")
		}

		record, err := s.inventory.InitializeProductInventory(ctx, tx, product.ID, input.InitialQuantity)
		if err != nil {
			return err
		}

		createdID = product.ID
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventProductCreated,
			AggregateType: enums.AggregateProduct,
			AggregateID:   product.UUID,
			Actor:         actorFor(input.UserID),
			Version:       1,
			Data: payloads.ProductCreatedEvent{
				ProductID:       product.ID,
				ProductUUID:     product.UUID,
				Name:            product.Name,
				Slug:            product.Slug,
				SKU:             product.SKU,
				Barcode:         product.Barcode,
				InitialQuantity: record.Quantity,
			},
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	product, err := s.repo.GetProductDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(product), nil
}

// GetProduct returns the product with its record and variants.
func (s *service) GetProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	product, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(product), nil
}

// GetProductBySlug returns the product addressed by its URL slug.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.GetProductDetailBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(product), nil
}

// ListProducts pages through catalog summaries newest-first.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

// UpdateProduct patches the product. A changed name regenerates the slug,
// deduped against every other product.
func (s *service) UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
			}
			slugs, err := txRepo.ListSlugs(ctx, &product.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product slugs")
			}
			product.Name = name
			product.Slug = uniqueSlug(name, slugs)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.Price != nil {
			product.Price = input.Price
		}
		if input.CostPrice != nil {
			product.CostPrice = input.CostPrice
		}
		if input.CompareAtPrice != nil {
			product.CompareAtPrice = input.CompareAtPrice
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}

		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the product. The FK cascades take the stock record,
// variants, their records and every ledger row with it.
func (s *service) DeleteProduct(ctx context.Context, productID int64) error {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// CreateVariant inserts a variant under the product. The first variant
// represents the original configuration: it inherits the product's codes,
// prices and stock count, and is always the default.
func (s *service) CreateVariant(ctx context.Context, productID int64, input CreateVariantInput) (*VariantDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.InitialQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial_quantity must be non-negative")
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProductWithInventory(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		count, err := txRepo.CountVariants(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
		}
		isFirst := count == 0

		var (
			sku        string
			code       *string
			initialQty int
			isDefault  bool
		)
		if isFirst && (input.IsDefault || input.SKU == nil) {
			sku = product.SKU
			if input.SKU != nil {
				sku = *input.SKU
			}
			code = product.Barcode
			if input.Barcode != nil {
				code = input.Barcode
			}
			initialQty = input.InitialQuantity
			if initialQty == 0 && product.Inventory != nil {
				initialQty = product.Inventory.Quantity
			}
			isDefault = true
		} else {
			sku = fmt.Sprintf("%s-%s", product.SKU, slugify(name))
			if input.SKU != nil {
				sku = *input.SKU
			}
			generated := barcode.VariantBarcode(productID, int(count)+1)
			code = &generated
			if input.Barcode != nil {
				code = input.Barcode
			}
			initialQty = input.InitialQuantity
			isDefault = input.IsDefault
		}

		// The first variant may share the product's own codes; anything else
		// must not collide with an existing variant.
		if !(isFirst && sku == product.SKU) {
			exists, err := txRepo.VariantSKUExists(ctx, sku)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check variant sku")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeConflict, "Variant with this SKU already exists")
			}
		}
		if code != nil {
			inherited := isFirst && product.Barcode != nil && *code == *product.Barcode
			if !inherited {
				exists, err := txRepo.VariantBarcodeExists(ctx, *code)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check variant barcode")
				}
				if exists {
					return pkgerrors.New(pkgerrors.CodeConflict, "Variant with this barcode already exists")
				}
			}
		}

		if isDefault {
			if err := txRepo.ClearDefaultVariants(ctx, productID, nil); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear default variants")
			}
		}

		variant := &models.ProductVariant{
			ProductID:      productID,
			Name:           name,
			SKU:            sku,
			Barcode:        code,
			Options:        input.Options,
			Price:          input.Price,
			CostPrice:      input.CostPrice,
			CompareAtPrice: input.CompareAtPrice,
			IsActive:       input.IsActive,
			IsDefault:      isDefault,
			SortOrder:      input.SortOrder,
		}
		if isFirst {
			if variant.Price == nil {
				variant.Price = product.Price
			}
			if variant.CostPrice == nil {
				variant.CostPrice = product.CostPrice
			}
			if variant.CompareAtPrice == nil {
				variant.CompareAtPrice = product.CompareAtPrice
			}
		}
		if _, err := txRepo.CreateVariant(ctx, variant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
		}

		record, err := s.inventory.InitializeVariantInventory(ctx, tx, variant.ID, initialQty)
		if err != nil {
			return err
		}

		createdID = variant.ID
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventVariantCreated,
			AggregateType: enums.AggregateVariant,
			AggregateID:   variant.UUID,
			Actor:         actorFor(input.UserID),
			Version:       1,
			Data: payloads.VariantCreatedEvent{
				ProductID:       productID,
				VariantID:       variant.ID,
				VariantUUID:     variant.UUID,
				Name:            variant.Name,
				SKU:             variant.SKU,
				Barcode:         variant.Barcode,
				IsDefault:       variant.IsDefault,
				InitialQuantity: record.Quantity,
			},
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variant")
	}

	variant, err := s.repo.GetVariantDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant detail")
	}
	return NewVariantDTO(variant), nil
}

// GetVariant returns the variant with its stock record.
func (s *service) GetVariant(ctx context.Context, variantID int64) (*VariantDTO, error) {
	variant, err := s.repo.GetVariantDetail(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant detail")
	}
	return NewVariantDTO(variant), nil
}

// ListVariants returns the product's variants in display order.
func (s *service) ListVariants(ctx context.Context, productID int64) ([]VariantDTO, error) {
	rows, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}
	dtos := make([]VariantDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewVariantDTO(&rows[i])
	}
	return dtos, nil
}

// UpdateVariant patches the variant, keeping at most one default per product.
func (s *service) UpdateVariant(ctx context.Context, variantID int64, input UpdateVariantInput) (*VariantDTO, error) {
	variant, err := s.repo.FindVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.IsDefault != nil && *input.IsDefault {
			if err := txRepo.ClearDefaultVariants(ctx, variant.ProductID, &variant.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear default variants")
			}
		}

		applyVariantUpdate(variant, input)
		if _, err := txRepo.UpdateVariant(ctx, variant); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_product_variants_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "Variant with this SKU already exists")
			}
			if dbpkg.IsUniqueViolation(err, "ux_product_variants_barcode") {
				return pkgerrors.New(pkgerrors.CodeConflict, "Variant with this barcode already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant")
	}

	updated, err := s.repo.GetVariantDetail(ctx, variantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant detail")
	}
	return NewVariantDTO(updated), nil
}

// DeleteVariant removes the variant; its record and ledger cascade with it.
func (s *service) DeleteVariant(ctx context.Context, variantID int64) error {
	if _, err := s.repo.FindVariant(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Variant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if err := s.repo.DeleteVariant(ctx, variantID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variant")
	}
	return nil
}

func applyVariantUpdate(variant *models.ProductVariant, input UpdateVariantInput) {
	if input.Name != nil {
		variant.Name = strings.TrimSpace(*input.Name)
	}
	if input.SKU != nil {
		variant.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Barcode != nil {
		variant.Barcode = input.Barcode
	}
	if input.Options != nil {
		variant.Options = *input.Options
	}
	if input.Price != nil {
		variant.Price = input.Price
	}
	if input.CostPrice != nil {
		variant.CostPrice = input.CostPrice
	}
	if input.CompareAtPrice != nil {
		variant.CompareAtPrice = input.CompareAtPrice
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}
	if input.IsDefault != nil {
		variant.IsDefault = *input.IsDefault
	}
	if input.SortOrder != nil {
		variant.SortOrder = *input.SortOrder
	}
}

func actorFor(userID *int64) *outbox.ActorRef {
	if userID == nil {
		return nil
	}
	return &outbox.ActorRef{UserID: *userID}
}
