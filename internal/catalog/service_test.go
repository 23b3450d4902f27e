package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox"
	"github.com/speedcraftlabs/gearstock-backend/pkg/pagination"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestCatalogService(t *testing.T, gdb *gorm.DB) Service {
	t.Helper()

	events := outbox.NewService(outbox.NewRepository(gdb), nil)
	inv, err := inventory.NewService(inventory.NewRepository(gdb), testTxRunner{db: gdb}, events, nil)
	require.NoError(t, err)
	svc, err := NewService(NewRepository(gdb), testTxRunner{db: gdb}, inv, events)
	require.NoError(t, err)
	return svc
}

func outboxRows(t *testing.T, gdb *gorm.DB, eventType enums.OutboxEventType) []models.OutboxEvent {
	t.Helper()

	var rows []models.OutboxEvent
	require.NoError(t, gdb.Where("event_type = ?", eventType).Order("created_at ASC").Find(&rows).Error)
	return rows
}

func TestServiceCreateProduct_generatesCodes(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:            "LED Light Bar",
		InitialQuantity: 7,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), dto.ID)
	assert.Equal(t, "SPC-000001", dto.SKU)
	require.NotNil(t, dto.Barcode)
	assert.Equal(t, "SPC000000001", *dto.Barcode)
	require.NotNil(t, dto.QRCode)
	assert.Equal(t, "SPCPRODUCT:1", *dto.QRCode)
	assert.Equal(t, "led-light-bar", dto.Slug)
	assert.True(t, dto.IsActive)

	require.NotNil(t, dto.Inventory)
	assert.Equal(t, 7, dto.Inventory.Quantity)
	assert.Equal(t, 7, dto.Inventory.AvailableQuantity)
	assert.True(t, dto.Inventory.IsInStock)

	// The starting quantity is not an adjustment, so the ledger stays empty.
	var logCount int64
	require.NoError(t, gdb.Model(&models.InventoryLog{}).Count(&logCount).Error)
	assert.Zero(t, logCount)

	events := outboxRows(t, gdb, enums.EventProductCreated)
	require.Len(t, events, 1)
	assert.Equal(t, enums.AggregateProduct, events[0].AggregateType)
	assert.Equal(t, dto.UUID, events[0].AggregateID)
}

func TestServiceCreateProduct_explicitCodesKept(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	sku := "CUSTOM-1"
	code := "4006381333931"
	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Dash Cam",
		SKU:      &sku,
		Barcode:  &code,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-1", dto.SKU)
	require.NotNil(t, dto.Barcode)
	assert.Equal(t, "4006381333931", *dto.Barcode)
	require.NotNil(t, dto.QRCode)
	assert.Equal(t, "SPCPRODUCT:1", *dto.QRCode)
}

func TestServiceCreateProduct_slugDeduped(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	first, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	second, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, "tow-hook", first.Slug)
	assert.Equal(t, "tow-hook-1", second.Slug)
	assert.Equal(t, "SPC-000002", second.SKU)
}

func TestServiceCreateProduct_duplicateCodesConflict(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	sku := "CUSTOM-1"
	code := "4006381333931"
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Dash Cam",
		SKU:      &sku,
		Barcode:  &code,
		IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", SKU: &sku})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "Product with this SKU already exists", typed.Message())

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", Barcode: &code})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "Product with this barcode already exists", typed.Message())

	// Neither failed attempt left a row behind.
	var count int64
	require.NoError(t, gdb.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestServiceCreateProduct_validation(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "   "})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Winch", InitialQuantity: -1})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateVariant_firstInheritsProduct(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	price := decimal.RequireFromString("49.99")
	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:            "LED Light Bar",
		Price:           &price,
		InitialQuantity: 10,
		IsActive:        true,
	})
	require.NoError(t, err)

	dto, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{
		Name:     "Standard",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, product.SKU, dto.SKU)
	require.NotNil(t, dto.Barcode)
	assert.Equal(t, *product.Barcode, *dto.Barcode)
	assert.True(t, dto.IsDefault)
	require.NotNil(t, dto.Price)
	assert.True(t, price.Equal(*dto.Price))
	require.NotNil(t, dto.Inventory)
	assert.Equal(t, 10, dto.Inventory.Quantity)
	require.NotNil(t, dto.Options)
	assert.Empty(t, dto.Options)

	events := outboxRows(t, gdb, enums.EventVariantCreated)
	require.Len(t, events, 1)
	assert.Equal(t, enums.AggregateVariant, events[0].AggregateType)
	assert.Equal(t, dto.UUID, events[0].AggregateID)
}

func TestServiceCreateVariant_secondGeneratesCodes(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:            "LED Light Bar",
		InitialQuantity: 10,
		IsActive:        true,
	})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Standard", IsActive: true})
	require.NoError(t, err)

	dto, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{
		Name:            "Amber Lens",
		Options:         map[string]string{"lens": "amber"},
		InitialQuantity: 4,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SPC-000001-amber-lens", dto.SKU)
	require.NotNil(t, dto.Barcode)
	assert.Equal(t, "SPCV000001002", *dto.Barcode)
	assert.False(t, dto.IsDefault)
	assert.Nil(t, dto.Price)
	require.NotNil(t, dto.Inventory)
	assert.Equal(t, 4, dto.Inventory.Quantity)
	assert.Equal(t, map[string]string{"lens": "amber"}, dto.Options)
}

func TestServiceCreateVariant_explicitSKUStillInheritsPrices(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	price := decimal.RequireFromString("19.50")
	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:            "Wheel Hub Kit",
		Price:           &price,
		InitialQuantity: 6,
		IsActive:        true,
	})
	require.NoError(t, err)

	sku := "HUB-CUSTOM"
	dto, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{
		Name:            "Base",
		SKU:             &sku,
		InitialQuantity: 2,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "HUB-CUSTOM", dto.SKU)
	require.NotNil(t, dto.Barcode)
	assert.Equal(t, "SPCV000001001", *dto.Barcode)
	assert.False(t, dto.IsDefault)
	require.NotNil(t, dto.Price)
	assert.True(t, price.Equal(*dto.Price))
	require.NotNil(t, dto.Inventory)
	assert.Equal(t, 2, dto.Inventory.Quantity)
}

func TestServiceCreateVariant_defaultMovesToNewVariant(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	first, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Black", IsActive: true})
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{
		Name:      "Silver",
		IsDefault: true,
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reloaded, err := svc.GetVariant(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestServiceCreateVariant_duplicateSKURollsBack(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "LED Light Bar", IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Standard", IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Amber Lens", IsActive: true})
	require.NoError(t, err)

	// Same name slugs to the same generated SKU.
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Amber Lens", IsActive: true})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "Variant with this SKU already exists", typed.Message())

	var variantCount, invCount int64
	require.NoError(t, gdb.Model(&models.ProductVariant{}).Count(&variantCount).Error)
	require.NoError(t, gdb.Model(&models.VariantInventory{}).Count(&invCount).Error)
	assert.Equal(t, int64(2), variantCount)
	assert.Equal(t, int64(2), invCount)
	assert.Len(t, outboxRows(t, gdb, enums.EventVariantCreated), 2)
}

func TestServiceCreateVariant_productNotFound(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	_, err := svc.CreateVariant(context.Background(), 999, CreateVariantInput{Name: "Black"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found", typed.Message())
}

func TestServiceUpdateProduct_renameRegeneratesSlug(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	other, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Dash Cam", IsActive: true})
	require.NoError(t, err)

	name := "Tow Hook"
	updated, err := svc.UpdateProduct(context.Background(), other.ID, UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Tow Hook", updated.Name)
	assert.Equal(t, "tow-hook-1", updated.Slug)
}

func TestServiceUpdateProduct_deactivatePersists(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	reloaded, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestServiceUpdateProduct_notFound(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	name := "Winch"
	_, err := svc.UpdateProduct(context.Background(), 999, UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteProduct_cascades(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:            "LED Light Bar",
		InitialQuantity: 3,
		IsActive:        true,
	})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Standard", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))

	_, err = svc.GetProduct(context.Background(), product.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	var variantCount, invCount, variantInvCount int64
	require.NoError(t, gdb.Model(&models.ProductVariant{}).Count(&variantCount).Error)
	require.NoError(t, gdb.Model(&models.Inventory{}).Count(&invCount).Error)
	require.NoError(t, gdb.Model(&models.VariantInventory{}).Count(&variantInvCount).Error)
	assert.Zero(t, variantCount)
	assert.Zero(t, invCount)
	assert.Zero(t, variantInvCount)

	err = svc.DeleteProduct(context.Background(), product.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceGetProductBySlug(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Roof Rack", IsActive: true})
	require.NoError(t, err)

	dto, err := svc.GetProductBySlug(context.Background(), "roof-rack")
	require.NoError(t, err)
	assert.Equal(t, product.ID, dto.ID)

	_, err = svc.GetProductBySlug(context.Background(), "no-such-slug")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found", typed.Message())
}

func TestServiceListProducts_cursorWalk(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	for _, name := range []string{"Tow Hook", "Dash Cam", "Roof Rack"} {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: name, IsActive: true})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	page, err := svc.ListProducts(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Roof Rack", page.Products[0].Name)
	assert.Equal(t, "Dash Cam", page.Products[1].Name)
	require.NotEmpty(t, page.NextCursor)

	rest, err := svc.ListProducts(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Limit: 2, Cursor: page.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, rest.Products, 1)
	assert.Equal(t, "Tow Hook", rest.Products[0].Name)
	assert.Empty(t, rest.NextCursor)
}

func TestServiceUpdateVariant_defaultAndPatch(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	first, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Black", IsActive: true})
	require.NoError(t, err)
	second, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Silver", IsActive: true})
	require.NoError(t, err)
	require.False(t, second.IsDefault)

	makeDefault := true
	name := "Silver Coated"
	opts := map[string]string{"finish": "silver"}
	updated, err := svc.UpdateVariant(context.Background(), second.ID, UpdateVariantInput{
		Name:      &name,
		Options:   &opts,
		IsDefault: &makeDefault,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, "Silver Coated", updated.Name)
	assert.Equal(t, opts, updated.Options)

	reloaded, err := svc.GetVariant(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestServiceUpdateVariant_notFound(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	name := "Silver"
	_, err := svc.UpdateVariant(context.Background(), 999, UpdateVariantInput{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Variant not found", typed.Message())
}

func TestServiceListVariants_displayOrder(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Black", SortOrder: 2, IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Silver", SortOrder: 1, IsActive: true})
	require.NoError(t, err)

	variants, err := svc.ListVariants(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "Silver", variants[0].Name)
	assert.Equal(t, "Black", variants[1].Name)
	require.NotNil(t, variants[0].Inventory)
}

func TestServiceDeleteVariant(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := newTestCatalogService(t, gdb)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Tow Hook", IsActive: true})
	require.NoError(t, err)
	variant, err := svc.CreateVariant(context.Background(), product.ID, CreateVariantInput{Name: "Black", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVariant(context.Background(), variant.ID))

	_, err = svc.GetVariant(context.Background(), variant.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	var invCount int64
	require.NoError(t, gdb.Model(&models.VariantInventory{}).Count(&invCount).Error)
	assert.Zero(t, invCount)

	err = svc.DeleteVariant(context.Background(), variant.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
