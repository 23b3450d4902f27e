package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestOrdersService(t *testing.T, gdb *gorm.DB) Service {
	t.Helper()

	events := outbox.NewService(outbox.NewRepository(gdb), nil)
	invRepo := inventory.NewRepository(gdb)
	invSvc, err := inventory.NewService(invRepo, testTxRunner{db: gdb}, events, nil)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(gdb), testTxRunner{db: gdb}, events, invSvc, invRepo)
	require.NoError(t, err)
	return svc
}

func seedStockedProduct(t *testing.T, gdb *gorm.DB, name, sku string, code *string, price *decimal.Decimal, qty int) *models.Product {
	t.Helper()

	product := &models.Product{
		UUID:     uuid.New(),
		Name:     name,
		Slug:     strings.ToLower(sku),
		SKU:      sku,
		Barcode:  code,
		Price:    price,
		IsActive: true,
	}
	require.NoError(t, gdb.Create(product).Error)
	require.NoError(t, gdb.Create(&models.Inventory{
		UUID:              uuid.New(),
		ProductID:         product.ID,
		Quantity:          qty,
		LowStockThreshold: 5,
		ReorderPoint:      10,
		Location:          "main",
		TrackInventory:    true,
	}).Error)
	return product
}

func seedBareProduct(t *testing.T, gdb *gorm.DB, name, sku string) *models.Product {
	t.Helper()

	product := &models.Product{
		UUID:     uuid.New(),
		Name:     name,
		Slug:     strings.ToLower(sku),
		SKU:      sku,
		IsActive: true,
	}
	require.NoError(t, gdb.Create(product).Error)
	return product
}

func seedStockedVariant(t *testing.T, gdb *gorm.DB, productID int64, name, sku string, code *string, price *decimal.Decimal, isDefault bool, qty int) *models.ProductVariant {
	t.Helper()

	variant := &models.ProductVariant{
		UUID:      uuid.New(),
		ProductID: productID,
		Name:      name,
		SKU:       sku,
		Barcode:   code,
		Price:     price,
		IsActive:  true,
		IsDefault: isDefault,
	}
	require.NoError(t, gdb.Create(variant).Error)
	require.NoError(t, gdb.Create(&models.VariantInventory{
		UUID:              uuid.New(),
		VariantID:         variant.ID,
		Quantity:          qty,
		LowStockThreshold: 5,
		ReorderPoint:      10,
		Location:          "main",
		TrackInventory:    true,
	}).Error)
	return variant
}

func productQuantity(t *testing.T, gdb *gorm.DB, productID int64) int {
	t.Helper()

	var inv models.Inventory
	require.NoError(t, gdb.Where("product_id = ?", productID).First(&inv).Error)
	return inv.Quantity
}

func variantQuantity(t *testing.T, gdb *gorm.DB, variantID int64) int {
	t.Helper()

	var inv models.VariantInventory
	require.NoError(t, gdb.Where("variant_id = ?", variantID).First(&inv).Error)
	return inv.Quantity
}

func orderOutLogs(t *testing.T, gdb *gorm.DB) []models.InventoryLog {
	t.Helper()

	var rows []models.InventoryLog
	require.NoError(t, gdb.Where("action = ?", enums.InventoryActionOrderOut).Order("id ASC").Find(&rows).Error)
	return rows
}

func outboxRows(t *testing.T, gdb *gorm.DB, eventType enums.OutboxEventType) []models.OutboxEvent {
	t.Helper()

	var rows []models.OutboxEvent
	require.NoError(t, gdb.Where("event_type = ?", eventType).Order("created_at ASC").Find(&rows).Error)
	return rows
}

func tableCount(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestServiceCreateOrder_deductsStockAndComputesTotals(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	price := decimal.RequireFromString("25.50")
	product := seedStockedProduct(t, gdb, "Tow Hook", "SPC-000001", nil, &price, 10)
	userID := int64(7)

	dto, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{
			{
				ProductID:   &product.ID,
				ProductName: "Tow Hook",
				UnitPrice:   price,
				Quantity:    3,
				Discount:    decimal.RequireFromString("1.50"),
			},
			{
				ProductName: "Sticker Pack",
				UnitPrice:   decimal.NewFromInt(2),
				Quantity:    2,
			},
		},
		DiscountAmount: decimal.NewFromInt(5),
		ShippingCost:   decimal.NewFromInt(10),
		TaxAmount:      decimal.NewFromInt(3),
		ShippingInfo:   map[string]any{"city": "Reno"},
		UserID:         &userID,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dto.OrderNumber, "ORD-"), dto.OrderNumber)
	assert.Equal(t, enums.OrderStatusPending, dto.Status)
	// 25.50*3 - 1.50 = 75.00 plus the 2.00*2 sticker line.
	assert.True(t, dto.Subtotal.Equal(decimal.NewFromInt(79)), dto.Subtotal.String())
	assert.True(t, dto.Total.Equal(decimal.NewFromInt(87)), dto.Total.String())
	require.Len(t, dto.Items, 2)
	assert.True(t, dto.Items[0].Total.Equal(decimal.NewFromInt(75)))
	assert.True(t, dto.Items[1].Total.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "Reno", dto.ShippingInfo["city"])
	require.NotNil(t, dto.CreatedByID)
	assert.Equal(t, userID, *dto.CreatedByID)

	assert.Equal(t, "INV-"+strings.TrimPrefix(dto.OrderNumber, "ORD-"), dto.InvoiceData["invoice_number"])
	assert.Equal(t, time.Now().Format("2006-01-02"), dto.InvoiceData["invoice_date"])

	assert.Equal(t, 7, productQuantity(t, gdb, product.ID))

	logs := orderOutLogs(t, gdb)
	require.Len(t, logs, 1)
	assert.Equal(t, -3, logs[0].QuantityChange)
	assert.Equal(t, 10, logs[0].QuantityBefore)
	assert.Equal(t, 7, logs[0].QuantityAfter)
	require.NotNil(t, logs[0].Reason)
	assert.Equal(t, "Order "+dto.OrderNumber, *logs[0].Reason)
	require.NotNil(t, logs[0].Reference)
	assert.Equal(t, dto.OrderNumber, *logs[0].Reference)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, userID, *logs[0].UserID)

	events := outboxRows(t, gdb, enums.EventOrderCreated)
	require.Len(t, events, 1)
	assert.Equal(t, enums.AggregateOrder, events[0].AggregateType)
	assert.Equal(t, dto.UUID, events[0].AggregateID)
}

func TestServiceCreateOrder_insufficientStockRollsBackOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	rack := seedStockedProduct(t, gdb, "Roof Rack", "SPC-000001", nil, nil, 10)
	strap := seedStockedProduct(t, gdb, "Winch Strap", "SPC-000002", nil, nil, 1)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: &rack.ID, ProductName: "Roof Rack", UnitPrice: decimal.NewFromInt(80), Quantity: 2},
			{ProductID: &strap.ID, ProductName: "Winch Strap", UnitPrice: decimal.NewFromInt(15), Quantity: 5},
		},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Insufficient stock for Winch Strap. Available: 1, Requested: 5", typed.Message())

	// The first line's deduction and the order itself roll back together.
	assert.Zero(t, tableCount(t, gdb, &models.Order{}))
	assert.Zero(t, tableCount(t, gdb, &models.OrderItem{}))
	assert.Equal(t, 10, productQuantity(t, gdb, rack.ID))
	assert.Equal(t, 1, productQuantity(t, gdb, strap.ID))
	assert.Empty(t, orderOutLogs(t, gdb))
	assert.Empty(t, outboxRows(t, gdb, enums.EventOrderCreated))
}

func TestServiceCreateOrder_variantLineDeductsBothRecords(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedStockedProduct(t, gdb, "LED Light Bar", "SPC-000001", nil, nil, 10)
	code := "SPCV000001001"
	variant := seedStockedVariant(t, gdb, product.ID, "Amber Lens", "SPC-000001-amber", &code, nil, true, 5)
	variantName := "Amber Lens"

	dto, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{
			{
				ProductID:   &product.ID,
				VariantID:   &variant.ID,
				ProductName: "LED Light Bar",
				VariantName: &variantName,
				UnitPrice:   decimal.NewFromInt(40),
				Quantity:    2,
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.NotNil(t, dto.Items[0].VariantID)
	assert.Equal(t, variant.ID, *dto.Items[0].VariantID)

	// Both records move; only the product ledger records the movement.
	assert.Equal(t, 8, productQuantity(t, gdb, product.ID))
	assert.Equal(t, 3, variantQuantity(t, gdb, variant.ID))
	assert.Len(t, orderOutLogs(t, gdb), 1)

	var variantLogCount int64
	require.NoError(t, gdb.Model(&models.VariantInventoryLog{}).Count(&variantLogCount).Error)
	assert.Zero(t, variantLogCount)
}

func TestServiceCreateOrder_variantInsufficientRollsBack(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedStockedProduct(t, gdb, "LED Light Bar", "SPC-000001", nil, nil, 10)
	variant := seedStockedVariant(t, gdb, product.ID, "Amber Lens", "SPC-000001-amber", nil, nil, true, 1)
	variantName := "Amber Lens"

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{
			{
				ProductID:   &product.ID,
				VariantID:   &variant.ID,
				ProductName: "LED Light Bar",
				VariantName: &variantName,
				UnitPrice:   decimal.NewFromInt(40),
				Quantity:    3,
			},
		},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Insufficient stock for variant Amber Lens. Available: 1, Requested: 3", typed.Message())

	// The product-level deduction that already succeeded rolls back too.
	assert.Equal(t, 10, productQuantity(t, gdb, product.ID))
	assert.Equal(t, 1, variantQuantity(t, gdb, variant.ID))
	assert.Zero(t, tableCount(t, gdb, &models.Order{}))
}

func TestServiceCreateOrder_untrackedProductSkipsDeduction(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedBareProduct(t, gdb, "Decal Sheet", "SPC-000001")

	dto, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: &product.ID, ProductName: "Decal Sheet", UnitPrice: decimal.NewFromInt(5), Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, dto.Status)
	assert.Empty(t, orderOutLogs(t, gdb))
}

func TestServiceCreateOrder_validation(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{{ProductName: "  ", UnitPrice: decimal.NewFromInt(5), Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "product_name is required on every item", typed.Message())

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		Items: []OrderItemInput{{ProductName: "Tow Hook", UnitPrice: decimal.NewFromInt(5), Quantity: 0}},
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "quantity must be at least 1", typed.Message())

	assert.Zero(t, tableCount(t, gdb, &models.Order{}))
}

func TestServiceGetOrder_notFound(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	_, err := svc.GetOrder(context.Background(), 404)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Order not found", typed.Message())
}

func TestServiceListOrders_pagesWithMeta(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	base := time.Date(2025, 8, 10, 8, 0, 0, 0, time.UTC)
	seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.NewFromInt(10), base)
	seedOrder(t, repo, "ORD-20250810-080100", enums.OrderStatusShipped, decimal.NewFromInt(20), base.Add(time.Minute))
	seedOrder(t, repo, "ORD-20250810-080200", enums.OrderStatusPending, decimal.NewFromInt(30), base.Add(2*time.Minute))

	result, err := svc.ListOrders(context.Background(), ListOrdersInput{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, "ORD-20250810-080200", result.Orders[0].OrderNumber)
	assert.Equal(t, 1, result.Meta.Page)
	assert.Equal(t, 2, result.Meta.PerPage)
	assert.Equal(t, int64(3), result.Meta.Total)
	assert.Equal(t, 2, result.Meta.TotalPages)

	result, err = svc.ListOrders(context.Background(), ListOrdersInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "ORD-20250810-080000", result.Orders[0].OrderNumber)

	// Out-of-range inputs snap back to the defaults.
	result, err = svc.ListOrders(context.Background(), ListOrdersInput{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Meta.Page)
	assert.Equal(t, DefaultPageSize, result.Meta.PerPage)

	result, err = svc.ListOrders(context.Background(), ListOrdersInput{Page: 1, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, result.Meta.PerPage)

	shipped := enums.OrderStatusShipped
	result, err = svc.ListOrders(context.Background(), ListOrdersInput{Status: &shipped, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "ORD-20250810-080100", result.Orders[0].OrderNumber)
	assert.Equal(t, 1, result.Meta.TotalPages)
}

func TestServiceUpdateStatus_stampsShippedOnce(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.NewFromInt(10), time.Now())

	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, "shipped", nil))
	dto, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, dto.Status)
	require.NotNil(t, dto.ShippedAt)
	firstStamp := *dto.ShippedAt

	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, "processing", nil))
	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, "shipped", nil))

	dto, err = svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, dto.ShippedAt)
	assert.True(t, dto.ShippedAt.Equal(firstStamp), "shipped_at must not move on a repeat transition")

	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, "delivered", nil))
	dto, err = svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, dto.DeliveredAt)

	events := outboxRows(t, gdb, enums.EventOrderStatusChanged)
	assert.Len(t, events, 4)
}

func TestServiceUpdateStatus_rejectsUnknownStatus(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.NewFromInt(10), time.Now())

	err := svc.UpdateStatus(context.Background(), order.ID, "teleported", nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Invalid status. Must be one of: pending, processing, packed, shipped, delivered, cancelled", typed.Message())

	err = svc.UpdateStatus(context.Background(), 9999, "shipped", nil)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Order not found", typed.Message())
}

func TestServiceUpdateOrder_patchRepricesAndStamps(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.NewFromInt(50), time.Now())

	discount := decimal.NewFromInt(5)
	shipping := decimal.NewFromInt(10)
	tax := decimal.RequireFromString("2.50")
	notes := "fragile"
	dto, err := svc.UpdateOrder(context.Background(), order.ID, UpdateOrderInput{
		DiscountAmount: &discount,
		ShippingCost:   &shipping,
		TaxAmount:      &tax,
		InternalNotes:  &notes,
		ShippingInfo:   &map[string]any{"city": "Boise"},
	})
	require.NoError(t, err)
	assert.True(t, dto.Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, dto.Total.Equal(decimal.RequireFromString("57.50")), dto.Total.String())
	require.NotNil(t, dto.InternalNotes)
	assert.Equal(t, "fragile", *dto.InternalNotes)
	assert.Equal(t, "Boise", dto.ShippingInfo["city"])
	assert.Empty(t, outboxRows(t, gdb, enums.EventOrderStatusChanged))

	delivered := "delivered"
	dto, err = svc.UpdateOrder(context.Background(), order.ID, UpdateOrderInput{Status: &delivered})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, dto.Status)
	require.NotNil(t, dto.DeliveredAt)
	firstStamp := *dto.DeliveredAt

	dto, err = svc.UpdateOrder(context.Background(), order.ID, UpdateOrderInput{Status: &delivered})
	require.NoError(t, err)
	require.NotNil(t, dto.DeliveredAt)
	assert.True(t, dto.DeliveredAt.Equal(firstStamp))

	assert.Len(t, outboxRows(t, gdb, enums.EventOrderStatusChanged), 2)

	bogus := "bogus"
	_, err = svc.UpdateOrder(context.Background(), order.ID, UpdateOrderInput{Status: &bogus})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.UpdateOrder(context.Background(), 9999, UpdateOrderInput{InternalNotes: &notes})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.NewFromInt(10), time.Now())
	require.NoError(t, repo.CreateOrderItems(context.Background(), []models.OrderItem{
		{OrderID: order.ID, ProductName: "Tow Hook", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Total: decimal.NewFromInt(10)},
	}))

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))

	_, err := svc.GetOrder(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.DeleteOrder(context.Background(), order.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	assert.Zero(t, tableCount(t, gdb, &models.OrderItem{}))
}

func TestServiceOrderStats(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	now := time.Now()
	seedOrder(t, repo, "ORD-20250810-080000", enums.OrderStatusPending, decimal.RequireFromString("10.50"), now)
	seedOrder(t, repo, "ORD-20250809-080000", enums.OrderStatusShipped, decimal.NewFromInt(20), now.AddDate(0, 0, -1))
	seedOrder(t, repo, "ORD-20250810-080100", enums.OrderStatusCancelled, decimal.NewFromInt(99), now)

	stats, err := svc.OrderStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.TodayOrders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("30.50")), stats.TotalRevenue.String())

	// Every status appears, zeros included.
	assert.Len(t, stats.StatusCounts, 6)
	assert.Equal(t, int64(1), stats.StatusCounts[enums.OrderStatusPending])
	assert.Equal(t, int64(1), stats.StatusCounts[enums.OrderStatusShipped])
	assert.Equal(t, int64(1), stats.StatusCounts[enums.OrderStatusCancelled])
	assert.Equal(t, int64(0), stats.StatusCounts[enums.OrderStatusPacked])
	assert.Equal(t, int64(0), stats.StatusCounts[enums.OrderStatusProcessing])
	assert.Equal(t, int64(0), stats.StatusCounts[enums.OrderStatusDelivered])
}

func TestServiceScanForOrder_productBarcode(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	code := "4006381333931"
	price := decimal.NewFromInt(30)
	product := seedStockedProduct(t, gdb, "Dash Cam", "SPC-000001", &code, &price, 4)

	res, err := svc.ScanForOrder(context.Background(), OrderScanInput{Barcode: code})
	require.NoError(t, err)
	assert.Equal(t, product.ID, res.ProductID)
	assert.Nil(t, res.VariantID)
	assert.Equal(t, "Dash Cam", res.ProductName)
	assert.Equal(t, "SPC-000001", res.ProductSKU)
	assert.True(t, res.UnitPrice.Equal(price))
	assert.Equal(t, 4, res.AvailableQuantity)
}

func TestServiceScanForOrder_defaultVariantPreferred(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	code := "4006381333931"
	price := decimal.NewFromInt(45)
	product := seedStockedProduct(t, gdb, "LED Light Bar", "SPC-000001", &code, &price, 9)
	seedStockedVariant(t, gdb, product.ID, "Clear Lens", "SPC-000001-clear", nil, nil, false, 7)
	amber := seedStockedVariant(t, gdb, product.ID, "Amber Lens", "SPC-000001-amber", nil, nil, true, 2)

	// Scanning the product's own barcode lands on the default variant, and the
	// missing variant price falls back to the product's.
	res, err := svc.ScanForOrder(context.Background(), OrderScanInput{Barcode: code})
	require.NoError(t, err)
	require.NotNil(t, res.VariantID)
	assert.Equal(t, amber.ID, *res.VariantID)
	require.NotNil(t, res.VariantName)
	assert.Equal(t, "Amber Lens", *res.VariantName)
	assert.Equal(t, "SPC-000001-amber", res.ProductSKU)
	assert.True(t, res.UnitPrice.Equal(price))
	assert.Equal(t, 2, res.AvailableQuantity)
}

func TestServiceScanForOrder_missingRecordReportsZero(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedBareProduct(t, gdb, "Decal Sheet", "SPC-000001")

	res, err := svc.ScanForOrder(context.Background(), OrderScanInput{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, res.AvailableQuantity)
	assert.True(t, res.UnitPrice.IsZero())
}

func TestServiceScanForOrder_inactiveProductRejected(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedBareProduct(t, gdb, "Retired Winch", "SPC-000001")
	require.NoError(t, gdb.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error)

	_, err := svc.ScanForOrder(context.Background(), OrderScanInput{ProductID: &product.ID})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeProductInactive, typed.Code())
	assert.Equal(t, "Product 'Retired Winch' is inactive and cannot be added to orders", typed.Message())

	_, err = svc.ScanForOrder(context.Background(), OrderScanInput{Barcode: "nope-0000"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product or variant not found", typed.Message())
}

func TestServiceCreateDirectOrder_noStockMovement(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)

	product := seedStockedProduct(t, gdb, "Phone Mount", "SPC-000001", nil, nil, 9)
	brand := "RoadRig"
	price := decimal.RequireFromString("15.00")
	orderDate := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	dto, err := svc.CreateDirectOrder(context.Background(), CreateDirectOrderInput{
		Items: []DirectOrderItemInput{
			{ProductID: &product.ID, ProductName: "Phone Mount", Quantity: 5, UnitPrice: &price},
			{ProductName: "Cable Kit", Quantity: 1},
		},
		CustomerInfo: map[string]any{"name": "Dana"},
		BrandName:    &brand,
		OrderDate:    &orderDate,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dto.OrderNumber, "DO-"), dto.OrderNumber)
	assert.Equal(t, enums.DirectOrderStatusPending, dto.Status)
	assert.Equal(t, "Dana", dto.CustomerInfo["name"])
	assert.True(t, dto.OrderDate.Equal(orderDate))
	require.Len(t, dto.Items, 2)
	require.NotNil(t, dto.Items[0].UnitPrice)
	assert.True(t, dto.Items[0].UnitPrice.Equal(price))
	assert.Nil(t, dto.Items[1].UnitPrice)

	// Direct orders are bookkeeping only.
	assert.Equal(t, 9, productQuantity(t, gdb, product.ID))
	assert.Empty(t, orderOutLogs(t, gdb))

	events := outboxRows(t, gdb, enums.EventDirectOrderCreated)
	require.Len(t, events, 1)
	assert.Equal(t, enums.AggregateDirectOrder, events[0].AggregateType)
	assert.Empty(t, outboxRows(t, gdb, enums.EventOrderCreated))
}

func TestServiceUpdateDirectOrderStatus_closedSetExcludesPacked(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedDirectOrder(t, repo, "DO-20250801-090000", enums.DirectOrderStatusPending, time.Now())

	err := svc.UpdateDirectOrderStatus(context.Background(), order.ID, "packed", nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Invalid status. Must be one of: pending, processing, shipped, delivered, cancelled", typed.Message())

	require.NoError(t, svc.UpdateDirectOrderStatus(context.Background(), order.ID, "shipped", nil))
	dto, err := svc.GetDirectOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.DirectOrderStatusShipped, dto.Status)
	require.NotNil(t, dto.ShippedAt)
	firstStamp := *dto.ShippedAt

	require.NoError(t, svc.UpdateDirectOrderStatus(context.Background(), order.ID, "processing", nil))
	require.NoError(t, svc.UpdateDirectOrderStatus(context.Background(), order.ID, "shipped", nil))
	dto, err = svc.GetDirectOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, dto.ShippedAt)
	assert.True(t, dto.ShippedAt.Equal(firstStamp))

	err = svc.UpdateDirectOrderStatus(context.Background(), 9999, "shipped", nil)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Direct order not found", typed.Message())
}

func TestServiceUpdateDirectOrder_patch(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedDirectOrder(t, repo, "DO-20250801-090000", enums.DirectOrderStatusPending, time.Now())

	tracking := "1Z999AA10123456784"
	carrier := "UPS"
	delivered := "delivered"
	dto, err := svc.UpdateDirectOrder(context.Background(), order.ID, UpdateDirectOrderInput{
		TrackingNumber: &tracking,
		Carrier:        &carrier,
		Status:         &delivered,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.TrackingNumber)
	assert.Equal(t, tracking, *dto.TrackingNumber)
	require.NotNil(t, dto.Carrier)
	assert.Equal(t, "UPS", *dto.Carrier)
	assert.Equal(t, enums.DirectOrderStatusDelivered, dto.Status)
	require.NotNil(t, dto.DeliveredAt)

	_, err = svc.UpdateDirectOrder(context.Background(), 9999, UpdateDirectOrderInput{Carrier: &carrier})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDirectOrderStats(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	now := time.Now()
	seedDirectOrder(t, repo, "DO-20250810-090000", enums.DirectOrderStatusPending, now)
	seedDirectOrder(t, repo, "DO-20250809-090000", enums.DirectOrderStatusShipped, now.AddDate(0, 0, -1))

	stats, err := svc.DirectOrderStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.TodayOrders)
	assert.Len(t, stats.StatusCounts, 5)
	assert.Equal(t, int64(1), stats.StatusCounts[enums.DirectOrderStatusPending])
	assert.Equal(t, int64(1), stats.StatusCounts[enums.DirectOrderStatusShipped])
	assert.Equal(t, int64(0), stats.StatusCounts[enums.DirectOrderStatusCancelled])
}

func TestServiceDeleteDirectOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	svc := newTestOrdersService(t, gdb)
	repo := NewRepository(gdb)

	order := seedDirectOrder(t, repo, "DO-20250801-090000", enums.DirectOrderStatusPending, time.Now())

	require.NoError(t, svc.DeleteDirectOrder(context.Background(), order.ID))

	err := svc.DeleteDirectOrder(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Direct order not found", typed.Message())
}
