package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	dbpkg "github.com/speedcraftlabs/gearstock-backend/pkg/db"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
	"github.com/speedcraftlabs/gearstock-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// inventoryDeducter is the slice of the inventory service order creation
// needs: product deduction with its order_out ledger row, and the unlogged
// variant deduction.
type inventoryDeducter interface {
	DeductForOrder(ctx context.Context, tx *gorm.DB, productID int64, itemName string, count int, orderNumber string, userID *int64) error
	DeductVariantForOrder(ctx context.Context, tx *gorm.DB, variantID int64, itemName string, count int) error
}

// scanResolver is the lookup shared with the scan endpoints, so an order-scan
// device resolves barcodes exactly the way a stock-scan device does.
type scanResolver interface {
	Resolve(ctx context.Context, code string, productID *int64) (*inventory.Resolution, error)
}

// Service exposes order and direct order operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, orderID int64) (*OrderDTO, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
	UpdateOrder(ctx context.Context, orderID int64, input UpdateOrderInput) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID int64, status string, userID *int64) error
	DeleteOrder(ctx context.Context, orderID int64) error
	OrderStats(ctx context.Context) (*OrderStatsDTO, error)
	ScanForOrder(ctx context.Context, input OrderScanInput) (*OrderScanResult, error)

	CreateDirectOrder(ctx context.Context, input CreateDirectOrderInput) (*DirectOrderDTO, error)
	GetDirectOrder(ctx context.Context, orderID int64) (*DirectOrderDTO, error)
	ListDirectOrders(ctx context.Context, input ListDirectOrdersInput) (*DirectOrderListResult, error)
	UpdateDirectOrder(ctx context.Context, orderID int64, input UpdateDirectOrderInput) (*DirectOrderDTO, error)
	UpdateDirectOrderStatus(ctx context.Context, orderID int64, status string, userID *int64) error
	DeleteDirectOrder(ctx context.Context, orderID int64) error
	DirectOrderStats(ctx context.Context) (*DirectOrderStatsDTO, error)
}

// OrderItemInput is one requested order line. Product details arrive as a
// snapshot from the client so the line survives later catalog edits.
type OrderItemInput struct {
	ProductID      *int64
	VariantID      *int64
	ProductName    string
	ProductSKU     *string
	ProductBarcode *string
	VariantName    *string
	VariantOptions map[string]string
	UnitPrice      decimal.Decimal
	Quantity       int
	Discount       decimal.Decimal
	ExtraData      map[string]any
}

// CreateOrderInput carries the validated payload for order creation.
type CreateOrderInput struct {
	Items           []OrderItemInput
	DiscountAmount  decimal.Decimal
	ShippingCost    decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingInfo    map[string]any
	BillingInfo     map[string]any
	ShippingDetails map[string]any
	PaymentInfo     map[string]any
	InvoiceData     map[string]any
	ExtraData       map[string]any
	InternalNotes   *string
	CustomerNotes   *string
	UserID          *int64
}

// ListOrdersInput pages the order list. Status is matched verbatim; an unknown
// value simply matches nothing.
type ListOrdersInput struct {
	Status   *enums.OrderStatus
	Page     int
	PageSize int
}

// UpdateOrderInput patches an order. Nil fields are left alone. A status value
// goes through the same closed-set validation and stamping as UpdateStatus.
type UpdateOrderInput struct {
	Status          *string
	ShippingInfo    *map[string]any
	BillingInfo     *map[string]any
	ShippingDetails *map[string]any
	PaymentInfo     *map[string]any
	InvoiceData     *map[string]any
	ExtraData       *map[string]any
	DiscountAmount  *decimal.Decimal
	ShippingCost    *decimal.Decimal
	TaxAmount       *decimal.Decimal
	InternalNotes   *string
	CustomerNotes   *string
	UserID          *int64
}

// OrderScanInput addresses a product or variant for the order-scan lookup.
type OrderScanInput struct {
	Barcode   string
	ProductID *int64
}

// DirectOrderItemInput is one line of a brand-fulfilled order.
type DirectOrderItemInput struct {
	ProductID      *int64
	VariantID      *int64
	ProductName    string
	ProductSKU     *string
	VariantName    *string
	VariantOptions map[string]string
	Quantity       int
	UnitPrice      *decimal.Decimal
	ExtraData      map[string]any
}

// CreateDirectOrderInput carries the validated payload for direct order
// creation.
type CreateDirectOrderInput struct {
	Items          []DirectOrderItemInput
	CustomerInfo   map[string]any
	BrandName      *string
	BrandID        *int64
	TrackingNumber *string
	Carrier        *string
	Notes          *string
	ExtraData      map[string]any
	OrderDate      *time.Time
	UserID         *int64
}

// ListDirectOrdersInput pages the direct order list.
type ListDirectOrdersInput struct {
	Status   *enums.DirectOrderStatus
	Page     int
	PageSize int
}

// UpdateDirectOrderInput patches a direct order.
type UpdateDirectOrderInput struct {
	Status         *string
	CustomerInfo   *map[string]any
	BrandName      *string
	BrandID        *int64
	TrackingNumber *string
	Carrier        *string
	Notes          *string
	ExtraData      *map[string]any
	UserID         *int64
}

type service struct {
	repo      Repository
	tx        txRunner
	outbox    outboxPublisher
	inventory inventoryDeducter
	resolver  scanResolver
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, inventory inventoryDeducter, resolver scanResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory deducter required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("scan resolver required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		outbox:    outbox,
		inventory: inventory,
		resolver:  resolver,
	}, nil
}

// CreateOrder writes the header, its lines and every stock deduction in one
// transaction: any insufficient line rolls the whole order back.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	for _, line := range input.Items {
		if strings.TrimSpace(line.ProductName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name is required on every item")
		}
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}

	now := time.Now()
	number := orderNumber(now)

	subtotal := decimal.Zero
	for _, line := range input.Items {
		subtotal = subtotal.Add(lineTotal(line))
	}
	total := subtotal.Sub(input.DiscountAmount).Add(input.ShippingCost).Add(input.TaxAmount)

	invoiceData := make(map[string]any, len(input.InvoiceData)+2)
	for k, v := range input.InvoiceData {
		invoiceData[k] = v
	}
	if value, ok := invoiceData["invoice_number"]; !ok || value == nil || value == "" {
		invoiceData["invoice_number"] = fmt.Sprintf("INV-%s", strings.TrimPrefix(number, "ORD-"))
	}
	if value, ok := invoiceData["invoice_date"]; !ok || value == nil || value == "" {
		invoiceData["invoice_date"] = now.Format("2006-01-02")
	}

	var createdID int64
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.Order{
			OrderNumber:     number,
			Status:          enums.OrderStatusPending,
			Subtotal:        subtotal,
			DiscountAmount:  input.DiscountAmount,
			ShippingCost:    input.ShippingCost,
			TaxAmount:       input.TaxAmount,
			Total:           total,
			ShippingInfo:    emptyWhenNil(input.ShippingInfo),
			BillingInfo:     emptyWhenNil(input.BillingInfo),
			ShippingDetails: emptyWhenNil(input.ShippingDetails),
			PaymentInfo:     emptyWhenNil(input.PaymentInfo),
			InvoiceData:     invoiceData,
			ExtraData:       emptyWhenNil(input.ExtraData),
			InternalNotes:   input.InternalNotes,
			CustomerNotes:   input.CustomerNotes,
			CreatedByID:     input.UserID,
		}
		if _, err := txRepo.CreateOrder(ctx, order); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_orders_order_number") {
				return pkgerrors.New(pkgerrors.CodeConflict, "Order number already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		items := make([]models.OrderItem, len(input.Items))
		for i, line := range input.Items {
			options := line.VariantOptions
			if options == nil {
				options = map[string]string{}
			}
			items[i] = models.OrderItem{
				OrderID:        order.ID,
				ProductID:      line.ProductID,
				VariantID:      line.VariantID,
				ProductName:    line.ProductName,
				ProductSKU:     line.ProductSKU,
				ProductBarcode: line.ProductBarcode,
				VariantName:    line.VariantName,
				VariantOptions: options,
				UnitPrice:      line.UnitPrice,
				Quantity:       line.Quantity,
				Discount:       line.Discount,
				Total:          lineTotal(line),
				ExtraData:      emptyWhenNil(line.ExtraData),
			}
		}
		if err := txRepo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order items")
		}

		// Lines without a product reference are untracked goods and skip
		// deduction entirely. The variant deduction piggybacks on the product
		// line, mirroring how scan devices submit both ids.
		for _, line := range input.Items {
			if line.ProductID == nil {
				continue
			}
			if err := s.inventory.DeductForOrder(ctx, tx, *line.ProductID, line.ProductName, line.Quantity, number, input.UserID); err != nil {
				return err
			}
			if line.VariantID != nil {
				itemName := line.ProductName
				if line.VariantName != nil && *line.VariantName != "" {
					itemName = *line.VariantName
				}
				if err := s.inventory.DeductVariantForOrder(ctx, tx, *line.VariantID, itemName, line.Quantity); err != nil {
					return err
				}
			}
		}

		createdID = order.ID
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.UUID,
			Actor:         actorFor(input.UserID),
			Version:       1,
			Data: payloads.OrderCreatedEvent{
				OrderID:       order.ID,
				OrderUUID:     order.UUID,
				OrderNumber:   order.OrderNumber,
				Status:        order.Status,
				ItemCount:     len(items),
				SubtotalCents: subtotal.Shift(2).IntPart(),
				TotalCents:    total.Shift(2).IntPart(),
			},
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	order, err := s.repo.GetOrderDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}
	return NewOrderDTO(order), nil
}

// GetOrder returns the order with its lines.
func (s *service) GetOrder(ctx context.Context, orderID int64) (*OrderDTO, error) {
	order, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}
	return NewOrderDTO(order), nil
}

// ListOrders pages orders newest-first with an optional status filter.
func (s *service) ListOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	page, size := normalizePage(input.Page, input.PageSize)
	rows, total, err := s.repo.ListOrders(ctx, orderListQuery{
		Status: input.Status,
		Offset: (page - 1) * size,
		Limit:  size,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	summaries := make([]OrderSummaryDTO, len(rows))
	for i := range rows {
		summaries[i] = NewOrderSummaryDTO(&rows[i])
	}
	return &OrderListResult{
		Orders: summaries,
		Meta:   listMeta(page, size, total),
	}, nil
}

// UpdateOrder patches the order. Pricing patches recalculate the total from
// the stored subtotal; a status patch follows the stamp-once rule and emits
// the transition event.
func (s *service) UpdateOrder(ctx context.Context, orderID int64, input UpdateOrderInput) (*OrderDTO, error) {
	var status enums.OrderStatus
	if input.Status != nil {
		parsed, err := parseOrderStatusInput(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		previous := order.Status
		if input.Status != nil {
			applyOrderStatus(order, status, time.Now().UTC())
		}
		if input.ShippingInfo != nil {
			order.ShippingInfo = *input.ShippingInfo
		}
		if input.BillingInfo != nil {
			order.BillingInfo = *input.BillingInfo
		}
		if input.ShippingDetails != nil {
			order.ShippingDetails = *input.ShippingDetails
		}
		if input.PaymentInfo != nil {
			order.PaymentInfo = *input.PaymentInfo
		}
		if input.InvoiceData != nil {
			order.InvoiceData = *input.InvoiceData
		}
		if input.ExtraData != nil {
			order.ExtraData = *input.ExtraData
		}
		if input.InternalNotes != nil {
			order.InternalNotes = input.InternalNotes
		}
		if input.CustomerNotes != nil {
			order.CustomerNotes = input.CustomerNotes
		}

		repriced := false
		if input.DiscountAmount != nil {
			order.DiscountAmount = *input.DiscountAmount
			repriced = true
		}
		if input.ShippingCost != nil {
			order.ShippingCost = *input.ShippingCost
			repriced = true
		}
		if input.TaxAmount != nil {
			order.TaxAmount = *input.TaxAmount
			repriced = true
		}
		if repriced {
			order.Total = order.Subtotal.Sub(order.DiscountAmount).Add(order.ShippingCost).Add(order.TaxAmount)
		}

		if _, err := txRepo.UpdateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}

		if input.Status != nil {
			return s.outbox.Emit(ctx, tx, statusChangeEvent(order, previous, input.UserID))
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	updated, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}
	return NewOrderDTO(updated), nil
}

// UpdateStatus is the quick transition endpoint behind the dashboard buttons.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string, userID *int64) error {
	parsed, err := parseOrderStatusInput(status)
	if err != nil {
		return err
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		previous := order.Status
		applyOrderStatus(order, parsed, time.Now().UTC())
		if _, err := s.repo.WithTx(tx).UpdateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		return s.outbox.Emit(ctx, tx, statusChangeEvent(order, previous, userID))
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return nil
}

// DeleteOrder removes the order and its lines. Stock already deducted stays
// deducted; cancellations do not restock.
func (s *service) DeleteOrder(ctx context.Context, orderID int64) error {
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// OrderStats aggregates the dashboard counters in three queries.
func (s *service) OrderStats(ctx context.Context) (*OrderStatsDTO, error) {
	counts, total, err := s.repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	today, err := s.repo.CountOrdersSince(ctx, startOfToday())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count today's orders")
	}
	revenue, err := s.repo.SumOrderRevenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}

	statusCounts := make(map[enums.OrderStatus]int64, len(enums.ValidOrderStatuses()))
	for _, status := range enums.ValidOrderStatuses() {
		statusCounts[status] = counts[status]
	}
	return &OrderStatsDTO{
		TotalOrders:  total,
		TodayOrders:  today,
		TotalRevenue: revenue,
		StatusCounts: statusCounts,
	}, nil
}

// ScanForOrder resolves a barcode or product id into the snapshot fields an
// order line needs. Inactive products are rejected; a missing stock record
// reports zero availability instead of failing.
func (s *service) ScanForOrder(ctx context.Context, input OrderScanInput) (*OrderScanResult, error) {
	res, err := s.resolver.Resolve(ctx, input.Barcode, input.ProductID)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve scan")
	}

	product := res.Product
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeProductInactive,
			fmt.Sprintf("Product '%s' is inactive and cannot be added to orders", product.Name))
	}

	if res.TargetsVariant() {
		variant := res.Variant
		quantity := 0
		if res.VariantInv != nil {
			quantity = res.VariantInv.Quantity
		}
		price := decimal.Zero
		switch {
		case variant.Price != nil:
			price = *variant.Price
		case product.Price != nil:
			price = *product.Price
		}
		options := map[string]string(variant.Options)
		if options == nil {
			options = map[string]string{}
		}
		return &OrderScanResult{
			ProductID:         product.ID,
			VariantID:         &variant.ID,
			ProductName:       product.Name,
			ProductSKU:        variant.SKU,
			ProductBarcode:    variant.Barcode,
			VariantName:       &variant.Name,
			VariantOptions:    options,
			UnitPrice:         price,
			AvailableQuantity: quantity,
		}, nil
	}

	quantity := 0
	if res.ProductInv != nil {
		quantity = res.ProductInv.Quantity
	}
	price := decimal.Zero
	if product.Price != nil {
		price = *product.Price
	}
	return &OrderScanResult{
		ProductID:         product.ID,
		ProductName:       product.Name,
		ProductSKU:        product.SKU,
		ProductBarcode:    product.Barcode,
		VariantOptions:    map[string]string{},
		UnitPrice:         price,
		AvailableQuantity: quantity,
	}, nil
}

// CreateDirectOrder records a brand-fulfilled order. No stock moves.
func (s *service) CreateDirectOrder(ctx context.Context, input CreateDirectOrderInput) (*DirectOrderDTO, error) {
	for _, line := range input.Items {
		if strings.TrimSpace(line.ProductName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name is required on every item")
		}
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}

	number := directOrderNumber(time.Now())

	var createdID int64
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.DirectOrder{
			OrderNumber:    number,
			Status:         enums.DirectOrderStatusPending,
			CustomerInfo:   emptyWhenNil(input.CustomerInfo),
			BrandName:      input.BrandName,
			BrandID:        input.BrandID,
			TrackingNumber: input.TrackingNumber,
			Carrier:        input.Carrier,
			Notes:          input.Notes,
			ExtraData:      emptyWhenNil(input.ExtraData),
			CreatedByID:    input.UserID,
		}
		if input.OrderDate != nil {
			order.OrderDate = *input.OrderDate
		}
		if _, err := txRepo.CreateDirectOrder(ctx, order); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_direct_orders_order_number") {
				return pkgerrors.New(pkgerrors.CodeConflict, "Direct order number already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert direct order")
		}

		items := make([]models.DirectOrderItem, len(input.Items))
		for i, line := range input.Items {
			options := line.VariantOptions
			if options == nil {
				options = map[string]string{}
			}
			items[i] = models.DirectOrderItem{
				DirectOrderID:  order.ID,
				ProductID:      line.ProductID,
				VariantID:      line.VariantID,
				ProductName:    line.ProductName,
				ProductSKU:     line.ProductSKU,
				VariantName:    line.VariantName,
				VariantOptions: options,
				Quantity:       line.Quantity,
				UnitPrice:      line.UnitPrice,
				ExtraData:      emptyWhenNil(line.ExtraData),
			}
		}
		if err := txRepo.CreateDirectOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert direct order items")
		}

		createdID = order.ID
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventDirectOrderCreated,
			AggregateType: enums.AggregateDirectOrder,
			AggregateID:   order.UUID,
			Actor:         actorFor(input.UserID),
			Version:       1,
			Data: payloads.DirectOrderCreatedEvent{
				DirectOrderID:   order.ID,
				DirectOrderUUID: order.UUID,
				OrderNumber:     order.OrderNumber,
				Status:          order.Status,
				ItemCount:       len(items),
			},
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create direct order")
	}

	order, err := s.repo.GetDirectOrderDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order detail")
	}
	return NewDirectOrderDTO(order), nil
}

// GetDirectOrder returns the direct order with its lines.
func (s *service) GetDirectOrder(ctx context.Context, orderID int64) (*DirectOrderDTO, error) {
	order, err := s.repo.GetDirectOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Direct order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order detail")
	}
	return NewDirectOrderDTO(order), nil
}

// ListDirectOrders pages direct orders newest-first by business date.
func (s *service) ListDirectOrders(ctx context.Context, input ListDirectOrdersInput) (*DirectOrderListResult, error) {
	page, size := normalizePage(input.Page, input.PageSize)
	rows, total, err := s.repo.ListDirectOrders(ctx, directOrderListQuery{
		Status: input.Status,
		Offset: (page - 1) * size,
		Limit:  size,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list direct orders")
	}

	summaries := make([]DirectOrderSummaryDTO, len(rows))
	for i := range rows {
		summaries[i] = NewDirectOrderSummaryDTO(&rows[i])
	}
	return &DirectOrderListResult{
		Orders: summaries,
		Meta:   listMeta(page, size, total),
	}, nil
}

// UpdateDirectOrder patches a direct order with the same stamp-once rule.
func (s *service) UpdateDirectOrder(ctx context.Context, orderID int64, input UpdateDirectOrderInput) (*DirectOrderDTO, error) {
	var status enums.DirectOrderStatus
	if input.Status != nil {
		parsed, err := parseDirectOrderStatusInput(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	order, err := s.repo.FindDirectOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Direct order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.Status != nil {
			applyDirectOrderStatus(order, status, time.Now().UTC())
		}
		if input.CustomerInfo != nil {
			order.CustomerInfo = *input.CustomerInfo
		}
		if input.BrandName != nil {
			order.BrandName = input.BrandName
		}
		if input.BrandID != nil {
			order.BrandID = input.BrandID
		}
		if input.TrackingNumber != nil {
			order.TrackingNumber = input.TrackingNumber
		}
		if input.Carrier != nil {
			order.Carrier = input.Carrier
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}
		if input.ExtraData != nil {
			order.ExtraData = *input.ExtraData
		}

		if _, err := s.repo.WithTx(tx).UpdateDirectOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update direct order")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update direct order")
	}

	updated, err := s.repo.GetDirectOrderDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order detail")
	}
	return NewDirectOrderDTO(updated), nil
}

// UpdateDirectOrderStatus is the quick transition endpoint for direct orders.
func (s *service) UpdateDirectOrderStatus(ctx context.Context, orderID int64, status string, userID *int64) error {
	parsed, err := parseDirectOrderStatusInput(status)
	if err != nil {
		return err
	}

	order, err := s.repo.FindDirectOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Direct order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		applyDirectOrderStatus(order, parsed, time.Now().UTC())
		if _, err := s.repo.WithTx(tx).UpdateDirectOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update direct order")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update direct order status")
	}
	return nil
}

// DeleteDirectOrder removes the direct order and its lines.
func (s *service) DeleteDirectOrder(ctx context.Context, orderID int64) error {
	if _, err := s.repo.FindDirectOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Direct order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load direct order")
	}
	if err := s.repo.DeleteDirectOrder(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete direct order")
	}
	return nil
}

// DirectOrderStats aggregates direct order counters.
func (s *service) DirectOrderStats(ctx context.Context) (*DirectOrderStatsDTO, error) {
	counts, total, err := s.repo.CountDirectOrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count direct orders")
	}
	today, err := s.repo.CountDirectOrdersSince(ctx, startOfToday())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count today's direct orders")
	}

	statusCounts := make(map[enums.DirectOrderStatus]int64, len(enums.ValidDirectOrderStatuses()))
	for _, status := range enums.ValidDirectOrderStatuses() {
		statusCounts[status] = counts[status]
	}
	return &DirectOrderStatsDTO{
		TotalOrders:  total,
		TodayOrders:  today,
		StatusCounts: statusCounts,
	}, nil
}

func orderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), now.Format("150405"))
}

func directOrderNumber(now time.Time) string {
	return fmt.Sprintf("DO-%s-%s", now.Format("20060102"), now.Format("150405"))
}

func lineTotal(line OrderItemInput) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Sub(line.Discount)
}

// applyOrderStatus sets the status and stamps the shipping timestamps exactly
// once: a repeat transition never moves them.
func applyOrderStatus(order *models.Order, status enums.OrderStatus, now time.Time) {
	order.Status = status
	switch status {
	case enums.OrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
	case enums.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	}
}

func applyDirectOrderStatus(order *models.DirectOrder, status enums.DirectOrderStatus, now time.Time) {
	order.Status = status
	switch status {
	case enums.DirectOrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
	case enums.DirectOrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	}
}

func statusChangeEvent(order *models.Order, previous enums.OrderStatus, userID *int64) outbox.DomainEvent {
	return outbox.DomainEvent{
		EventType:     enums.EventOrderStatusChanged,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.UUID,
		Actor:         actorFor(userID),
		Version:       1,
		Data: payloads.OrderStatusChangedEvent{
			OrderID:        order.ID,
			OrderUUID:      order.UUID,
			OrderNumber:    order.OrderNumber,
			PreviousStatus: previous,
			Status:         order.Status,
		},
	}
}

func parseOrderStatusInput(value string) (enums.OrderStatus, error) {
	status, err := enums.ParseOrderStatus(value)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("Invalid status. Must be one of: %s", orderStatusList()))
	}
	return status, nil
}

func parseDirectOrderStatusInput(value string) (enums.DirectOrderStatus, error) {
	status, err := enums.ParseDirectOrderStatus(value)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("Invalid status. Must be one of: %s", directOrderStatusList()))
	}
	return status, nil
}

func orderStatusList() string {
	statuses := enums.ValidOrderStatuses()
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ", ")
}

func directOrderStatusList() string {
	statuses := enums.ValidDirectOrderStatuses()
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ", ")
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func listMeta(page, size int, total int64) types.ListMeta {
	pages := int((total + int64(size) - 1) / int64(size))
	return types.ListMeta{
		Page:       page,
		PerPage:    size,
		Total:      total,
		TotalPages: pages,
	}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func actorFor(userID *int64) *outbox.ActorRef {
	if userID == nil {
		return nil
	}
	return &outbox.ActorRef{UserID: *userID}
}
