package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/types"
)

// Page-based listing bounds, matching the admin dashboard's pagers.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrderItemDTO is one snapshotted order line.
type OrderItemDTO struct {
	ID             int64             `json:"id"`
	UUID           uuid.UUID         `json:"uuid"`
	OrderID        int64             `json:"order_id"`
	ProductID      *int64            `json:"product_id,omitempty"`
	VariantID      *int64            `json:"variant_id,omitempty"`
	ProductName    string            `json:"product_name"`
	ProductSKU     *string           `json:"product_sku,omitempty"`
	ProductBarcode *string           `json:"product_barcode,omitempty"`
	VariantName    *string           `json:"variant_name,omitempty"`
	VariantOptions map[string]string `json:"variant_options"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	Discount       decimal.Decimal   `json:"discount"`
	Total          decimal.Decimal   `json:"total"`
	ExtraData      map[string]any    `json:"extra_data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// OrderDTO is the full order representation returned by fetch and mutation
// operations.
type OrderDTO struct {
	ID              int64             `json:"id"`
	UUID            uuid.UUID         `json:"uuid"`
	OrderNumber     string            `json:"order_number"`
	Status          enums.OrderStatus `json:"status"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	ShippingCost    decimal.Decimal   `json:"shipping_cost"`
	TaxAmount       decimal.Decimal   `json:"tax_amount"`
	Total           decimal.Decimal   `json:"total"`
	ShippingInfo    map[string]any    `json:"shipping_info"`
	BillingInfo     map[string]any    `json:"billing_info"`
	ShippingDetails map[string]any    `json:"shipping_details"`
	PaymentInfo     map[string]any    `json:"payment_info"`
	InvoiceData     map[string]any    `json:"invoice_data"`
	ExtraData       map[string]any    `json:"extra_data"`
	InternalNotes   *string           `json:"internal_notes,omitempty"`
	CustomerNotes   *string           `json:"customer_notes,omitempty"`
	CreatedByID     *int64            `json:"created_by_id,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	ShippedAt       *time.Time        `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time        `json:"delivered_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderSummaryDTO is the compact row returned by the order list.
type OrderSummaryDTO struct {
	ID           int64             `json:"id"`
	UUID         uuid.UUID         `json:"uuid"`
	OrderNumber  string            `json:"order_number"`
	Status       enums.OrderStatus `json:"status"`
	Total        decimal.Decimal   `json:"total"`
	ShippingInfo map[string]any    `json:"shipping_info"`
	ItemCount    int               `json:"item_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// OrderListResult carries one page of orders plus paging meta.
type OrderListResult struct {
	Orders []OrderSummaryDTO `json:"orders"`
	Meta   types.ListMeta    `json:"meta"`
}

// OrderStatsDTO aggregates the dashboard counters.
type OrderStatsDTO struct {
	TotalOrders  int64                       `json:"total_orders"`
	TodayOrders  int64                       `json:"today_orders"`
	TotalRevenue decimal.Decimal             `json:"total_revenue"`
	StatusCounts map[enums.OrderStatus]int64 `json:"status_counts"`
}

// OrderScanResult is the lookup payload a scan-to-add device needs to build an
// order line.
type OrderScanResult struct {
	ProductID         int64             `json:"product_id"`
	VariantID         *int64            `json:"variant_id,omitempty"`
	ProductName       string            `json:"product_name"`
	ProductSKU        string            `json:"product_sku"`
	ProductBarcode    *string           `json:"product_barcode,omitempty"`
	VariantName       *string           `json:"variant_name,omitempty"`
	VariantOptions    map[string]string `json:"variant_options"`
	UnitPrice         decimal.Decimal   `json:"unit_price"`
	AvailableQuantity int               `json:"available_quantity"`
}

// DirectOrderItemDTO is one line of a brand-fulfilled order.
type DirectOrderItemDTO struct {
	ID             int64             `json:"id"`
	UUID           uuid.UUID         `json:"uuid"`
	DirectOrderID  int64             `json:"direct_order_id"`
	ProductID      *int64            `json:"product_id,omitempty"`
	VariantID      *int64            `json:"variant_id,omitempty"`
	ProductName    string            `json:"product_name"`
	ProductSKU     *string           `json:"product_sku,omitempty"`
	VariantName    *string           `json:"variant_name,omitempty"`
	VariantOptions map[string]string `json:"variant_options"`
	Quantity       int               `json:"quantity"`
	UnitPrice      *decimal.Decimal  `json:"unit_price,omitempty"`
	ExtraData      map[string]any    `json:"extra_data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// DirectOrderDTO is the full direct order representation.
type DirectOrderDTO struct {
	ID             int64                   `json:"id"`
	UUID           uuid.UUID               `json:"uuid"`
	OrderNumber    string                  `json:"order_number"`
	Status         enums.DirectOrderStatus `json:"status"`
	CustomerInfo   map[string]any          `json:"customer_info"`
	BrandName      *string                 `json:"brand_name,omitempty"`
	BrandID        *int64                  `json:"brand_id,omitempty"`
	TrackingNumber *string                 `json:"tracking_number,omitempty"`
	Carrier        *string                 `json:"carrier,omitempty"`
	Notes          *string                 `json:"notes,omitempty"`
	ExtraData      map[string]any          `json:"extra_data"`
	CreatedByID    *int64                  `json:"created_by_id,omitempty"`
	Items          []DirectOrderItemDTO    `json:"items"`
	OrderDate      time.Time               `json:"order_date"`
	ShippedAt      *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// DirectOrderSummaryDTO is the compact row returned by the direct order list.
type DirectOrderSummaryDTO struct {
	ID           int64                   `json:"id"`
	UUID         uuid.UUID               `json:"uuid"`
	OrderNumber  string                  `json:"order_number"`
	Status       enums.DirectOrderStatus `json:"status"`
	CustomerInfo map[string]any          `json:"customer_info"`
	BrandName    *string                 `json:"brand_name,omitempty"`
	ItemCount    int                     `json:"item_count"`
	OrderDate    time.Time               `json:"order_date"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// DirectOrderListResult carries one page of direct orders plus paging meta.
type DirectOrderListResult struct {
	Orders []DirectOrderSummaryDTO `json:"orders"`
	Meta   types.ListMeta          `json:"meta"`
}

// DirectOrderStatsDTO aggregates direct order counters. Direct orders carry no
// revenue figure since unit prices are optional bookkeeping.
type DirectOrderStatsDTO struct {
	TotalOrders  int64                             `json:"total_orders"`
	TodayOrders  int64                             `json:"today_orders"`
	StatusCounts map[enums.DirectOrderStatus]int64 `json:"status_counts"`
}

// NewOrderDTO builds the full DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i := range order.Items {
		items[i] = newOrderItemDTO(&order.Items[i])
	}
	return &OrderDTO{
		ID:              order.ID,
		UUID:            order.UUID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		Subtotal:        order.Subtotal,
		DiscountAmount:  order.DiscountAmount,
		ShippingCost:    order.ShippingCost,
		TaxAmount:       order.TaxAmount,
		Total:           order.Total,
		ShippingInfo:    emptyWhenNil(order.ShippingInfo),
		BillingInfo:     emptyWhenNil(order.BillingInfo),
		ShippingDetails: emptyWhenNil(order.ShippingDetails),
		PaymentInfo:     emptyWhenNil(order.PaymentInfo),
		InvoiceData:     emptyWhenNil(order.InvoiceData),
		ExtraData:       emptyWhenNil(order.ExtraData),
		InternalNotes:   order.InternalNotes,
		CustomerNotes:   order.CustomerNotes,
		CreatedByID:     order.CreatedByID,
		Items:           items,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func newOrderItemDTO(item *models.OrderItem) OrderItemDTO {
	options := item.VariantOptions
	if options == nil {
		options = map[string]string{}
	}
	return OrderItemDTO{
		ID:             item.ID,
		UUID:           item.UUID,
		OrderID:        item.OrderID,
		ProductID:      item.ProductID,
		VariantID:      item.VariantID,
		ProductName:    item.ProductName,
		ProductSKU:     item.ProductSKU,
		ProductBarcode: item.ProductBarcode,
		VariantName:    item.VariantName,
		VariantOptions: options,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		Discount:       item.Discount,
		Total:          item.Total,
		ExtraData:      item.ExtraData,
		CreatedAt:      item.CreatedAt,
	}
}

// NewOrderSummaryDTO builds the list row from the persisted model.
func NewOrderSummaryDTO(order *models.Order) OrderSummaryDTO {
	return OrderSummaryDTO{
		ID:           order.ID,
		UUID:         order.UUID,
		OrderNumber:  order.OrderNumber,
		Status:       order.Status,
		Total:        order.Total,
		ShippingInfo: emptyWhenNil(order.ShippingInfo),
		ItemCount:    len(order.Items),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// NewDirectOrderDTO builds the full DTO from the persisted model.
func NewDirectOrderDTO(order *models.DirectOrder) *DirectOrderDTO {
	items := make([]DirectOrderItemDTO, len(order.Items))
	for i := range order.Items {
		items[i] = newDirectOrderItemDTO(&order.Items[i])
	}
	return &DirectOrderDTO{
		ID:             order.ID,
		UUID:           order.UUID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		CustomerInfo:   emptyWhenNil(order.CustomerInfo),
		BrandName:      order.BrandName,
		BrandID:        order.BrandID,
		TrackingNumber: order.TrackingNumber,
		Carrier:        order.Carrier,
		Notes:          order.Notes,
		ExtraData:      emptyWhenNil(order.ExtraData),
		CreatedByID:    order.CreatedByID,
		Items:          items,
		OrderDate:      order.OrderDate,
		ShippedAt:      order.ShippedAt,
		DeliveredAt:    order.DeliveredAt,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func newDirectOrderItemDTO(item *models.DirectOrderItem) DirectOrderItemDTO {
	options := item.VariantOptions
	if options == nil {
		options = map[string]string{}
	}
	return DirectOrderItemDTO{
		ID:             item.ID,
		UUID:           item.UUID,
		DirectOrderID:  item.DirectOrderID,
		ProductID:      item.ProductID,
		VariantID:      item.VariantID,
		ProductName:    item.ProductName,
		ProductSKU:     item.ProductSKU,
		VariantName:    item.VariantName,
		VariantOptions: options,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		ExtraData:      item.ExtraData,
		CreatedAt:      item.CreatedAt,
	}
}

// NewDirectOrderSummaryDTO builds the list row from the persisted model.
func NewDirectOrderSummaryDTO(order *models.DirectOrder) DirectOrderSummaryDTO {
	return DirectOrderSummaryDTO{
		ID:           order.ID,
		UUID:         order.UUID,
		OrderNumber:  order.OrderNumber,
		Status:       order.Status,
		CustomerInfo: emptyWhenNil(order.CustomerInfo),
		BrandName:    order.BrandName,
		ItemCount:    len(order.Items),
		OrderDate:    order.OrderDate,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func emptyWhenNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
