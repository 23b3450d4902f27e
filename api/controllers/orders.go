package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/api/validators"
	"github.com/speedcraftlabs/gearstock-backend/internal/orders"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

// orderItemRequest is one requested line. Product details arrive as a client
// snapshot so the line survives later catalog edits.
type orderItemRequest struct {
	ProductID      *int64            `json:"product_id,omitempty"`
	VariantID      *int64            `json:"variant_id,omitempty"`
	ProductName    string            `json:"product_name" validate:"required,min=1"`
	ProductSKU     *string           `json:"product_sku,omitempty"`
	ProductBarcode *string           `json:"product_barcode,omitempty"`
	VariantName    *string           `json:"variant_name,omitempty"`
	VariantOptions map[string]string `json:"variant_options,omitempty"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	Quantity       *int              `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Discount       decimal.Decimal   `json:"discount"`
	ExtraData      map[string]any    `json:"extra_data,omitempty"`
}

func (req orderItemRequest) toInput() orders.OrderItemInput {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	return orders.OrderItemInput{
		ProductID:      req.ProductID,
		VariantID:      req.VariantID,
		ProductName:    validators.SanitizeString(req.ProductName, 500),
		ProductSKU:     req.ProductSKU,
		ProductBarcode: req.ProductBarcode,
		VariantName:    req.VariantName,
		VariantOptions: req.VariantOptions,
		UnitPrice:      req.UnitPrice,
		Quantity:       quantity,
		Discount:       req.Discount,
		ExtraData:      req.ExtraData,
	}
}

type orderCreateRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingInfo    map[string]any     `json:"shipping_info,omitempty"`
	BillingInfo     map[string]any     `json:"billing_info,omitempty"`
	ShippingDetails map[string]any     `json:"shipping_details,omitempty"`
	PaymentInfo     map[string]any     `json:"payment_info,omitempty"`
	InvoiceData     map[string]any     `json:"invoice_data,omitempty"`
	ExtraData       map[string]any     `json:"extra_data,omitempty"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	TaxAmount       decimal.Decimal    `json:"tax_amount"`
	InternalNotes   *string            `json:"internal_notes,omitempty"`
	CustomerNotes   *string            `json:"customer_notes,omitempty"`
}

func (req orderCreateRequest) toInput(userID *int64) orders.CreateOrderInput {
	items := make([]orders.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toInput()
	}
	return orders.CreateOrderInput{
		Items:           items,
		DiscountAmount:  req.DiscountAmount,
		ShippingCost:    req.ShippingCost,
		TaxAmount:       req.TaxAmount,
		ShippingInfo:    req.ShippingInfo,
		BillingInfo:     req.BillingInfo,
		ShippingDetails: req.ShippingDetails,
		PaymentInfo:     req.PaymentInfo,
		InvoiceData:     req.InvoiceData,
		ExtraData:       req.ExtraData,
		InternalNotes:   req.InternalNotes,
		CustomerNotes:   req.CustomerNotes,
		UserID:          userID,
	}
}

type orderUpdateRequest struct {
	Status          *string          `json:"status,omitempty"`
	ShippingInfo    *map[string]any  `json:"shipping_info,omitempty"`
	BillingInfo     *map[string]any  `json:"billing_info,omitempty"`
	ShippingDetails *map[string]any  `json:"shipping_details,omitempty"`
	PaymentInfo     *map[string]any  `json:"payment_info,omitempty"`
	InvoiceData     *map[string]any  `json:"invoice_data,omitempty"`
	ExtraData       *map[string]any  `json:"extra_data,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost,omitempty"`
	TaxAmount       *decimal.Decimal `json:"tax_amount,omitempty"`
	InternalNotes   *string          `json:"internal_notes,omitempty"`
	CustomerNotes   *string          `json:"customer_notes,omitempty"`
}

type orderScanRequest struct {
	Barcode   string `json:"barcode,omitempty"`
	ProductID *int64 `json:"product_id,omitempty"`
}

// OrderCreate creates an order and deducts stock for every tracked line in
// the same transaction.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload orderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), payload.toInput(actorRef(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderList pages orders newest first. An unknown status value simply matches
// nothing, mirroring the dashboard's permissive filter.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		input := orders.ListOrdersInput{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			input.Status = &status
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "page_size", orders.DefaultPageSize, 1, orders.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Page = page
		input.PageSize = size

		result, err := svc.ListOrders(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrderStats returns the dashboard counters.
func OrderStats(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		stats, err := svc.OrderStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// OrderGet returns the full order with its lines.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := idParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderUpdate patches an order; a status value goes through the same closed
// set and stamping as the quick status endpoint.
func OrderUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := idParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateOrder(r.Context(), orderID, orders.UpdateOrderInput{
			Status:          payload.Status,
			ShippingInfo:    payload.ShippingInfo,
			BillingInfo:     payload.BillingInfo,
			ShippingDetails: payload.ShippingDetails,
			PaymentInfo:     payload.PaymentInfo,
			InvoiceData:     payload.InvoiceData,
			ExtraData:       payload.ExtraData,
			DiscountAmount:  payload.DiscountAmount,
			ShippingCost:    payload.ShippingCost,
			TaxAmount:       payload.TaxAmount,
			InternalNotes:   payload.InternalNotes,
			CustomerNotes:   payload.CustomerNotes,
			UserID:          actorRef(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderDelete removes an order. Stock is never restored; cancellation is the
// path that returns goods to the shelf.
func OrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := idParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOrder(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "message": "Order deleted"})
	}
}

// OrderUpdateStatus is the quick status transition used by the fulfillment
// board. The target status arrives as a query parameter.
func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := idParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		if status == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "status is required").
				WithDetails(map[string]any{"field": "status"}))
			return
		}

		if err := svc.UpdateStatus(r.Context(), orderID, status, actorRef(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "status": status})
	}
}

// OrderScan resolves a barcode or product id into the snapshot a scan-to-add
// device needs to build an order line.
func OrderScan(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload orderScanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ScanForOrder(r.Context(), orders.OrderScanInput{
			Barcode:   strings.TrimSpace(payload.Barcode),
			ProductID: payload.ProductID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
