package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/api/validators"
	"github.com/speedcraftlabs/gearstock-backend/internal/orders"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

type directOrderItemRequest struct {
	ProductID      *int64            `json:"product_id,omitempty"`
	VariantID      *int64            `json:"variant_id,omitempty"`
	ProductName    string            `json:"product_name" validate:"required,min=1"`
	ProductSKU     *string           `json:"product_sku,omitempty"`
	VariantName    *string           `json:"variant_name,omitempty"`
	VariantOptions map[string]string `json:"variant_options,omitempty"`
	Quantity       *int              `json:"quantity,omitempty" validate:"omitempty,min=1"`
	UnitPrice      *decimal.Decimal  `json:"unit_price,omitempty"`
	ExtraData      map[string]any    `json:"extra_data,omitempty"`
}

func (req directOrderItemRequest) toInput() orders.DirectOrderItemInput {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	return orders.DirectOrderItemInput{
		ProductID:      req.ProductID,
		VariantID:      req.VariantID,
		ProductName:    validators.SanitizeString(req.ProductName, 500),
		ProductSKU:     req.ProductSKU,
		VariantName:    req.VariantName,
		VariantOptions: req.VariantOptions,
		Quantity:       quantity,
		UnitPrice:      req.UnitPrice,
		ExtraData:      req.ExtraData,
	}
}

type directOrderCreateRequest struct {
	Items          []directOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerInfo   map[string]any           `json:"customer_info,omitempty"`
	BrandName      *string                  `json:"brand_name,omitempty"`
	BrandID        *int64                   `json:"brand_id,omitempty"`
	TrackingNumber *string                  `json:"tracking_number,omitempty"`
	Carrier        *string                  `json:"carrier,omitempty"`
	Notes          *string                  `json:"notes,omitempty"`
	ExtraData      map[string]any           `json:"extra_data,omitempty"`
	OrderDate      *time.Time               `json:"order_date,omitempty"`
}

func (req directOrderCreateRequest) toInput(userID *int64) orders.CreateDirectOrderInput {
	items := make([]orders.DirectOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toInput()
	}
	return orders.CreateDirectOrderInput{
		Items:          items,
		CustomerInfo:   req.CustomerInfo,
		BrandName:      req.BrandName,
		BrandID:        req.BrandID,
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
		Notes:          req.Notes,
		ExtraData:      req.ExtraData,
		OrderDate:      req.OrderDate,
		UserID:         userID,
	}
}

type directOrderUpdateRequest struct {
	Status         *string         `json:"status,omitempty"`
	CustomerInfo   *map[string]any `json:"customer_info,omitempty"`
	BrandName      *string         `json:"brand_name,omitempty"`
	BrandID        *int64          `json:"brand_id,omitempty"`
	TrackingNumber *string         `json:"tracking_number,omitempty"`
	Carrier        *string         `json:"carrier,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	ExtraData      *map[string]any `json:"extra_data,omitempty"`
}

// DirectOrderCreate records a brand-fulfilled order. Stock is never touched;
// the brand ships from its own warehouse.
func DirectOrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload directOrderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateDirectOrder(r.Context(), payload.toInput(actorRef(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DirectOrderList pages direct orders by business date, newest first.
func DirectOrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		input := orders.ListDirectOrdersInput{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.DirectOrderStatus(raw)
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

		result, err := svc.ListDirectOrders(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DirectOrderStats returns the direct order counters.
func DirectOrderStats(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		stats, err := svc.DirectOrderStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// DirectOrderGet returns a direct order with its lines.
func DirectOrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		order, err := svc.GetDirectOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DirectOrderUpdate patches a direct order, typically to attach tracking once
// the brand ships.
func DirectOrderUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload directOrderUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateDirectOrder(r.Context(), orderID, orders.UpdateDirectOrderInput{
			Status:         payload.Status,
			CustomerInfo:   payload.CustomerInfo,
			BrandName:      payload.BrandName,
			BrandID:        payload.BrandID,
			TrackingNumber: payload.TrackingNumber,
			Carrier:        payload.Carrier,
			Notes:          payload.Notes,
			ExtraData:      payload.ExtraData,
			UserID:         actorRef(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DirectOrderDelete removes a direct order and its lines.
func DirectOrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.DeleteDirectOrder(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "message": "Direct order deleted"})
	}
}

// DirectOrderUpdateStatus is the quick status transition. The target status
// arrives as a query parameter.
func DirectOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.UpdateDirectOrderStatus(r.Context(), orderID, status, actorRef(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "status": status})
	}
}
