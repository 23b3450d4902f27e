package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/api/validators"
	"github.com/speedcraftlabs/gearstock-backend/internal/catalog"
	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

type variantUpdateRequest struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	SKU            *string            `json:"sku,omitempty" validate:"omitempty,max=100"`
	Barcode        *string            `json:"barcode,omitempty" validate:"omitempty,max=100"`
	Options        *map[string]string `json:"options,omitempty"`
	Price          *decimal.Decimal   `json:"price,omitempty"`
	CostPrice      *decimal.Decimal   `json:"cost_price,omitempty"`
	CompareAtPrice *decimal.Decimal   `json:"compare_at_price,omitempty"`
	IsActive       *bool              `json:"is_active,omitempty"`
	IsDefault      *bool              `json:"is_default,omitempty"`
	SortOrder      *int               `json:"sort_order,omitempty"`
}

// VariantGet returns one variant with its stock record.
func VariantGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := idParam(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.GetVariant(r.Context(), variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

// VariantUpdate patches mutable variant fields, keeping default-flag
// exclusivity.
func VariantUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := idParam(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.UpdateVariant(r.Context(), variantID, catalog.UpdateVariantInput{
			Name:           payload.Name,
			SKU:            payload.SKU,
			Barcode:        payload.Barcode,
			Options:        payload.Options,
			Price:          payload.Price,
			CostPrice:      payload.CostPrice,
			CompareAtPrice: payload.CompareAtPrice,
			IsActive:       payload.IsActive,
			IsDefault:      payload.IsDefault,
			SortOrder:      payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

// VariantDelete removes the variant with its stock record and ledger.
func VariantDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := idParam(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVariant(r.Context(), variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// VariantInventoryAdjust applies a manual set/add/remove to the variant's
// stock record. The handheld clients send the knobs as query parameters, so
// this endpoint reads them there rather than from a body.
func VariantInventoryAdjust(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		variantID, err := idParam(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawQuantity := strings.TrimSpace(r.URL.Query().Get("quantity"))
		if rawQuantity == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required").
				WithDetails(map[string]any{"field": "quantity"}))
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode := enums.VariantAdjustSet
		if raw := strings.TrimSpace(r.URL.Query().Get("adjustment_type")); raw != "" {
			parsed, err := enums.ParseVariantAdjustMode(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "adjustment_type must be set, add or remove"))
				return
			}
			mode = parsed
		}

		var reason *string
		if raw := validators.SanitizeString(r.URL.Query().Get("reason"), 500); raw != "" {
			reason = &raw
		}

		record, err := svc.AdjustVariantInventory(r.Context(), variantID, inventory.AdjustInput{
			Quantity: quantity,
			Mode:     mode,
			Reason:   reason,
			UserID:   actorRef(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
