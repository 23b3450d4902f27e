package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/api/validators"
	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
)

// scanRequest is one device scan. Either barcode or product_id addresses the
// target; action defaults to scan_in and quantity to 1, matching the scanner
// firmware's minimal payload.
type scanRequest struct {
	ProductID  *int64  `json:"product_id,omitempty"`
	Barcode    string  `json:"barcode,omitempty"`
	Action     string  `json:"action,omitempty"`
	Quantity   int     `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Reason     *string `json:"reason,omitempty"`
	DeviceType *string `json:"device_type,omitempty"`
	DeviceInfo *string `json:"device_info,omitempty"`
}

func (req scanRequest) toInput(userID *int64) inventory.ScanInput {
	action := req.Action
	if action == "" {
		action = "scan_in"
	}
	return inventory.ScanInput{
		ProductID:  req.ProductID,
		Barcode:    strings.TrimSpace(req.Barcode),
		Action:     action,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		DeviceType: req.DeviceType,
		DeviceInfo: req.DeviceInfo,
		UserID:     userID,
	}
}

type bulkScanRequest struct {
	Scans []scanRequest `json:"scans" validate:"required,min=1,dive"`
}

type inventoryUpdateRequest struct {
	Quantity          *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	ReorderPoint      *int    `json:"reorder_point,omitempty" validate:"omitempty,min=0"`
	Location          *string `json:"location,omitempty"`
	TrackInventory    *bool   `json:"track_inventory,omitempty"`
	AllowBackorder    *bool   `json:"allow_backorder,omitempty"`
}

// InventoryList returns all stock records, optionally narrowed to the low or
// out-of-stock slices.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var filter inventory.Filter
		if raw := strings.TrimSpace(r.URL.Query().Get("low_stock")); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid low_stock value"))
				return
			}
			filter.LowStock = value
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("out_of_stock")); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid out_of_stock value"))
				return
			}
			filter.OutOfStock = value
		}

		records, err := svc.ListInventory(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// InventoryStats returns the stock-state counters for the dashboard.
func InventoryStats(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// InventoryGet returns the stock record for one product.
func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetProductInventory(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// InventoryUpdate patches the stock record's settings. A quantity change is
// written as a manual adjustment with its ledger row.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inventoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateProductInventory(r.Context(), productID, inventory.UpdateInput{
			Quantity:          payload.Quantity,
			LowStockThreshold: payload.LowStockThreshold,
			ReorderPoint:      payload.ReorderPoint,
			Location:          payload.Location,
			TrackInventory:    payload.TrackInventory,
			AllowBackorder:    payload.AllowBackorder,
			UserID:            actorRef(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// InventoryScan applies one scan and returns the updated stock snapshot.
func InventoryScan(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload scanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ScanAdjust(r.Context(), payload.toInput(actorRef(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InventoryBulkScan applies a batch of scans in order. Failed entries are
// reported alongside the successes; the batch itself always succeeds.
func InventoryBulkScan(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload bulkScanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := actorRef(r)
		inputs := make([]inventory.ScanInput, len(payload.Scans))
		for i, scan := range payload.Scans {
			inputs[i] = scan.toInput(userID)
		}

		result, err := svc.BulkScan(r.Context(), inputs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InventoryProductLogs returns the product's ledger, newest first.
func InventoryProductLogs(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", inventory.DefaultLogLimit, 1, inventory.MaxLogLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logs, err := svc.GetProductLogs(r.Context(), productID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, logs)
	}
}

// InventoryVariantLogs returns the variant's ledger, newest first.
func InventoryVariantLogs(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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

		limit, err := validators.ParseQueryInt(r, "limit", inventory.DefaultLogLimit, 1, inventory.MaxLogLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logs, err := svc.GetVariantLogs(r.Context(), variantID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, logs)
	}
}
