package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/speedcraftlabs/gearstock-backend/api/responses"
	"github.com/speedcraftlabs/gearstock-backend/api/validators"
	"github.com/speedcraftlabs/gearstock-backend/internal/catalog"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/pagination"
)

type productCreateRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=500"`
	Description     *string          `json:"description,omitempty"`
	SKU             *string          `json:"sku,omitempty" validate:"omitempty,max=100"`
	Barcode         *string          `json:"barcode,omitempty" validate:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	CompareAtPrice  *decimal.Decimal `json:"compare_at_price,omitempty"`
	InitialQuantity int              `json:"initial_quantity,omitempty" validate:"omitempty,min=0"`
	IsActive        *bool            `json:"is_active,omitempty"`
	IsFeatured      bool             `json:"is_featured,omitempty"`
}

func (req productCreateRequest) toInput(userID *int64) catalog.CreateProductInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return catalog.CreateProductInput{
		Name:            validators.SanitizeString(req.Name, 500),
		Description:     req.Description,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		Price:           req.Price,
		CostPrice:       req.CostPrice,
		CompareAtPrice:  req.CompareAtPrice,
		InitialQuantity: req.InitialQuantity,
		IsActive:        active,
		IsFeatured:      req.IsFeatured,
		UserID:          userID,
	}
}

type productUpdateRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=500"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	IsFeatured     *bool            `json:"is_featured,omitempty"`
}

type variantCreateRequest struct {
	Name            string            `json:"name" validate:"required,min=1,max=255"`
	SKU             *string           `json:"sku,omitempty" validate:"omitempty,max=100"`
	Barcode         *string           `json:"barcode,omitempty" validate:"omitempty,max=100"`
	Options         map[string]string `json:"options,omitempty"`
	Price           *decimal.Decimal  `json:"price,omitempty"`
	CostPrice       *decimal.Decimal  `json:"cost_price,omitempty"`
	CompareAtPrice  *decimal.Decimal  `json:"compare_at_price,omitempty"`
	IsActive        *bool             `json:"is_active,omitempty"`
	IsDefault       bool              `json:"is_default,omitempty"`
	SortOrder       int               `json:"sort_order,omitempty"`
	InitialQuantity int               `json:"initial_quantity,omitempty" validate:"omitempty,min=0"`
}

func (req variantCreateRequest) toInput(userID *int64) catalog.CreateVariantInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return catalog.CreateVariantInput{
		Name:            validators.SanitizeString(req.Name, 255),
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		Options:         req.Options,
		Price:           req.Price,
		CostPrice:       req.CostPrice,
		CompareAtPrice:  req.CompareAtPrice,
		IsActive:        active,
		IsDefault:       req.IsDefault,
		SortOrder:       req.SortOrder,
		InitialQuantity: req.InitialQuantity,
		UserID:          userID,
	}
}

// ProductCreate inserts a product with its stock record and generated codes.
func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput(actorRef(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductList pages the catalog with optional active/featured/stock filters
// and a free-text query.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input := catalog.ListProductsInput{
			Filters: catalog.ProductListFilters{
				Query: validators.SanitizeString(r.URL.Query().Get("q"), 200),
			},
		}

		for key, dest := range map[string]**bool{
			"is_active":   &input.Filters.IsActive,
			"is_featured": &input.Filters.IsFeatured,
			"in_stock":    &input.Filters.InStock,
		} {
			raw := strings.TrimSpace(r.URL.Query().Get(key))
			if raw == "" {
				continue
			}
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "filter must be a boolean").
					WithDetails(map[string]any{"field": key}))
				return
			}
			*dest = &value
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Pagination = pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductGet returns the full product payload with inventory and variants.
func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductUpdate patches mutable product fields; a name change regenerates the
// slug.
func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, catalog.UpdateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			CostPrice:      payload.CostPrice,
			CompareAtPrice: payload.CompareAtPrice,
			IsActive:       payload.IsActive,
			IsFeatured:     payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes the product and cascades to variants, stock records
// and ledgers.
func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Product deleted successfully"})
	}
}

// ProductVariantCreate adds a variant under the product, with its own stock
// record.
func ProductVariantCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.CreateVariant(r.Context(), productID, payload.toInput(actorRef(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// ProductVariantList returns the product's variants in sort order.
func ProductVariantList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := idParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants, err := svc.ListVariants(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variants)
	}
}
