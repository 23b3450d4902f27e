package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/barcode"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
)

// Resolution is the outcome of a scan lookup: the product that matched, the
// variant whose record the scan targets (nil when the product itself is the
// target), and the display name/sku for messages and events.
type Resolution struct {
	Product    *models.Product
	Variant    *models.ProductVariant
	ProductInv *models.Inventory
	VariantInv *models.VariantInventory
	ItemName   string
	ItemSKU    string
}

// TargetsVariant reports whether the scan hits a variant record rather than
// the product's own.
func (res *Resolution) TargetsVariant() bool {
	return res.Variant != nil
}

// Quantity returns the on-hand quantity of the target record. Call
// EnsureInventory first.
func (res *Resolution) Quantity() int {
	if res.TargetsVariant() {
		return res.VariantInv.Quantity
	}
	return res.ProductInv.Quantity
}

// LowStockThreshold returns the threshold of the target record.
func (res *Resolution) LowStockThreshold() int {
	if res.TargetsVariant() {
		return res.VariantInv.LowStockThreshold
	}
	return res.ProductInv.LowStockThreshold
}

// EnsureInventory verifies the target record exists. Scan paths require it;
// the order-scan lookup tolerates a missing record and reports zero stock.
func (res *Resolution) EnsureInventory() error {
	if res.TargetsVariant() {
		if res.VariantInv == nil {
			return pkgerrors.New(pkgerrors.CodeInventoryNotInitialized, "Inventory not initialized")
		}
		return nil
	}
	if res.ProductInv == nil {
		return pkgerrors.New(pkgerrors.CodeInventoryNotInitialized, "Inventory not initialized")
	}
	return nil
}

// Resolve finds the record a scan targets. Lookup order: variant by exact
// barcode, then product by explicit id, then product by the id embedded in a
// decodable barcode, then product by raw barcode value. A product that carries
// variants always resolves to its default variant's record, never its own.
// A barcode that decodes but matches no product does not fall through to the
// raw barcode lookup.
func (r *Repository) Resolve(ctx context.Context, code string, productID *int64) (*Resolution, error) {
	if code != "" {
		variant, err := r.FindVariantByBarcode(ctx, code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if variant != nil {
			return &Resolution{
				Product:    variant.Product,
				Variant:    variant,
				VariantInv: variant.Inventory,
				ItemName:   fmt.Sprintf("%s - %s", variant.Product.Name, variant.Name),
				ItemSKU:    variant.SKU,
			}, nil
		}
	}

	var (
		product *models.Product
		err     error
	)
	switch {
	case productID != nil:
		product, err = r.FindProductForScan(ctx, *productID)
	case code != "":
		if id, ok := barcode.DecodeProductID(code); ok {
			product, err = r.FindProductForScan(ctx, id)
		} else {
			product, err = r.FindProductByBarcode(ctx, code)
		}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product or variant not found")
	}

	if product.HasVariants() {
		variant := product.DefaultVariant()
		return &Resolution{
			Product:    product,
			Variant:    variant,
			ProductInv: product.Inventory,
			VariantInv: variant.Inventory,
			ItemName:   fmt.Sprintf("%s - %s", product.Name, variant.Name),
			ItemSKU:    variant.SKU,
		}, nil
	}
	return &Resolution{
		Product:    product,
		ProductInv: product.Inventory,
		ItemName:   product.Name,
		ItemSKU:    product.SKU,
	}, nil
}
