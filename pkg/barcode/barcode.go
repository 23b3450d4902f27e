// Package barcode implements the SPC string codec used on product and variant
// codes. Rendering of barcode or QR images is out of scope; only the encoded
// strings live here.
package barcode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Prefix marks every generated product code.
	Prefix = "SPC"

	qrPrefix      = "SPCPRODUCT:"
	variantPrefix = "SPCV"
)

// ProductSKU derives the default SKU for a product from its surrogate id,
// e.g. SPC-000042.
func ProductSKU(productID int64) string {
	return fmt.Sprintf("%s-%06d", Prefix, productID)
}

// ProductBarcode derives the default Code128-compatible barcode for a
// product, e.g. SPC000000042.
func ProductBarcode(productID int64) string {
	return fmt.Sprintf("%s%09d", Prefix, productID)
}

// ProductQR builds the QR payload embedding the product id,
// e.g. SPCPRODUCT:42.
func ProductQR(productID int64) string {
	return fmt.Sprintf("%s%d", qrPrefix, productID)
}

// VariantBarcode derives the default barcode for the ordinal-th variant of a
// product, e.g. SPCV000042003.
func VariantBarcode(productID int64, ordinal int) string {
	return fmt.Sprintf("%s%06d%03d", variantPrefix, productID, ordinal)
}

// DecodeProductID extracts the product id embedded in a scanned SPC barcode.
// The second return is false when the input does not carry a decodable id, in
// which case callers fall back to matching the raw string against stored
// barcodes. Variant barcodes and QR payloads are not decodable here on
// purpose; variants match by exact barcode before decoding is attempted.
func DecodeProductID(code string) (int64, bool) {
	if !strings.HasPrefix(code, Prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(code[len(Prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
