package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCodes(t *testing.T) {
	assert.Equal(t, "SPC-000042", ProductSKU(42))
	assert.Equal(t, "SPC000000042", ProductBarcode(42))
	assert.Equal(t, "SPCPRODUCT:42", ProductQR(42))
	assert.Equal(t, "SPC-1234567", ProductSKU(1234567))
}

func TestVariantBarcode(t *testing.T) {
	assert.Equal(t, "SPCV000042003", VariantBarcode(42, 3))
	assert.Equal(t, "SPCV000001001", VariantBarcode(1, 1))
}

func TestDecodeProductID(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		wantID int64
		wantOK bool
	}{
		{name: "generated barcode", code: "SPC000000042", wantID: 42, wantOK: true},
		{name: "no leading zeros", code: "SPC42", wantID: 42, wantOK: true},
		{name: "variant barcode not decodable", code: "SPCV000042001", wantOK: false},
		{name: "qr payload not decodable", code: "SPCPRODUCT:42", wantOK: false},
		{name: "foreign barcode", code: "4006381333931", wantOK: false},
		{name: "prefix only", code: "SPC", wantOK: false},
		{name: "empty", code: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := DecodeProductID(tc.code)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, id)
			}
		})
	}
}
