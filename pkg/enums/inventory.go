package enums

import "fmt"

// InventoryAction maps to the action column on inventory log rows.
type InventoryAction string

const (
	InventoryActionInitial    InventoryAction = "initial"
	InventoryActionScanIn     InventoryAction = "scan_in"
	InventoryActionScanOut    InventoryAction = "scan_out"
	InventoryActionAdjustment InventoryAction = "adjustment"
	InventoryActionSet        InventoryAction = "set"
	InventoryActionAdd        InventoryAction = "add"
	InventoryActionRemove     InventoryAction = "remove"
	InventoryActionOrderOut   InventoryAction = "order_out"
)

var validInventoryActions = []InventoryAction{
	InventoryActionInitial,
	InventoryActionScanIn,
	InventoryActionScanOut,
	InventoryActionAdjustment,
	InventoryActionSet,
	InventoryActionAdd,
	InventoryActionRemove,
	InventoryActionOrderOut,
}

// String implements fmt.Stringer.
func (a InventoryAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known InventoryAction.
func (a InventoryAction) IsValid() bool {
	for _, candidate := range validInventoryActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseInventoryAction converts raw input into an InventoryAction.
func ParseInventoryAction(value string) (InventoryAction, error) {
	for _, candidate := range validInventoryActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory action %q", value)
}

// VariantAdjustMode is the mode accepted by the manual variant inventory endpoint.
type VariantAdjustMode string

const (
	VariantAdjustSet    VariantAdjustMode = "set"
	VariantAdjustAdd    VariantAdjustMode = "add"
	VariantAdjustRemove VariantAdjustMode = "remove"
)

var validVariantAdjustModes = []VariantAdjustMode{
	VariantAdjustSet,
	VariantAdjustAdd,
	VariantAdjustRemove,
}

// String implements fmt.Stringer.
func (m VariantAdjustMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known VariantAdjustMode.
func (m VariantAdjustMode) IsValid() bool {
	for _, candidate := range validVariantAdjustModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseVariantAdjustMode converts raw input into a VariantAdjustMode.
func ParseVariantAdjustMode(value string) (VariantAdjustMode, error) {
	for _, candidate := range validVariantAdjustModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant adjust mode %q", value)
}
