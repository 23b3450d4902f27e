package inventory

import (
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
)

// Adjustment is the closed set of quantity mutations a record accepts. Each
// variant carries only its own fields and knows the ledger action tag its log
// row is written with.
type Adjustment interface {
	action() enums.InventoryAction
}

// ScanIn adds stock from a device scan.
type ScanIn struct {
	Count int
}

// ScanOut removes stock from a device scan and refuses to go negative.
type ScanOut struct {
	Count int
}

// SetQuantity overwrites the on-hand quantity.
type SetQuantity struct {
	Target int
}

// Add increases the quantity by a fixed amount.
type Add struct {
	Amount int
}

// Remove decreases the quantity, clamping at zero.
type Remove struct {
	Amount int
}

// OrderOut deducts stock for an order line, clamping at zero once the
// backorder rule has passed.
type OrderOut struct {
	Count     int
	Reference string
}

func (ScanIn) action() enums.InventoryAction      { return enums.InventoryActionScanIn }
func (ScanOut) action() enums.InventoryAction     { return enums.InventoryActionScanOut }
func (SetQuantity) action() enums.InventoryAction { return enums.InventoryActionAdjustment }
func (Add) action() enums.InventoryAction         { return enums.InventoryActionAdd }
func (Remove) action() enums.InventoryAction      { return enums.InventoryActionRemove }
func (OrderOut) action() enums.InventoryAction    { return enums.InventoryActionOrderOut }

// state is the slice of a record an adjustment needs to resolve.
type state struct {
	quantity       int
	allowBackorder bool
	itemName       string
}

// effect is a resolved adjustment. Change is always the applied delta
// (newQuantity minus the starting quantity), including clamped removals.
type effect struct {
	newQuantity int
	change      int
	stampScan   bool
	writeLog    bool
}

// apply resolves an adjustment against the current state without touching the
// record. Validation runs before any quantity math so a failed check leaves
// the caller's record untouched.
func apply(adj Adjustment, st state) (effect, error) {
	switch a := adj.(type) {
	case ScanIn:
		count := abs(a.Count)
		return effect{
			newQuantity: st.quantity + count,
			change:      count,
			stampScan:   true,
			writeLog:    true,
		}, nil
	case ScanOut:
		count := abs(a.Count)
		if st.quantity-count < 0 {
			return effect{}, pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("Cannot remove %d items. Only %d in stock.", count, st.quantity))
		}
		return effect{
			newQuantity: st.quantity - count,
			change:      -count,
			stampScan:   true,
			writeLog:    true,
		}, nil
	case SetQuantity:
		target := a.Target
		if target < 0 {
			target = 0
		}
		return effect{
			newQuantity: target,
			change:      target - st.quantity,
			writeLog:    target != st.quantity,
		}, nil
	case Add:
		return effect{
			newQuantity: st.quantity + a.Amount,
			change:      a.Amount,
			writeLog:    a.Amount != 0,
		}, nil
	case Remove:
		next := st.quantity - a.Amount
		if next < 0 {
			next = 0
		}
		return effect{
			newQuantity: next,
			change:      next - st.quantity,
			writeLog:    next != st.quantity,
		}, nil
	case OrderOut:
		if st.quantity < a.Count && !st.allowBackorder {
			return effect{}, pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
					st.itemName, st.quantity, a.Count))
		}
		next := st.quantity - a.Count
		if next < 0 {
			next = 0
		}
		return effect{
			newQuantity: next,
			change:      next - st.quantity,
			stampScan:   true,
			writeLog:    true,
		}, nil
	default:
		return effect{}, pkgerrors.New(pkgerrors.CodeInvalidAction,
			fmt.Sprintf("unsupported adjustment %T", adj))
	}
}

// ParseScanAction converts the wire action string from a scan request into an
// adjustment. Only the two device actions are accepted here; manual modes
// arrive through their own endpoints.
func ParseScanAction(value string, quantity int) (Adjustment, error) {
	switch enums.InventoryAction(value) {
	case enums.InventoryActionScanIn:
		return ScanIn{Count: quantity}, nil
	case enums.InventoryActionScanOut:
		return ScanOut{Count: quantity}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAction,
			"Invalid action. Use 'scan_in' or 'scan_out'")
	}
}

// adjustmentForMode maps a manual variant mode to its adjustment. The log row
// keeps the mode name as its action tag.
func adjustmentForMode(mode enums.VariantAdjustMode, quantity int) (Adjustment, enums.InventoryAction) {
	switch mode {
	case enums.VariantAdjustAdd:
		return Add{Amount: quantity}, enums.InventoryActionAdd
	case enums.VariantAdjustRemove:
		return Remove{Amount: quantity}, enums.InventoryActionRemove
	default:
		return SetQuantity{Target: quantity}, enums.InventoryActionSet
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
