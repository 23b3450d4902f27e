package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
)

func TestApplyEffects(t *testing.T) {
	cases := []struct {
		name      string
		adj       Adjustment
		st        state
		wantQty   int
		wantDelta int
		wantStamp bool
		wantLog   bool
	}{
		{name: "scanInAddsCount", adj: ScanIn{Count: 3}, st: state{quantity: 10}, wantQty: 13, wantDelta: 3, wantStamp: true, wantLog: true},
		{name: "scanInNegativeCountIsAbs", adj: ScanIn{Count: -3}, st: state{quantity: 10}, wantQty: 13, wantDelta: 3, wantStamp: true, wantLog: true},
		{name: "scanOutSubtracts", adj: ScanOut{Count: 4}, st: state{quantity: 10}, wantQty: 6, wantDelta: -4, wantStamp: true, wantLog: true},
		{name: "scanOutToExactlyZero", adj: ScanOut{Count: 10}, st: state{quantity: 10}, wantQty: 0, wantDelta: -10, wantStamp: true, wantLog: true},
		{name: "setQuantityOverwrites", adj: SetQuantity{Target: 25}, st: state{quantity: 10}, wantQty: 25, wantDelta: 15, wantLog: true},
		{name: "setQuantityClampsNegativeTarget", adj: SetQuantity{Target: -5}, st: state{quantity: 10}, wantQty: 0, wantDelta: -10, wantLog: true},
		{name: "setQuantityNoopSkipsLedger", adj: SetQuantity{Target: 10}, st: state{quantity: 10}, wantQty: 10, wantDelta: 0, wantLog: false},
		{name: "addIncrements", adj: Add{Amount: 5}, st: state{quantity: 10}, wantQty: 15, wantDelta: 5, wantLog: true},
		{name: "addZeroSkipsLedger", adj: Add{Amount: 0}, st: state{quantity: 10}, wantQty: 10, wantDelta: 0, wantLog: false},
		{name: "removeDecrements", adj: Remove{Amount: 4}, st: state{quantity: 10}, wantQty: 6, wantDelta: -4, wantLog: true},
		{name: "removeClampsAndRecordsAppliedDelta", adj: Remove{Amount: 99}, st: state{quantity: 10}, wantQty: 0, wantDelta: -10, wantLog: true},
		{name: "removeFromZeroSkipsLedger", adj: Remove{Amount: 5}, st: state{quantity: 0}, wantQty: 0, wantDelta: 0, wantLog: false},
		{name: "orderOutDeducts", adj: OrderOut{Count: 4}, st: state{quantity: 10}, wantQty: 6, wantDelta: -4, wantStamp: true, wantLog: true},
		{name: "orderOutBackorderClampsAtZero", adj: OrderOut{Count: 12}, st: state{quantity: 10, allowBackorder: true}, wantQty: 0, wantDelta: -10, wantStamp: true, wantLog: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eff, err := apply(tc.adj, tc.st)
			require.NoError(t, err)
			assert.Equal(t, tc.wantQty, eff.newQuantity)
			assert.Equal(t, tc.wantDelta, eff.change)
			assert.Equal(t, tc.wantStamp, eff.stampScan)
			assert.Equal(t, tc.wantLog, eff.writeLog)
			assert.Equal(t, tc.st.quantity+eff.change, eff.newQuantity)
		})
	}
}

func TestApplyScanOutOverdraw(t *testing.T) {
	_, err := apply(ScanOut{Count: 5}, state{quantity: 2})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Cannot remove 5 items. Only 2 in stock.", typed.Message())
}

func TestApplyOrderOutInsufficient(t *testing.T) {
	_, err := apply(OrderOut{Count: 5}, state{quantity: 2, itemName: "LED Light Bar"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Insufficient stock for LED Light Bar. Available: 2, Requested: 5", typed.Message())
}

func TestParseScanAction(t *testing.T) {
	adj, err := ParseScanAction("scan_in", 2)
	require.NoError(t, err)
	assert.Equal(t, enums.InventoryActionScanIn, adj.action())

	adj, err = ParseScanAction("scan_out", 2)
	require.NoError(t, err)
	assert.Equal(t, enums.InventoryActionScanOut, adj.action())

	_, err = ParseScanAction("set", 2)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidAction, typed.Code())
	assert.Equal(t, "Invalid action. Use 'scan_in' or 'scan_out'", typed.Message())
}

func TestAdjustmentForMode(t *testing.T) {
	adj, action := adjustmentForMode(enums.VariantAdjustAdd, 3)
	assert.Equal(t, Add{Amount: 3}, adj)
	assert.Equal(t, enums.InventoryActionAdd, action)

	adj, action = adjustmentForMode(enums.VariantAdjustRemove, 3)
	assert.Equal(t, Remove{Amount: 3}, adj)
	assert.Equal(t, enums.InventoryActionRemove, action)

	adj, action = adjustmentForMode(enums.VariantAdjustSet, 3)
	assert.Equal(t, SetQuantity{Target: 3}, adj)
	assert.Equal(t, enums.InventoryActionSet, action)
}
