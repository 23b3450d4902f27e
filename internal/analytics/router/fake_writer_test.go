package router

import (
	"context"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
)

type fakeWriter struct {
	stockMovements []types.StockMovementRow
	orderFacts     []types.OrderFactRow
}

func (f *fakeWriter) InsertStockMovement(_ context.Context, row types.StockMovementRow) error {
	f.stockMovements = append(f.stockMovements, row)
	return nil
}

func (f *fakeWriter) InsertOrderFact(_ context.Context, row types.OrderFactRow) error {
	f.orderFacts = append(f.orderFacts, row)
	return nil
}
