package router

import (
	"context"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	analyticswriter "github.com/speedcraftlabs/gearstock-backend/internal/analytics/writer"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

type inventoryUpdatedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newInventoryUpdatedHandler(writer Writer, logg *logger.Logger) Handler {
	return &inventoryUpdatedHandler{writer: writer, logg: logg}
}

func (h *inventoryUpdatedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*payloads.InventoryUpdatedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for inventory_updated")
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type": envelope.EventType,
		"product_id": event.ProductID,
	})

	row, err := buildInventoryUpdatedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build stock movement row", err)
		return err
	}

	if err := h.writer.InsertStockMovement(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert stock movement row", err)
		return err
	}

	h.logg.Info(logCtx, "inventory_updated handler inserted stock movement row")
	return nil
}

func buildInventoryUpdatedRow(envelope types.Envelope, event *payloads.InventoryUpdatedEvent) (types.StockMovementRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.StockMovementRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	return types.StockMovementRow{
		EventID:        envelope.EventID,
		EventType:      string(envelope.EventType),
		OccurredAt:     envelope.OccurredAt,
		Action:         string(enums.InventoryActionSet),
		ProductID:      event.ProductID,
		ProductUUID:    stringPtr(event.ProductUUID.String()),
		QuantityChange: int64(event.Change),
		QuantityBefore: int64(event.PreviousQuantity),
		QuantityAfter:  int64(event.NewQuantity),
		Payload:        payloadJSON,
	}, nil
}
