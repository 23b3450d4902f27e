package router

import (
	"context"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	analyticswriter "github.com/speedcraftlabs/gearstock-backend/internal/analytics/writer"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

type inventoryScannedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newInventoryScannedHandler(writer Writer, logg *logger.Logger) Handler {
	return &inventoryScannedHandler{writer: writer, logg: logg}
}

func (h *inventoryScannedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*payloads.InventoryScannedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for inventory_scanned")
	}

	fields := map[string]any{
		"event_type": envelope.EventType,
		"product_id": event.ProductID,
		"action":     event.Action,
	}
	if event.VariantID != nil {
		fields["variant_id"] = *event.VariantID
	}
	logCtx := h.logg.WithFields(ctx, fields)

	row, err := buildInventoryScannedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build stock movement row", err)
		return err
	}

	if err := h.writer.InsertStockMovement(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert stock movement row", err)
		return err
	}

	h.logg.Info(logCtx, "inventory_scanned handler inserted stock movement row")
	return nil
}

func buildInventoryScannedRow(envelope types.Envelope, event *payloads.InventoryScannedEvent) (types.StockMovementRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.StockMovementRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	return types.StockMovementRow{
		EventID:        envelope.EventID,
		EventType:      string(envelope.EventType),
		OccurredAt:     envelope.OccurredAt,
		Action:         string(event.Action),
		ProductID:      event.ProductID,
		ProductUUID:    stringPtr(event.ProductUUID.String()),
		VariantID:      event.VariantID,
		ItemName:       stringPtr(event.ItemName),
		ItemSKU:        stringPtr(event.ItemSKU),
		QuantityChange: int64(event.Change),
		QuantityBefore: int64(event.PreviousQuantity),
		QuantityAfter:  int64(event.NewQuantity),
		DeviceType:     event.DeviceType,
		Payload:        payloadJSON,
	}, nil
}
