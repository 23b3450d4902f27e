package router

import (
	"context"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	analyticswriter "github.com/speedcraftlabs/gearstock-backend/internal/analytics/writer"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

type variantInventoryAdjustedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newVariantInventoryAdjustedHandler(writer Writer, logg *logger.Logger) Handler {
	return &variantInventoryAdjustedHandler{writer: writer, logg: logg}
}

func (h *variantInventoryAdjustedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*payloads.VariantInventoryAdjustedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for variant_inventory_adjusted")
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type": envelope.EventType,
		"product_id": event.ProductID,
		"variant_id": event.VariantID,
		"mode":       event.Mode,
	})

	row, err := buildVariantAdjustedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build stock movement row", err)
		return err
	}

	if err := h.writer.InsertStockMovement(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert stock movement row", err)
		return err
	}

	h.logg.Info(logCtx, "variant_inventory_adjusted handler inserted stock movement row")
	return nil
}

func buildVariantAdjustedRow(envelope types.Envelope, event *payloads.VariantInventoryAdjustedEvent) (types.StockMovementRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.StockMovementRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	variantID := event.VariantID
	return types.StockMovementRow{
		EventID:        envelope.EventID,
		EventType:      string(envelope.EventType),
		OccurredAt:     envelope.OccurredAt,
		Action:         string(event.Mode),
		ProductID:      event.ProductID,
		VariantID:      &variantID,
		QuantityChange: int64(event.Change),
		QuantityBefore: int64(event.PreviousQuantity),
		QuantityAfter:  int64(event.NewQuantity),
		Reason:         event.Reason,
		Payload:        payloadJSON,
	}, nil
}
