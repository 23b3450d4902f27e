package router

import (
	"context"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	analyticswriter "github.com/speedcraftlabs/gearstock-backend/internal/analytics/writer"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

type orderCreatedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newOrderCreatedHandler(writer Writer, logg *logger.Logger) Handler {
	return &orderCreatedHandler{writer: writer, logg: logg}
}

func (h *orderCreatedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*payloads.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for order_created")
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type":   envelope.EventType,
		"order_id":     event.OrderID,
		"order_number": event.OrderNumber,
	})

	row, err := buildOrderCreatedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build order fact row", err)
		return err
	}

	if err := h.writer.InsertOrderFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert order fact row", err)
		return err
	}

	h.logg.Info(logCtx, "order_created handler inserted order fact row")
	return nil
}

func buildOrderCreatedRow(envelope types.Envelope, event *payloads.OrderCreatedEvent) (types.OrderFactRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.OrderFactRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	return types.OrderFactRow{
		EventID:       envelope.EventID,
		EventType:     string(envelope.EventType),
		OccurredAt:    envelope.OccurredAt,
		OrderID:       event.OrderID,
		OrderNumber:   event.OrderNumber,
		Status:        string(event.Status),
		ItemCount:     int64Ptr(int64(event.ItemCount)),
		SubtotalCents: int64Ptr(event.SubtotalCents),
		TotalCents:    int64Ptr(event.TotalCents),
		Payload:       payloadJSON,
	}, nil
}
