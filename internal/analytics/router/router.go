package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

var ErrUnsupportedEventType = errors.New("unsupported analytics event type")

// Writer delivers BigQuery rows produced by analytics handlers.
type Writer interface {
	InsertStockMovement(ctx context.Context, row types.StockMovementRow) error
	InsertOrderFact(ctx context.Context, row types.OrderFactRow) error
}

// Handler receives an envelope plus a decoded event payload.
type Handler interface {
	Handle(ctx context.Context, envelope types.Envelope, payload any) error
}

type handlerEntry struct {
	factory func() any
	handler Handler
}

// Router dispatches analytics envelopes to the configured handler per event type.
type Router struct {
	handlers map[enums.AnalyticsEventType]handlerEntry
	logg     *logger.Logger
}

// NewRouter wires the default handlers and allows overrides for specific events.
func NewRouter(writer Writer, logg *logger.Logger, overrides map[enums.AnalyticsEventType]Handler) (*Router, error) {
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	entries := map[enums.AnalyticsEventType]handlerEntry{
		enums.AnalyticsEventInventoryScanned: {
			factory: func() any { return &payloads.InventoryScannedEvent{} },
			handler: newInventoryScannedHandler(writer, logg),
		},
		enums.AnalyticsEventInventoryUpdated: {
			factory: func() any { return &payloads.InventoryUpdatedEvent{} },
			handler: newInventoryUpdatedHandler(writer, logg),
		},
		enums.AnalyticsEventVariantInventoryAdjusted: {
			factory: func() any { return &payloads.VariantInventoryAdjustedEvent{} },
			handler: newVariantInventoryAdjustedHandler(writer, logg),
		},
		enums.AnalyticsEventOrderCreated: {
			factory: func() any { return &payloads.OrderCreatedEvent{} },
			handler: newOrderCreatedHandler(writer, logg),
		},
		enums.AnalyticsEventOrderStatusChanged: {
			factory: func() any { return &payloads.OrderStatusChangedEvent{} },
			handler: newOrderStatusChangedHandler(writer, logg),
		},
	}

	for event, custom := range overrides {
		entry, ok := entries[event]
		if !ok || custom == nil {
			continue
		}
		entry.handler = custom
		entries[event] = entry
	}

	return &Router{
		handlers: entries,
		logg:     logg,
	}, nil
}

// Handle dispatches the incoming envelope to the configured handler.
func (r *Router) Handle(ctx context.Context, envelope types.Envelope) error {
	entry, ok := r.handlers[envelope.EventType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, envelope.EventType)
	}
	payload := entry.factory()
	if len(envelope.Payload) == 0 {
		return fmt.Errorf("empty payload for %s", envelope.EventType)
	}
	if err := json.Unmarshal(envelope.Payload, payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}

	return entry.handler.Handle(ctx, envelope, payload)
}
