package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/speedcraftlabs/gearstock-backend/internal/analytics/types"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

func TestInventoryScannedHandlerInsertsStockMovementRow(t *testing.T) {
	writer := &fakeWriter{}
	handler := newInventoryScannedHandler(writer, logger.New(logger.Options{ServiceName: "router-inventory-scanned-test"}))
	now := time.Now().UTC()
	variantID := int64(77)
	variantUUID := uuid.New()
	variantName := "Red / XL"
	deviceType := "scanner"
	event := &payloads.InventoryScannedEvent{
		ProductID:        42,
		ProductUUID:      uuid.New(),
		VariantID:        &variantID,
		VariantUUID:      &variantUUID,
		VariantName:      &variantName,
		ItemName:         "LED Light Bar 32in",
		ItemSKU:          "LED-32-RD-XL",
		Action:           enums.InventoryActionScanOut,
		PreviousQuantity: 10,
		NewQuantity:      9,
		Change:           -1,
		DeviceType:       &deviceType,
	}

	envelope := types.Envelope{
		EventID:    "scan-event",
		EventType:  enums.AnalyticsEventInventoryScanned,
		OccurredAt: now,
		Payload:    []byte("{}"),
	}

	if err := handler.Handle(context.Background(), envelope, event); err != nil {
		t.Fatalf("handle inventory_scanned: %v", err)
	}

	if len(writer.stockMovements) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(writer.stockMovements))
	}

	row := writer.stockMovements[0]
	if row.EventID != envelope.EventID {
		t.Fatalf("unexpected event id: %s", row.EventID)
	}
	if row.EventType != string(envelope.EventType) {
		t.Fatalf("unexpected event type: %s", row.EventType)
	}
	if row.OccurredAt != now {
		t.Fatalf("unexpected occurred_at: %s", row.OccurredAt)
	}
	if row.Action != string(enums.InventoryActionScanOut) {
		t.Fatalf("unexpected action: %s", row.Action)
	}
	if row.ProductID != event.ProductID {
		t.Fatalf("unexpected product id: %d", row.ProductID)
	}
	if row.ProductUUID == nil || *row.ProductUUID != event.ProductUUID.String() {
		t.Fatalf("product uuid mismatch: %v", row.ProductUUID)
	}
	if row.VariantID == nil || *row.VariantID != variantID {
		t.Fatalf("variant id mismatch: %v", row.VariantID)
	}
	if row.ItemName == nil || *row.ItemName != event.ItemName {
		t.Fatalf("item name mismatch: %v", row.ItemName)
	}
	if row.ItemSKU == nil || *row.ItemSKU != event.ItemSKU {
		t.Fatalf("item sku mismatch: %v", row.ItemSKU)
	}
	if row.QuantityChange != -1 || row.QuantityBefore != 10 || row.QuantityAfter != 9 {
		t.Fatalf("quantity mismatch: %d %d %d", row.QuantityChange, row.QuantityBefore, row.QuantityAfter)
	}
	if row.DeviceType == nil || *row.DeviceType != deviceType {
		t.Fatalf("device type mismatch: %v", row.DeviceType)
	}

	if !row.Payload.Valid {
		t.Fatal("payload json not valid")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(row.Payload.JSONVal), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["item_sku"] != event.ItemSKU {
		t.Fatalf("payload sku mismatch: %v", payload["item_sku"])
	}
	if payload["action"] != string(event.Action) {
		t.Fatalf("payload action mismatch: %v", payload["action"])
	}
}

func TestInventoryScannedHandlerRejectsWrongPayload(t *testing.T) {
	writer := &fakeWriter{}
	handler := newInventoryScannedHandler(writer, logger.New(logger.Options{ServiceName: "router-inventory-scanned-test"}))
	envelope := types.Envelope{
		EventID:   "scan-event",
		EventType: enums.AnalyticsEventInventoryScanned,
	}
	if err := handler.Handle(context.Background(), envelope, &payloads.OrderCreatedEvent{}); err == nil {
		t.Fatal("expected error for wrong payload type")
	}
	if len(writer.stockMovements) != 0 {
		t.Fatalf("no rows should be written, got %d", len(writer.stockMovements))
	}
}
