package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateProduct     OutboxAggregateType = "product"
	AggregateVariant     OutboxAggregateType = "variant"
	AggregateOrder       OutboxAggregateType = "order"
	AggregateDirectOrder OutboxAggregateType = "direct_order"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateProduct,
	AggregateVariant,
	AggregateOrder,
	AggregateDirectOrder,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventInventoryScanned         OutboxEventType = "inventory_scanned"
	EventInventoryUpdated         OutboxEventType = "inventory_updated"
	EventVariantInventoryAdjusted OutboxEventType = "variant_inventory_adjusted"
	EventProductCreated           OutboxEventType = "product_created"
	EventVariantCreated           OutboxEventType = "variant_created"
	EventOrderCreated             OutboxEventType = "order_created"
	EventOrderStatusChanged       OutboxEventType = "order_status_changed"
	EventDirectOrderCreated       OutboxEventType = "direct_order_created"
)

var validOutboxEventTypes = []OutboxEventType{
	EventInventoryScanned,
	EventInventoryUpdated,
	EventVariantInventoryAdjusted,
	EventProductCreated,
	EventVariantCreated,
	EventOrderCreated,
	EventOrderStatusChanged,
	EventDirectOrderCreated,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

// OutboxDLQErrorReason records why a row was parked in the dead letter table.
type OutboxDLQErrorReason string

const (
	OutboxDLQReasonMaxAttempts  OutboxDLQErrorReason = "max_attempts"
	OutboxDLQReasonNonRetryable OutboxDLQErrorReason = "non_retryable"
)

var validOutboxDLQErrorReasons = []OutboxDLQErrorReason{
	OutboxDLQReasonMaxAttempts,
	OutboxDLQReasonNonRetryable,
}

// IsValid reports whether the value is a known OutboxDLQErrorReason.
func (r OutboxDLQErrorReason) IsValid() bool {
	for _, candidate := range validOutboxDLQErrorReasons {
		if candidate == r {
			return true
		}
	}
	return false
}
