package enums

import "fmt"

// AnalyticsEventType is the canonical event_type for analytics routing.
type AnalyticsEventType string

const (
	AnalyticsEventInventoryScanned         AnalyticsEventType = "inventory_scanned"
	AnalyticsEventInventoryUpdated         AnalyticsEventType = "inventory_updated"
	AnalyticsEventVariantInventoryAdjusted AnalyticsEventType = "variant_inventory_adjusted"
	AnalyticsEventOrderCreated             AnalyticsEventType = "order_created"
	AnalyticsEventOrderStatusChanged       AnalyticsEventType = "order_status_changed"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventInventoryScanned,
	AnalyticsEventInventoryUpdated,
	AnalyticsEventVariantInventoryAdjusted,
	AnalyticsEventOrderCreated,
	AnalyticsEventOrderStatusChanged,
}

// IsValid reports whether the value matches the canonical analytics event_type enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
