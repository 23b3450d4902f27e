package enums

import "fmt"

// OrderStatus maps to the status column on orders.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPacked     OrderStatus = "packed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatuses returns the closed status set in transition order.
func ValidOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// DirectOrderStatus maps to the status column on direct orders. Direct orders
// skip the packing stage, so the set is one state narrower than OrderStatus.
type DirectOrderStatus string

const (
	DirectOrderStatusPending    DirectOrderStatus = "pending"
	DirectOrderStatusProcessing DirectOrderStatus = "processing"
	DirectOrderStatusShipped    DirectOrderStatus = "shipped"
	DirectOrderStatusDelivered  DirectOrderStatus = "delivered"
	DirectOrderStatusCancelled  DirectOrderStatus = "cancelled"
)

var validDirectOrderStatuses = []DirectOrderStatus{
	DirectOrderStatusPending,
	DirectOrderStatusProcessing,
	DirectOrderStatusShipped,
	DirectOrderStatusDelivered,
	DirectOrderStatusCancelled,
}

// ValidDirectOrderStatuses returns the closed status set in transition order.
func ValidDirectOrderStatuses() []DirectOrderStatus {
	out := make([]DirectOrderStatus, len(validDirectOrderStatuses))
	copy(out, validDirectOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (s DirectOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DirectOrderStatus.
func (s DirectOrderStatus) IsValid() bool {
	for _, candidate := range validDirectOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDirectOrderStatus converts raw input into a DirectOrderStatus.
func ParseDirectOrderStatus(value string) (DirectOrderStatus, error) {
	for _, candidate := range validDirectOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid direct order status %q", value)
}
