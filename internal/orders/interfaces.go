package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

// Repository defines persistence operations for order and direct order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, orderID int64) (*models.Order, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, query orderListQuery) ([]models.Order, int64, error)
	UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	CountOrdersSince(ctx context.Context, cutoff time.Time) (int64, error)
	SumOrderRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrdersByStatus(ctx context.Context) (map[enums.OrderStatus]int64, int64, error)

	CreateDirectOrder(ctx context.Context, order *models.DirectOrder) (*models.DirectOrder, error)
	CreateDirectOrderItems(ctx context.Context, items []models.DirectOrderItem) error
	FindDirectOrder(ctx context.Context, orderID int64) (*models.DirectOrder, error)
	GetDirectOrderDetail(ctx context.Context, orderID int64) (*models.DirectOrder, error)
	ListDirectOrders(ctx context.Context, query directOrderListQuery) ([]models.DirectOrder, int64, error)
	UpdateDirectOrder(ctx context.Context, order *models.DirectOrder) (*models.DirectOrder, error)
	DeleteDirectOrder(ctx context.Context, orderID int64) error
	CountDirectOrdersSince(ctx context.Context, cutoff time.Time) (int64, error)
	CountDirectOrdersByStatus(ctx context.Context) (map[enums.DirectOrderStatus]int64, int64, error)
}

// orderListQuery narrows and pages the order list. Offset and limit arrive
// pre-normalized from the service.
type orderListQuery struct {
	Status *enums.OrderStatus
	Offset int
	Limit  int
}

type directOrderListQuery struct {
	Status *enums.DirectOrderStatus
	Offset int
	Limit  int
}
