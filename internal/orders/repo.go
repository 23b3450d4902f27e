package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.UUID == uuid.Nil {
		order.UUID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].UUID == uuid.Nil {
			items[i].UUID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&order, "id = ?", orderID).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, query orderListQuery) ([]models.Order, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Order{})
	if query.Status != nil {
		countQuery = countQuery.Where("status = ?", *query.Status)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	if query.Status != nil {
		listQuery = listQuery.Where("status = ?", *query.Status)
	}
	var rows []models.Order
	err := listQuery.
		Order("created_at DESC").
		Order("id DESC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) DeleteOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&models.Order{}).Error
}

func (r *repository) CountOrdersSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", cutoff).
		Count(&count).Error
	return count, err
}

// SumOrderRevenue totals non-cancelled orders.
func (r *repository) SumOrderRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("SUM(total) AS revenue").
		Where("status <> ?", enums.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !row.Revenue.Valid {
		return decimal.Zero, nil
	}
	return row.Revenue.Decimal, nil
}

// CountOrdersByStatus groups the order table by status and also returns the
// overall total so stats need a single pass.
func (r *repository) CountOrdersByStatus(ctx context.Context) (map[enums.OrderStatus]int64, int64, error) {
	var rows []struct {
		Status enums.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[enums.OrderStatus]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}
	return counts, total, nil
}

func (r *repository) CreateDirectOrder(ctx context.Context, order *models.DirectOrder) (*models.DirectOrder, error) {
	if order.UUID == uuid.Nil {
		order.UUID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateDirectOrderItems(ctx context.Context, items []models.DirectOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].UUID == uuid.Nil {
			items[i].UUID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindDirectOrder(ctx context.Context, orderID int64) (*models.DirectOrder, error) {
	var order models.DirectOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetDirectOrderDetail(ctx context.Context, orderID int64) (*models.DirectOrder, error) {
	var order models.DirectOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&order, "id = ?", orderID).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListDirectOrders pages by order_date, the business date, rather than row
// creation time.
func (r *repository) ListDirectOrders(ctx context.Context, query directOrderListQuery) ([]models.DirectOrder, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.DirectOrder{})
	if query.Status != nil {
		countQuery = countQuery.Where("status = ?", *query.Status)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	if query.Status != nil {
		listQuery = listQuery.Where("status = ?", *query.Status)
	}
	var rows []models.DirectOrder
	err := listQuery.
		Order("order_date DESC").
		Order("id DESC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateDirectOrder(ctx context.Context, order *models.DirectOrder) (*models.DirectOrder, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) DeleteDirectOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&models.DirectOrder{}).Error
}

func (r *repository) CountDirectOrdersSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DirectOrder{}).
		Where("order_date >= ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDirectOrdersByStatus(ctx context.Context) (map[enums.DirectOrderStatus]int64, int64, error) {
	var rows []struct {
		Status enums.DirectOrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.DirectOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[enums.DirectOrderStatus]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}
	return counts, total, nil
}
