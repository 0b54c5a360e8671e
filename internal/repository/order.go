package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

// OrderFilters narrows the admin order listing. Zero values mean "no filter".
type OrderFilters struct {
	Status    string
	Search    string // matched against customer name/email and package name
	StartDate *time.Time
	EndDate   *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error)
	SetPaypalOrderID(ctx context.Context, id uint, paypalOrderID string) error
	UpdateStatus(ctx context.Context, id uint, status string, paypalPayerID string) error
	UpdateCustomer(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters OrderFilters) ([]*model.Order, error)
	Recent(ctx context.Context, limit int) ([]*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Order, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	ListCompletedSince(ctx context.Context, since time.Time) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("paypal_order_id = ?", paypalOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) SetPaypalOrderID(ctx context.Context, id uint, paypalOrderID string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("paypal_order_id", paypalOrderID).Error
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, id uint, status string, paypalPayerID string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if paypalPayerID != "" {
		updates["paypal_payer_id"] = paypalPayerID
	}

	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) UpdateCustomer(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

func (r *orderRepoImpl) List(ctx context.Context, filters OrderFilters) ([]*model.Order, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where(
			"customer_name LIKE ? OR customer_email LIKE ? OR package_name LIKE ?",
			like, like, like,
		)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	var orders []*model.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoImpl) Recent(ctx context.Context, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *orderRepoImpl) ListCompletedSince(ctx context.Context, since time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", model.OrderStatusCompleted).
		Where("created_at >= ?", since).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
