package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, code *model.PromoCode) error
	FindByID(ctx context.Context, id uint) (*model.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context, active *bool) ([]*model.PromoCode, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IncrementUsage(ctx context.Context, code string) error
}

type promoCodeRepoImpl struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &promoCodeRepoImpl{db: db}
}

func (r *promoCodeRepoImpl) Create(ctx context.Context, code *model.PromoCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *promoCodeRepoImpl) FindByID(ctx context.Context, id uint) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoCodeRepoImpl) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoCodeRepoImpl) List(ctx context.Context, active *bool) ([]*model.PromoCode, error) {
	query := r.db.WithContext(ctx).Model(&model.PromoCode{})
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var codes []*model.PromoCode
	if err := query.Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *promoCodeRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if code, ok := updates["code"].(string); ok {
		updates["code"] = strings.ToUpper(code)
	}
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&model.PromoCode{}).
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

func (r *promoCodeRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PromoCode{}, id).Error
}

// IncrementUsage bumps the counter atomically in the database so concurrent
// redemptions cannot lose updates.
func (r *promoCodeRepoImpl) IncrementUsage(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Model(&model.PromoCode{}).
		Where("code = ?", strings.ToUpper(code)).
		Update("used_count", gorm.Expr("used_count + ?", 1)).Error
}
