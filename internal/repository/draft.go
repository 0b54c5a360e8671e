package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

type DraftRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.DraftIntakeRecord, error)
	FindByToken(ctx context.Context, token string) (*model.DraftIntakeRecord, error)
	Create(ctx context.Context, draft *model.DraftIntakeRecord) error
	UpdateFormData(ctx context.Context, email string, formData datatypes.JSON, transactionID string) error
	MarkCompleted(ctx context.Context, email string) error
	MarkReminderSent(ctx context.Context, id uint) error
	ListIncomplete(ctx context.Context) ([]*model.DraftIntakeRecord, error)
}

type draftRepoImpl struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepoImpl{db: db}
}

func (r *draftRepoImpl) FindByEmail(ctx context.Context, email string) (*model.DraftIntakeRecord, error) {
	var draft model.DraftIntakeRecord
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepoImpl) FindByToken(ctx context.Context, token string) (*model.DraftIntakeRecord, error) {
	var draft model.DraftIntakeRecord
	err := r.db.WithContext(ctx).
		Where("resume_token = ?", token).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepoImpl) Create(ctx context.Context, draft *model.DraftIntakeRecord) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepoImpl) UpdateFormData(ctx context.Context, email string, formData datatypes.JSON, transactionID string) error {
	updates := map[string]interface{}{
		"form_data":  formData,
		"updated_at": time.Now(),
	}
	if transactionID != "" {
		updates["paypal_transaction_id"] = transactionID
	}
	return r.db.WithContext(ctx).Model(&model.DraftIntakeRecord{}).
		Where("email = ?", email).
		Updates(updates).Error
}

func (r *draftRepoImpl) MarkCompleted(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&model.DraftIntakeRecord{}).
		Where("email = ?", email).
		Update("completed", true).Error
}

func (r *draftRepoImpl) MarkReminderSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.DraftIntakeRecord{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func (r *draftRepoImpl) ListIncomplete(ctx context.Context) ([]*model.DraftIntakeRecord, error) {
	var drafts []*model.DraftIntakeRecord
	err := r.db.WithContext(ctx).
		Where("completed = ?", false).
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}
