package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume-services-backend/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpsertLeadMagnetSubscriber(ctx context.Context, sub *model.LeadMagnetSubscriber) error
	ListLeadMagnetSubscribers(ctx context.Context) ([]*model.LeadMagnetSubscriber, error)
}

type contactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepoImpl{db: db}
}

func (r *contactRepoImpl) Create(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactRepoImpl) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	var submissions []*model.ContactSubmission
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *contactRepoImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&model.ContactSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepoImpl) UpsertLeadMagnetSubscriber(ctx context.Context, sub *model.LeadMagnetSubscriber) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       sub.Name,
			"source":     sub.Source,
			"updated_at": time.Now(),
		}),
	}).Create(sub).Error
}

func (r *contactRepoImpl) ListLeadMagnetSubscribers(ctx context.Context) ([]*model.LeadMagnetSubscriber, error) {
	var subs []*model.LeadMagnetSubscriber
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
