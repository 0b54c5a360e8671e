package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

type EmailLogRepository interface {
	Create(ctx context.Context, log *model.EmailLog) error
	Recent(ctx context.Context, limit int) ([]*model.EmailLog, error)
	ByType(ctx context.Context, emailType string, limit int) ([]*model.EmailLog, error)
	ByRecipient(ctx context.Context, email string, limit int) ([]*model.EmailLog, error)
	Since(ctx context.Context, since time.Time) ([]*model.EmailLog, error)
}

type emailLogRepoImpl struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepoImpl{db: db}
}

func (r *emailLogRepoImpl) Create(ctx context.Context, log *model.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *emailLogRepoImpl) Recent(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	var logs []*model.EmailLog
	err := r.db.WithContext(ctx).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *emailLogRepoImpl) ByType(ctx context.Context, emailType string, limit int) ([]*model.EmailLog, error) {
	var logs []*model.EmailLog
	err := r.db.WithContext(ctx).
		Where("email_type = ?", emailType).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *emailLogRepoImpl) ByRecipient(ctx context.Context, email string, limit int) ([]*model.EmailLog, error) {
	var logs []*model.EmailLog
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *emailLogRepoImpl) Since(ctx context.Context, since time.Time) ([]*model.EmailLog, error) {
	var logs []*model.EmailLog
	err := r.db.WithContext(ctx).
		Where("sent_at >= ?", since).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
