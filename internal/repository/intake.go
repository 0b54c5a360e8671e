package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

type IntakeRepository interface {
	// CreateWithHistory inserts the intake record and its employment entries
	// in a single transaction so a crash can never leave an orphaned parent.
	CreateWithHistory(ctx context.Context, record *model.ClientIntakeRecord, entries []*model.EmploymentHistoryEntry) error
	FindByID(ctx context.Context, id uint) (*model.ClientIntakeRecord, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error)
	ListAll(ctx context.Context) ([]*model.ClientIntakeRecord, error)
	UpdateStatus(ctx context.Context, id uint, status string, adminNotes string) error
	EmploymentHistory(ctx context.Context, intakeID uint) ([]*model.EmploymentHistoryEntry, error)
	ListReviewCandidates(ctx context.Context) ([]*model.ClientIntakeRecord, error)
	MarkReviewRequestSent(ctx context.Context, id uint, at time.Time) error
}

type intakeRepoImpl struct {
	db *gorm.DB
}

func NewIntakeRepository(db *gorm.DB) IntakeRepository {
	return &intakeRepoImpl{db: db}
}

func (r *intakeRepoImpl) CreateWithHistory(ctx context.Context, record *model.ClientIntakeRecord, entries []*model.EmploymentHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for _, entry := range entries {
			entry.IntakeRecordID = record.ID
		}
		return tx.Create(&entries).Error
	})
}

func (r *intakeRepoImpl) FindByID(ctx context.Context, id uint) (*model.ClientIntakeRecord, error) {
	var record model.ClientIntakeRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *intakeRepoImpl) FindByTransactionID(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error) {
	var record model.ClientIntakeRecord
	err := r.db.WithContext(ctx).
		Where("paypal_transaction_id = ?", transactionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *intakeRepoImpl) ListAll(ctx context.Context) ([]*model.ClientIntakeRecord, error) {
	var records []*model.ClientIntakeRecord
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *intakeRepoImpl) UpdateStatus(ctx context.Context, id uint, status string, adminNotes string) error {
	updates := map[string]interface{}{
		"status":      status,
		"admin_notes": adminNotes,
		"updated_at":  time.Now(),
	}
	if status == model.IntakeStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&model.ClientIntakeRecord{}).
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

func (r *intakeRepoImpl) EmploymentHistory(ctx context.Context, intakeID uint) ([]*model.EmploymentHistoryEntry, error) {
	var entries []*model.EmploymentHistoryEntry
	err := r.db.WithContext(ctx).
		Where("intake_record_id = ?", intakeID).
		Order("sort_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *intakeRepoImpl) ListReviewCandidates(ctx context.Context) ([]*model.ClientIntakeRecord, error) {
	var records []*model.ClientIntakeRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", model.IntakeStatusCompleted).
		Where("review_request_sent_at IS NULL").
		Where("email <> ''").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *intakeRepoImpl) MarkReviewRequestSent(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ClientIntakeRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_request_sent_at": at,
			"updated_at":             at,
		}).Error
}
