package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"resume-services-backend/internal/model"
)

// BackupResult reports what a backup run captured and where it landed.
type BackupResult struct {
	File      string         `json:"file"`
	Timestamp string         `json:"timestamp"`
	Tables    map[string]int `json:"tables"`
}

type BackupService interface {
	RunBackup(ctx context.Context) (*BackupResult, error)
}

type backupServiceImpl struct {
	db  *gorm.DB
	dir string
	now Clock
	log zerolog.Logger
}

func NewBackupService(db *gorm.DB, dir string, now Clock, log zerolog.Logger) BackupService {
	return &backupServiceImpl{db: db, dir: dir, now: now, log: log}
}

func dumpTable[T any](ctx context.Context, db *gorm.DB, dest map[string]json.RawMessage, counts map[string]int, name string) error {
	var rows []T
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("dump %s: %w", name, err)
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	dest[name] = raw
	counts[name] = len(rows)
	return nil
}

// RunBackup serializes the core business tables into one timestamped JSON
// file under the configured directory. It is a logical snapshot for disaster
// recovery, not a replacement for database-level backups.
func (s *backupServiceImpl) RunBackup(ctx context.Context) (*BackupResult, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	tables := make(map[string]json.RawMessage)
	counts := make(map[string]int)

	if err := dumpTable[model.Order](ctx, s.db, tables, counts, "orders"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.ClientIntakeRecord](ctx, s.db, tables, counts, "client_intake_records"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.EmploymentHistoryEntry](ctx, s.db, tables, counts, "employment_history_entries"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.DraftIntakeRecord](ctx, s.db, tables, counts, "draft_intake_records"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.PromoCode](ctx, s.db, tables, counts, "promo_codes"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.ContactSubmission](ctx, s.db, tables, counts, "contact_submissions"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.LeadMagnetSubscriber](ctx, s.db, tables, counts, "lead_magnet_subscribers"); err != nil {
		return nil, err
	}
	if err := dumpTable[model.EmailLog](ctx, s.db, tables, counts, "email_logs"); err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format("20060102-150405")
	payload := map[string]interface{}{
		"createdAt": s.now().UTC(),
		"tables":    tables,
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	file := filepath.Join(s.dir, fmt.Sprintf("backup-%s.json", stamp))
	if err := os.WriteFile(file, raw, 0o640); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	s.log.Info().Str("file", file).Msg("backup written")
	return &BackupResult{File: file, Timestamp: stamp, Tables: counts}, nil
}
