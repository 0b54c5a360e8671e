package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resume-services-backend/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.ClientIntakeRecord{},
		&model.EmploymentHistoryEntry{},
		&model.DraftIntakeRecord{},
		&model.PromoCode{},
	))
	return db
}

func intakeFixture() *model.ClientIntakeRecord {
	return &model.ClientIntakeRecord{
		FirstName: "Jess",
		LastName:  "Nguyen",
		Email:     "jess@example.com",
		Phone:     "0400 000 000",
		Status:    model.IntakeStatusPending,
	}
}

func TestCreateWithHistory_LinksEntriesToParent(t *testing.T) {
	db := testDB(t)
	repo := NewIntakeRepository(db)
	ctx := context.Background()

	record := intakeFixture()
	entries := []*model.EmploymentHistoryEntry{
		{JobTitle: "Site Manager", Employer: "BuildCo", StartDate: "01/2020", EndDate: "Current", EmploymentType: model.EmploymentFullTime, SortOrder: 0},
		{JobTitle: "Foreman", Employer: "BuildCo", StartDate: "03/2016", EndDate: "12/2019", EmploymentType: model.EmploymentFullTime, SortOrder: 1},
	}
	require.NoError(t, repo.CreateWithHistory(ctx, record, entries))
	require.NotZero(t, record.ID)

	stored, err := repo.EmploymentHistory(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Site Manager", stored[0].JobTitle)
	assert.Equal(t, record.ID, stored[0].IntakeRecordID)
	assert.Equal(t, "Foreman", stored[1].JobTitle)
}

func TestEmploymentHistory_OrderedBySortOrder(t *testing.T) {
	db := testDB(t)
	repo := NewIntakeRepository(db)
	ctx := context.Background()

	record := intakeFixture()
	// Inserted out of order; the read side must sort.
	entries := []*model.EmploymentHistoryEntry{
		{JobTitle: "Third", Employer: "C", StartDate: "x", EndDate: "x", EmploymentType: model.EmploymentCasual, SortOrder: 2},
		{JobTitle: "First", Employer: "A", StartDate: "x", EndDate: "x", EmploymentType: model.EmploymentCasual, SortOrder: 0},
		{JobTitle: "Second", Employer: "B", StartDate: "x", EndDate: "x", EmploymentType: model.EmploymentCasual, SortOrder: 1},
	}
	require.NoError(t, repo.CreateWithHistory(ctx, record, entries))

	stored, err := repo.EmploymentHistory(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "First", stored[0].JobTitle)
	assert.Equal(t, "Second", stored[1].JobTitle)
	assert.Equal(t, "Third", stored[2].JobTitle)
}

func TestUpdateStatus_SetsCompletedAt(t *testing.T) {
	db := testDB(t)
	repo := NewIntakeRepository(db)
	ctx := context.Background()

	record := intakeFixture()
	require.NoError(t, repo.CreateWithHistory(ctx, record, nil))

	require.NoError(t, repo.UpdateStatus(ctx, record.ID, model.IntakeStatusCompleted, "all done"))

	reloaded, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, model.IntakeStatusCompleted, reloaded.Status)
	assert.Equal(t, "all done", reloaded.AdminNotes)
	assert.NotNil(t, reloaded.CompletedAt)
}

func TestListReviewCandidates_FiltersSentAndIncomplete(t *testing.T) {
	db := testDB(t)
	repo := NewIntakeRepository(db)
	ctx := context.Background()

	eligible := intakeFixture()
	require.NoError(t, repo.CreateWithHistory(ctx, eligible, nil))
	require.NoError(t, repo.UpdateStatus(ctx, eligible.ID, model.IntakeStatusCompleted, ""))

	pending := intakeFixture()
	pending.Email = "pending@example.com"
	require.NoError(t, repo.CreateWithHistory(ctx, pending, nil))

	alreadySent := intakeFixture()
	alreadySent.Email = "sent@example.com"
	require.NoError(t, repo.CreateWithHistory(ctx, alreadySent, nil))
	require.NoError(t, repo.UpdateStatus(ctx, alreadySent.ID, model.IntakeStatusCompleted, ""))
	require.NoError(t, repo.MarkReviewRequestSent(ctx, alreadySent.ID, testClockTime()))

	candidates, err := repo.ListReviewCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, eligible.ID, candidates[0].ID)
}

func TestUpdateStatus_UnknownRecord(t *testing.T) {
	db := testDB(t)
	repo := NewIntakeRepository(db)

	err := repo.UpdateStatus(context.Background(), 9999, model.IntakeStatusCompleted, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
