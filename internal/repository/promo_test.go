package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-services-backend/internal/model"
)

func TestPromoCode_StoredUppercased(t *testing.T) {
	db := testDB(t)
	repo := NewPromoCodeRepository(db)
	ctx := context.Background()

	promo := &model.PromoCode{
		Code:          "save10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: "10",
		Active:        true,
	}
	require.NoError(t, repo.Create(ctx, promo))

	// Lookup is case-insensitive because both sides are uppercased.
	found, err := repo.FindByCode(ctx, "Save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", found.Code)
}

func TestIncrementUsage_Accumulates(t *testing.T) {
	db := testDB(t)
	repo := NewPromoCodeRepository(db)
	ctx := context.Background()

	promo := &model.PromoCode{
		Code:          "SAVE10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: "10",
		Active:        true,
	}
	require.NoError(t, repo.Create(ctx, promo))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementUsage(ctx, "save10"))
	}

	reloaded, err := repo.FindByID(ctx, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.UsedCount)
}

func TestPromoList_ActiveFilter(t *testing.T) {
	db := testDB(t)
	repo := NewPromoCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.PromoCode{Code: "LIVE", DiscountType: model.DiscountFixed, DiscountValue: "5", Active: true}))

	dead := &model.PromoCode{Code: "DEAD", DiscountType: model.DiscountFixed, DiscountValue: "5", Active: true}
	require.NoError(t, repo.Create(ctx, dead))
	require.NoError(t, repo.Update(ctx, dead.ID, map[string]interface{}{"active": false}))

	active := true
	codes, err := repo.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "LIVE", codes[0].Code)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
