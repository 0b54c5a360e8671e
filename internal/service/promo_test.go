package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

type mockPromoRepo struct {
	findByCodeFn func(ctx context.Context, code string) (*model.PromoCode, error)
	listFn       func(ctx context.Context, active *bool) ([]*model.PromoCode, error)
	createFn     func(ctx context.Context, code *model.PromoCode) error
	incremented  []string
}

func (m *mockPromoRepo) Create(ctx context.Context, code *model.PromoCode) error {
	if m.createFn == nil {
		code.ID = 1
		return nil
	}
	return m.createFn(ctx, code)
}

func (m *mockPromoRepo) FindByID(ctx context.Context, id uint) (*model.PromoCode, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if m.findByCodeFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByCodeFn(ctx, code)
}

func (m *mockPromoRepo) List(ctx context.Context, active *bool) ([]*model.PromoCode, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, active)
}

func (m *mockPromoRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockPromoRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

func (m *mockPromoRepo) IncrementUsage(ctx context.Context, code string) error {
	m.incremented = append(m.incremented, code)
	return nil
}

var _ repository.PromoCodeRepository = (*mockPromoRepo)(nil)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testNow() time.Time {
	return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
}

func promoFixture(mutate func(*model.PromoCode)) *model.PromoCode {
	promo := &model.PromoCode{
		ID:            1,
		Code:          "SAVE10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: "10",
		Active:        true,
	}
	if mutate != nil {
		mutate(promo)
	}
	return promo
}

func newPromoService(repo *mockPromoRepo) PromoService {
	return NewPromoService(repo, fixedClock(testNow()))
}

func TestValidatePromoCode_PercentageDiscount(t *testing.T) {
	repo := &mockPromoRepo{
		findByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promoFixture(nil), nil
		},
	}

	result, err := newPromoService(repo).ValidatePromoCode(context.Background(), "save10", "100")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "10.00", result.DiscountAmount)
	assert.Equal(t, "90.00", result.FinalAmount)
}

func TestValidatePromoCode_FixedDiscountCappedAtAmount(t *testing.T) {
	repo := &mockPromoRepo{
		findByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promoFixture(func(p *model.PromoCode) {
				p.DiscountType = model.DiscountFixed
				p.DiscountValue = "50"
			}), nil
		},
	}

	result, err := newPromoService(repo).ValidatePromoCode(context.Background(), "SAVE10", "30")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "30.00", result.DiscountAmount)
	assert.Equal(t, "0.00", result.FinalAmount)
}

func TestValidatePromoCode_Rejections(t *testing.T) {
	past := testNow().Add(-time.Hour)
	maxUses := 5

	tests := []struct {
		name    string
		mutate  func(*model.PromoCode)
		amount  string
		message string
	}{
		{
			name:    "inactive",
			mutate:  func(p *model.PromoCode) { p.Active = false },
			amount:  "100",
			message: "no longer active",
		},
		{
			name:    "expired",
			mutate:  func(p *model.PromoCode) { p.ExpiresAt = &past },
			amount:  "100",
			message: "expired",
		},
		{
			name: "usage limit reached",
			mutate: func(p *model.PromoCode) {
				p.MaxUses = &maxUses
				p.UsedCount = 5
			},
			amount:  "100",
			message: "usage limit",
		},
		{
			name:    "below minimum purchase",
			mutate:  func(p *model.PromoCode) { p.MinPurchase = "150" },
			amount:  "100",
			message: "minimum purchase of $150.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockPromoRepo{
				findByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
					return promoFixture(tc.mutate), nil
				},
			}

			result, err := newPromoService(repo).ValidatePromoCode(context.Background(), "SAVE10", tc.amount)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Contains(t, result.Message, tc.message)
		})
	}
}

func TestValidatePromoCode_UnknownCodeIsInvalidNotError(t *testing.T) {
	result, err := newPromoService(&mockPromoRepo{}).ValidatePromoCode(context.Background(), "NOPE", "100")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid promo code", result.Message)
}

func TestCreatePromoCode_Validation(t *testing.T) {
	svc := newPromoService(&mockPromoRepo{})

	_, err := svc.CreatePromoCode(context.Background(), CreatePromoCodeInput{
		Code: "X", DiscountType: "bogus", DiscountValue: "10",
	})
	assert.Error(t, err)

	_, err = svc.CreatePromoCode(context.Background(), CreatePromoCodeInput{
		Code: "X", DiscountType: model.DiscountPercentage, DiscountValue: "120",
	})
	assert.Error(t, err)

	promo, err := svc.CreatePromoCode(context.Background(), CreatePromoCodeInput{
		Code: " welcome20 ", DiscountType: model.DiscountPercentage, DiscountValue: "20",
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME20", promo.Code)
	assert.True(t, promo.Active)
}

func TestPromoStatistics(t *testing.T) {
	two := 2
	repo := &mockPromoRepo{
		listFn: func(ctx context.Context, active *bool) ([]*model.PromoCode, error) {
			return []*model.PromoCode{
				promoFixture(func(p *model.PromoCode) { p.UsedCount = 3 }),
				promoFixture(func(p *model.PromoCode) {
					p.ID = 2
					p.Code = "GONE"
					p.Active = false
					p.MaxUses = &two
					p.UsedCount = 2
				}),
			}, nil
		},
	}

	stats, err := newPromoService(repo).PromoStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCodes)
	assert.Equal(t, 1, stats.ActiveCodes)
	assert.Equal(t, 5, stats.TotalUses)
	assert.Equal(t, 1, stats.ExhaustedCode)
	assert.Equal(t, 3, stats.UsesPerCode["SAVE10"])
}
