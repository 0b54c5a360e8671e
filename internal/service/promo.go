package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

var ErrPromoCodeNotFound = errors.New("promo code not found")

type CreatePromoCodeInput struct {
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discountType"`
	DiscountValue string     `json:"discountValue"`
	MinPurchase   string     `json:"minPurchase"`
	MaxUses       *int       `json:"maxUses"`
	Active        *bool      `json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

// PromoValidation is the outcome of checking a code against an order amount.
// Valid carries a human-readable Message either way; amounts are decimal
// strings like everywhere else in the money path.
type PromoValidation struct {
	Valid          bool   `json:"valid"`
	Message        string `json:"message"`
	Code           string `json:"code,omitempty"`
	DiscountAmount string `json:"discountAmount,omitempty"`
	FinalAmount    string `json:"finalAmount,omitempty"`
}

type PromoCodeStatistics struct {
	TotalCodes    int            `json:"totalCodes"`
	ActiveCodes   int            `json:"activeCodes"`
	TotalUses     int            `json:"totalUses"`
	UsesPerCode   map[string]int `json:"usesPerCode"`
	ExhaustedCode int            `json:"exhaustedCodes"`
}

type PromoService interface {
	CreatePromoCode(ctx context.Context, input CreatePromoCodeInput) (*model.PromoCode, error)
	UpdatePromoCode(ctx context.Context, id uint, updates map[string]interface{}) error
	DeletePromoCode(ctx context.Context, id uint) error
	ListPromoCodes(ctx context.Context, active *bool) ([]*model.PromoCode, error)
	ValidatePromoCode(ctx context.Context, code, orderAmount string) (*PromoValidation, error)
	RedeemPromoCode(ctx context.Context, code string) error
	PromoStatistics(ctx context.Context) (*PromoCodeStatistics, error)
}

type promoServiceImpl struct {
	promoRepo repository.PromoCodeRepository
	now       Clock
}

func NewPromoService(promoRepo repository.PromoCodeRepository, now Clock) PromoService {
	return &promoServiceImpl{promoRepo: promoRepo, now: now}
}

func (s *promoServiceImpl) CreatePromoCode(ctx context.Context, input CreatePromoCodeInput) (*model.PromoCode, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, &ValidationError{Field: "code", Message: "Code is required"}
	}
	if input.DiscountType != model.DiscountPercentage && input.DiscountType != model.DiscountFixed {
		return nil, &ValidationError{Field: "discountType", Message: "Discount type must be percentage or fixed"}
	}

	value, err := decimal.NewFromString(input.DiscountValue)
	if err != nil || value.IsNegative() {
		return nil, &ValidationError{Field: "discountValue", Message: "Discount value must be a non-negative number"}
	}
	if input.DiscountType == model.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, &ValidationError{Field: "discountValue", Message: "Percentage discount cannot exceed 100"}
	}
	if input.MinPurchase != "" {
		if _, err := decimal.NewFromString(input.MinPurchase); err != nil {
			return nil, &ValidationError{Field: "minPurchase", Message: "Minimum purchase must be a number"}
		}
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	promo := &model.PromoCode{
		Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: value.String(),
		MinPurchase:   input.MinPurchase,
		MaxUses:       input.MaxUses,
		Active:        active,
		ExpiresAt:     input.ExpiresAt,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("create promo code: %w", err)
	}
	return promo, nil
}

func (s *promoServiceImpl) UpdatePromoCode(ctx context.Context, id uint, updates map[string]interface{}) error {
	err := s.promoRepo.Update(ctx, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPromoCodeNotFound
	}
	return err
}

func (s *promoServiceImpl) DeletePromoCode(ctx context.Context, id uint) error {
	if _, err := s.promoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoCodeNotFound
		}
		return err
	}
	return s.promoRepo.Delete(ctx, id)
}

func (s *promoServiceImpl) ListPromoCodes(ctx context.Context, active *bool) ([]*model.PromoCode, error) {
	return s.promoRepo.List(ctx, active)
}

func invalid(message string) *PromoValidation {
	return &PromoValidation{Valid: false, Message: message}
}

// ValidatePromoCode checks a code against an order amount without consuming
// a use. An unknown or unusable code is a valid response with Valid=false,
// not an error; errors are reserved for infrastructure failures.
func (s *promoServiceImpl) ValidatePromoCode(ctx context.Context, code, orderAmount string) (*PromoValidation, error) {
	amount, err := decimal.NewFromString(orderAmount)
	if err != nil || amount.IsNegative() {
		return invalid("Invalid order amount"), nil
	}

	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("Invalid promo code"), nil
		}
		return nil, fmt.Errorf("look up promo code: %w", err)
	}

	if !promo.Active {
		return invalid("This promo code is no longer active"), nil
	}
	if promo.ExpiresAt != nil && s.now().After(*promo.ExpiresAt) {
		return invalid("This promo code has expired"), nil
	}
	if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
		return invalid("This promo code has reached its usage limit"), nil
	}
	if promo.MinPurchase != "" {
		minPurchase, err := decimal.NewFromString(promo.MinPurchase)
		if err == nil && amount.LessThan(minPurchase) {
			return invalid(fmt.Sprintf("This promo code requires a minimum purchase of $%s", minPurchase.StringFixed(2))), nil
		}
	}

	value, err := decimal.NewFromString(promo.DiscountValue)
	if err != nil {
		return nil, fmt.Errorf("promo code %s has malformed discount value %q", promo.Code, promo.DiscountValue)
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case model.DiscountPercentage:
		discount = amount.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	case model.DiscountFixed:
		discount = value
	default:
		return nil, fmt.Errorf("promo code %s has unknown discount type %q", promo.Code, promo.DiscountType)
	}

	// The discount never takes the order below zero.
	if discount.GreaterThan(amount) {
		discount = amount
	}

	return &PromoValidation{
		Valid:          true,
		Message:        "Promo code applied",
		Code:           promo.Code,
		DiscountAmount: discount.StringFixed(2),
		FinalAmount:    amount.Sub(discount).StringFixed(2),
	}, nil
}

func (s *promoServiceImpl) RedeemPromoCode(ctx context.Context, code string) error {
	return s.promoRepo.IncrementUsage(ctx, code)
}

func (s *promoServiceImpl) PromoStatistics(ctx context.Context) (*PromoCodeStatistics, error) {
	codes, err := s.promoRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}

	stats := &PromoCodeStatistics{
		TotalCodes:  len(codes),
		UsesPerCode: make(map[string]int, len(codes)),
	}
	for _, promo := range codes {
		if promo.Active {
			stats.ActiveCodes++
		}
		stats.TotalUses += promo.UsedCount
		stats.UsesPerCode[promo.Code] = promo.UsedCount
		if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
			stats.ExhaustedCode++
		}
	}
	return stats, nil
}
