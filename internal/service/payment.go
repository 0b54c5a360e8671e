package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"resume-services-backend/internal/client"
	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("terminal order cannot be reopened")
	ErrInvalidOrderAmount = errors.New("invalid order amount")
)

type CreateOrderInput struct {
	PackageName   string
	Amount        string
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	UserID        *uint
}

type CreateOrderResult struct {
	OrderID       uint   `json:"orderId"`
	PaypalOrderID string `json:"paypalOrderId"`
	ApprovalURL   string `json:"approvalUrl"`
}

type MonthRevenue struct {
	Month   string `json:"month"` // "2026-08"
	Revenue string `json:"revenue"`
	Orders  int    `json:"orders"`
}

type OrderStatistics struct {
	Total          int64          `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	RevenueByMonth []MonthRevenue `json:"revenueByMonth"`
}

// RevenueAggregator isolates the revenue-by-month computation so the
// full-scan implementation can be swapped for a materialized rollup without
// touching the payment service's contract.
type RevenueAggregator interface {
	RevenueByMonth(ctx context.Context, months int) ([]MonthRevenue, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	CaptureOrder(ctx context.Context, orderID uint, paypalOrderID string) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	GetAllOrders(ctx context.Context, filters repository.OrderFilters) ([]*model.Order, error)
	GetRecentOrders(ctx context.Context, limit int) ([]*model.Order, error)
	GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
	UpdateOrderCustomer(ctx context.Context, orderID uint, name, email, phone *string) error
	DeleteOrder(ctx context.Context, orderID uint) error
	GetOrderStatistics(ctx context.Context) (*OrderStatistics, error)
	HandleWebhook(ctx context.Context, headers client.WebhookHeaders, body []byte) error
}

type paymentServiceImpl struct {
	paypalClient client.PaypalClient
	orderRepo    repository.OrderRepository
	emails       EmailService
	aggregator   RevenueAggregator
	baseURL      string
	log          zerolog.Logger
}

func NewPaymentService(
	paypalClient client.PaypalClient,
	orderRepo repository.OrderRepository,
	emails EmailService,
	aggregator RevenueAggregator,
	baseURL string,
	log zerolog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		paypalClient: paypalClient,
		orderRepo:    orderRepo,
		emails:       emails,
		aggregator:   aggregator,
		baseURL:      baseURL,
		log:          log,
	}
}

// CreateOrder inserts the local pending order first, then creates the
// matching PayPal order. If the remote call fails the local order stays
// pending; that inconsistency is accepted and visible in the admin listing.
func (s *paymentServiceImpl) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if _, err := decimal.NewFromString(input.Amount); err != nil {
		return nil, ErrInvalidOrderAmount
	}

	currency := input.Currency
	if currency == "" {
		currency = "AUD"
	}

	order := &model.Order{
		UserID:        input.UserID,
		PackageName:   input.PackageName,
		Amount:        input.Amount,
		Currency:      currency,
		Status:        model.OrderStatusPending,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	resp, err := s.paypalClient.CreateOrder(ctx, client.CreateOrderParams{
		Amount:      input.Amount,
		Currency:    currency,
		Description: fmt.Sprintf("All Resume Services - %s", input.PackageName),
		ReturnURL:   fmt.Sprintf("%s/payment/success?orderId=%d", s.baseURL, order.ID),
		CancelURL:   fmt.Sprintf("%s/payment/cancel?orderId=%d", s.baseURL, order.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("paypal api create order: %w", err)
	}

	if err := s.orderRepo.SetPaypalOrderID(ctx, order.ID, resp.OrderID); err != nil {
		return nil, fmt.Errorf("store paypal order id: %w", err)
	}

	return &CreateOrderResult{
		OrderID:       order.ID,
		PaypalOrderID: resp.OrderID,
		ApprovalURL:   resp.ApproveURL,
	}, nil
}

// CaptureOrder captures the approved payment. Success moves the order to
// completed and fires the confirmation emails; failure moves it to failed
// and re-raises the capture error. Email failures never reverse the status
// transition.
func (s *paymentServiceImpl) CaptureOrder(ctx context.Context, orderID uint, paypalOrderID string) (*model.Order, error) {
	capture, err := s.paypalClient.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		if updateErr := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusFailed, ""); updateErr != nil {
			s.log.Error().Err(updateErr).Uint("order_id", orderID).Msg("failed to mark order failed")
		}
		return nil, fmt.Errorf("paypal api capture order: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCompleted, capture.PayerID); err != nil {
		return nil, fmt.Errorf("mark order completed: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	s.sendCompletionEmails(ctx, order)

	return order, nil
}

// sendCompletionEmails is best-effort: failures are logged and alerted inside
// the email service but never surfaced to the capture caller.
func (s *paymentServiceImpl) sendCompletionEmails(ctx context.Context, order *model.Order) {
	data := mailer.OrderEmailData{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PackageName:   order.PackageName,
		Amount:        order.Amount,
		Currency:      order.Currency,
		PaypalOrderID: order.PaypalOrderID,
	}

	if order.CustomerEmail != "" {
		if err := s.emails.SendOrderConfirmation(ctx, data); err != nil {
			s.log.Error().Err(err).Uint("order_id", order.ID).Msg("order confirmation email failed")
		}
	}
	if err := s.emails.SendAdminOrderNotification(ctx, data); err != nil {
		s.log.Error().Err(err).Uint("order_id", order.ID).Msg("admin order notification failed")
	}
}

func (s *paymentServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *paymentServiceImpl) GetAllOrders(ctx context.Context, filters repository.OrderFilters) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, filters)
}

func (s *paymentServiceImpl) GetRecentOrders(ctx context.Context, limit int) ([]*model.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.orderRepo.Recent(ctx, limit)
}

func (s *paymentServiceImpl) GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// UpdateOrderStatus is the admin path. A terminal order is never moved back
// to pending.
func (s *paymentServiceImpl) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	if status == model.OrderStatusPending && order.Terminal() {
		return ErrInvalidTransition
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status, "")
}

func (s *paymentServiceImpl) UpdateOrderCustomer(ctx context.Context, orderID uint, name, email, phone *string) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["customer_name"] = *name
	}
	if email != nil {
		updates["customer_email"] = *email
	}
	if phone != nil {
		updates["customer_phone"] = *phone
	}
	return s.orderRepo.UpdateCustomer(ctx, orderID, updates)
}

func (s *paymentServiceImpl) DeleteOrder(ctx context.Context, orderID uint) error {
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *paymentServiceImpl) GetOrderStatistics(ctx context.Context) (*OrderStatistics, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	revenue, err := s.aggregator.RevenueByMonth(ctx, 12)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}

	return &OrderStatistics{
		Total:          total,
		ByStatus:       counts,
		RevenueByMonth: revenue,
	}, nil
}

type webhookEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID                string `json:"id"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
		Payer struct {
			PayerID string `json:"payer_id"`
		} `json:"payer"`
	} `json:"resource"`
}

// HandleWebhook verifies the signature bundle and applies the event. The
// HTTP layer translates a verification failure into 401 but answers 2xx to
// any post-verification processing error, so PayPal does not retry-storm.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, headers client.WebhookHeaders, body []byte) error {
	valid, err := s.paypalClient.VerifyWebhookSignature(ctx, headers, body)
	if err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}
	if !valid {
		return ErrWebhookSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	s.log.Info().Str("event_type", event.EventType).Str("event_id", event.ID).Msg("paypal webhook received")

	switch event.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		return s.handleCaptureCompleted(ctx, &event)
	case "PAYMENT.CAPTURE.DENIED":
		return s.handleCaptureDenied(ctx, &event)
	default:
		// Unhandled event types are acknowledged and dropped.
		return nil
	}
}

var ErrWebhookSignature = errors.New("invalid webhook signature")

func (s *paymentServiceImpl) handleCaptureCompleted(ctx context.Context, event *webhookEvent) error {
	paypalOrderID := event.Resource.SupplementaryData.RelatedIDs.OrderID
	if paypalOrderID == "" {
		return fmt.Errorf("could not find order_id in webhook payload")
	}

	order, err := s.orderRepo.FindByPaypalOrderID(ctx, paypalOrderID)
	if err != nil {
		return fmt.Errorf("find order for paypal id %s: %w", paypalOrderID, err)
	}
	if order.Terminal() {
		// Capture already applied via the client callback; webhook is a no-op.
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted, event.Resource.Payer.PayerID); err != nil {
		return fmt.Errorf("mark order completed: %w", err)
	}

	order.Status = model.OrderStatusCompleted
	s.sendCompletionEmails(ctx, order)
	return nil
}

func (s *paymentServiceImpl) handleCaptureDenied(ctx context.Context, event *webhookEvent) error {
	paypalOrderID := event.Resource.SupplementaryData.RelatedIDs.OrderID
	if paypalOrderID == "" {
		return fmt.Errorf("could not find order_id in webhook payload")
	}

	order, err := s.orderRepo.FindByPaypalOrderID(ctx, paypalOrderID)
	if err != nil {
		return fmt.Errorf("find order for paypal id %s: %w", paypalOrderID, err)
	}
	if order.Terminal() {
		return nil
	}
	return s.orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusFailed, "")
}

// fullScanAggregator recomputes revenue by scanning completed orders.
// Acceptable while order volume is small; swap for a rollup when it isn't.
type fullScanAggregator struct {
	orderRepo repository.OrderRepository
	now       Clock
}

func NewFullScanAggregator(orderRepo repository.OrderRepository, now Clock) RevenueAggregator {
	return &fullScanAggregator{orderRepo: orderRepo, now: now}
}

func (a *fullScanAggregator) RevenueByMonth(ctx context.Context, months int) ([]MonthRevenue, error) {
	now := a.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	orders, err := a.orderRepo.ListCompletedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		revenue decimal.Decimal
		orders  int
	}
	buckets := make(map[string]*bucket, months)
	for _, order := range orders {
		amount, err := decimal.NewFromString(order.Amount)
		if err != nil {
			// Malformed legacy rows are skipped, not fatal.
			continue
		}
		key := order.CreatedAt.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(amount)
		b.orders++
	}

	series := make([]MonthRevenue, 0, months)
	for i := 0; i < months; i++ {
		month := since.AddDate(0, i, 0).Format("2006-01")
		entry := MonthRevenue{Month: month, Revenue: "0"}
		if b, ok := buckets[month]; ok {
			entry.Revenue = b.revenue.StringFixed(2)
			entry.Orders = b.orders
		}
		series = append(series, entry)
	}
	return series, nil
}
