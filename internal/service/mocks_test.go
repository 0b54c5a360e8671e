package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resume-services-backend/internal/client"
	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

// Hand-rolled mocks with per-method function fields. A nil field means the
// test does not expect that call; the zero-value return makes that obvious.

type mockOrderRepo struct {
	createFn             func(ctx context.Context, order *model.Order) error
	findByIDFn           func(ctx context.Context, id uint) (*model.Order, error)
	findByPaypalFn       func(ctx context.Context, paypalOrderID string) (*model.Order, error)
	setPaypalOrderIDFn   func(ctx context.Context, id uint, paypalOrderID string) error
	updateStatusFn       func(ctx context.Context, id uint, status, payerID string) error
	updateCustomerFn     func(ctx context.Context, id uint, updates map[string]interface{}) error
	deleteFn             func(ctx context.Context, id uint) error
	listFn               func(ctx context.Context, filters repository.OrderFilters) ([]*model.Order, error)
	recentFn             func(ctx context.Context, limit int) ([]*model.Order, error)
	listByUserFn         func(ctx context.Context, userID uint) ([]*model.Order, error)
	countByStatusFn      func(ctx context.Context) (map[string]int64, error)
	listCompletedSinceFn func(ctx context.Context, since time.Time) ([]*model.Order, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	if m.createFn == nil {
		order.ID = 1
		return nil
	}
	return m.createFn(ctx, order)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	if m.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockOrderRepo) FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	if m.findByPaypalFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByPaypalFn(ctx, paypalOrderID)
}

func (m *mockOrderRepo) SetPaypalOrderID(ctx context.Context, id uint, paypalOrderID string) error {
	if m.setPaypalOrderIDFn == nil {
		return nil
	}
	return m.setPaypalOrderIDFn(ctx, id, paypalOrderID)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uint, status, payerID string) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status, payerID)
}

func (m *mockOrderRepo) UpdateCustomer(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.updateCustomerFn == nil {
		return nil
	}
	return m.updateCustomerFn(ctx, id, updates)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockOrderRepo) List(ctx context.Context, filters repository.OrderFilters) ([]*model.Order, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, filters)
}

func (m *mockOrderRepo) Recent(ctx context.Context, limit int) ([]*model.Order, error) {
	if m.recentFn == nil {
		return nil, nil
	}
	return m.recentFn(ctx, limit)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	if m.listByUserFn == nil {
		return nil, nil
	}
	return m.listByUserFn(ctx, userID)
}

func (m *mockOrderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if m.countByStatusFn == nil {
		return map[string]int64{}, nil
	}
	return m.countByStatusFn(ctx)
}

func (m *mockOrderRepo) ListCompletedSince(ctx context.Context, since time.Time) ([]*model.Order, error) {
	if m.listCompletedSinceFn == nil {
		return nil, nil
	}
	return m.listCompletedSinceFn(ctx, since)
}

type mockIntakeRepo struct {
	createWithHistoryFn     func(ctx context.Context, record *model.ClientIntakeRecord, entries []*model.EmploymentHistoryEntry) error
	findByIDFn              func(ctx context.Context, id uint) (*model.ClientIntakeRecord, error)
	findByTransactionIDFn   func(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error)
	listAllFn               func(ctx context.Context) ([]*model.ClientIntakeRecord, error)
	updateStatusFn          func(ctx context.Context, id uint, status, adminNotes string) error
	employmentHistoryFn     func(ctx context.Context, intakeID uint) ([]*model.EmploymentHistoryEntry, error)
	listReviewCandidatesFn  func(ctx context.Context) ([]*model.ClientIntakeRecord, error)
	markReviewRequestSentFn func(ctx context.Context, id uint, at time.Time) error
}

func (m *mockIntakeRepo) CreateWithHistory(ctx context.Context, record *model.ClientIntakeRecord, entries []*model.EmploymentHistoryEntry) error {
	if m.createWithHistoryFn == nil {
		record.ID = 1
		return nil
	}
	return m.createWithHistoryFn(ctx, record, entries)
}

func (m *mockIntakeRepo) FindByID(ctx context.Context, id uint) (*model.ClientIntakeRecord, error) {
	if m.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockIntakeRepo) FindByTransactionID(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error) {
	if m.findByTransactionIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByTransactionIDFn(ctx, transactionID)
}

func (m *mockIntakeRepo) ListAll(ctx context.Context) ([]*model.ClientIntakeRecord, error) {
	if m.listAllFn == nil {
		return nil, nil
	}
	return m.listAllFn(ctx)
}

func (m *mockIntakeRepo) UpdateStatus(ctx context.Context, id uint, status, adminNotes string) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status, adminNotes)
}

func (m *mockIntakeRepo) EmploymentHistory(ctx context.Context, intakeID uint) ([]*model.EmploymentHistoryEntry, error) {
	if m.employmentHistoryFn == nil {
		return nil, nil
	}
	return m.employmentHistoryFn(ctx, intakeID)
}

func (m *mockIntakeRepo) ListReviewCandidates(ctx context.Context) ([]*model.ClientIntakeRecord, error) {
	if m.listReviewCandidatesFn == nil {
		return nil, nil
	}
	return m.listReviewCandidatesFn(ctx)
}

func (m *mockIntakeRepo) MarkReviewRequestSent(ctx context.Context, id uint, at time.Time) error {
	if m.markReviewRequestSentFn == nil {
		return nil
	}
	return m.markReviewRequestSentFn(ctx, id, at)
}

type mockDraftRepo struct {
	findByEmailFn    func(ctx context.Context, email string) (*model.DraftIntakeRecord, error)
	findByTokenFn    func(ctx context.Context, token string) (*model.DraftIntakeRecord, error)
	createFn         func(ctx context.Context, draft *model.DraftIntakeRecord) error
	updateFormDataFn func(ctx context.Context, email string, formData datatypes.JSON, transactionID string) error
	markCompletedFn  func(ctx context.Context, email string) error
	markReminderFn   func(ctx context.Context, id uint) error
	listIncompleteFn func(ctx context.Context) ([]*model.DraftIntakeRecord, error)
}

func (m *mockDraftRepo) FindByEmail(ctx context.Context, email string) (*model.DraftIntakeRecord, error) {
	if m.findByEmailFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByEmailFn(ctx, email)
}

func (m *mockDraftRepo) FindByToken(ctx context.Context, token string) (*model.DraftIntakeRecord, error) {
	if m.findByTokenFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByTokenFn(ctx, token)
}

func (m *mockDraftRepo) Create(ctx context.Context, draft *model.DraftIntakeRecord) error {
	if m.createFn == nil {
		draft.ID = 1
		return nil
	}
	return m.createFn(ctx, draft)
}

func (m *mockDraftRepo) UpdateFormData(ctx context.Context, email string, formData datatypes.JSON, transactionID string) error {
	if m.updateFormDataFn == nil {
		return nil
	}
	return m.updateFormDataFn(ctx, email, formData, transactionID)
}

func (m *mockDraftRepo) MarkCompleted(ctx context.Context, email string) error {
	if m.markCompletedFn == nil {
		return nil
	}
	return m.markCompletedFn(ctx, email)
}

func (m *mockDraftRepo) MarkReminderSent(ctx context.Context, id uint) error {
	if m.markReminderFn == nil {
		return nil
	}
	return m.markReminderFn(ctx, id)
}

func (m *mockDraftRepo) ListIncomplete(ctx context.Context) ([]*model.DraftIntakeRecord, error) {
	if m.listIncompleteFn == nil {
		return nil, nil
	}
	return m.listIncompleteFn(ctx)
}

// memEmailLogRepo records created log entries in memory.
type memEmailLogRepo struct {
	mu      sync.Mutex
	entries []*model.EmailLog
}

func (m *memEmailLogRepo) Create(ctx context.Context, entry *model.EmailLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memEmailLogRepo) all() []*model.EmailLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.EmailLog(nil), m.entries...)
}

func (m *memEmailLogRepo) Recent(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	return m.all(), nil
}

func (m *memEmailLogRepo) ByType(ctx context.Context, emailType string, limit int) ([]*model.EmailLog, error) {
	var out []*model.EmailLog
	for _, e := range m.all() {
		if e.EmailType == emailType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmailLogRepo) ByRecipient(ctx context.Context, email string, limit int) ([]*model.EmailLog, error) {
	var out []*model.EmailLog
	for _, e := range m.all() {
		if e.RecipientEmail == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmailLogRepo) Since(ctx context.Context, since time.Time) ([]*model.EmailLog, error) {
	return m.all(), nil
}

// mockMailer captures sent messages; sendErr fails every send.
type mockMailer struct {
	mu         sync.Mutex
	configured bool
	sendErr    error
	sent       []mailer.Message
}

func (m *mockMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockMailer) Configured() bool {
	return m.configured
}

func (m *mockMailer) sentMessages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

type mockPaypalClient struct {
	createOrderFn  func(ctx context.Context, params client.CreateOrderParams) (*client.CreateOrderResult, error)
	captureOrderFn func(ctx context.Context, paypalOrderID string) (*client.CaptureResult, error)
	verifyFn       func(ctx context.Context, headers client.WebhookHeaders, body []byte) (bool, error)
}

func (m *mockPaypalClient) CreateOrder(ctx context.Context, params client.CreateOrderParams) (*client.CreateOrderResult, error) {
	return m.createOrderFn(ctx, params)
}

func (m *mockPaypalClient) CaptureOrder(ctx context.Context, paypalOrderID string) (*client.CaptureResult, error) {
	return m.captureOrderFn(ctx, paypalOrderID)
}

func (m *mockPaypalClient) VerifyWebhookSignature(ctx context.Context, headers client.WebhookHeaders, body []byte) (bool, error) {
	if m.verifyFn == nil {
		return true, nil
	}
	return m.verifyFn(ctx, headers, body)
}

type noopAlerter struct{}

func (noopAlerter) Alert(mailer.FailureAlertData) bool       { return false }
func (noopAlerter) CooldownStatus() map[string]time.Duration { return nil }
