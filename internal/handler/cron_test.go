package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-services-backend/internal/service"
)

type stubReviewService struct {
	result *service.ReviewRunResult
	err    error
}

func (s *stubReviewService) ProcessReviewRequests(ctx context.Context) (*service.ReviewRunResult, error) {
	return s.result, s.err
}

func (s *stubReviewService) SendManualReviewRequest(ctx context.Context, intakeID uint) error {
	return nil
}

type stubBackupService struct {
	result *service.BackupResult
	err    error
}

func (s *stubBackupService) RunBackup(ctx context.Context) (*service.BackupResult, error) {
	return s.result, s.err
}

func cronRequest(t *testing.T, h *CronHandler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cron/review-requests", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Authorize(h.RunReviewRequests)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCronAuthorize_NoSecretConfiguredFailsClosed(t *testing.T) {
	h := NewCronHandler(&stubReviewService{}, &stubBackupService{}, "", zerolog.Nop())

	rec := cronRequest(t, h, "Bearer anything")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCronAuthorize_WrongSecret(t *testing.T) {
	h := NewCronHandler(&stubReviewService{}, &stubBackupService{}, "topsecret", zerolog.Nop())

	rec := cronRequest(t, h, "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = cronRequest(t, h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCronAuthorize_CorrectSecretRunsJob(t *testing.T) {
	reviews := &stubReviewService{result: &service.ReviewRunResult{Processed: 3, Sent: 2, Failed: 1}}
	h := NewCronHandler(reviews, &stubBackupService{}, "topsecret", zerolog.Nop())

	rec := cronRequest(t, h, "Bearer topsecret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"processed":3,"sent":2,"failed":1}`, rec.Body.String())
}

func TestCron_ReviewsDisabledIsConflict(t *testing.T) {
	reviews := &stubReviewService{err: service.ErrReviewsDisabled}
	h := NewCronHandler(reviews, &stubBackupService{}, "topsecret", zerolog.Nop())

	rec := cronRequest(t, h, "Bearer topsecret")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
