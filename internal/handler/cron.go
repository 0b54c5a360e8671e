package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"resume-services-backend/internal/service"
)

// CronHandler exposes the scheduled jobs as HTTP endpoints for an external
// scheduler. Access is a shared bearer secret, compared constant-time.
type CronHandler struct {
	reviews service.ReviewService
	backups service.BackupService
	secret  string
	log     zerolog.Logger
}

func NewCronHandler(reviews service.ReviewService, backups service.BackupService, secret string, log zerolog.Logger) *CronHandler {
	return &CronHandler{reviews: reviews, backups: backups, secret: secret, log: log}
}

// Authorize rejects every call when no secret is configured: a missing
// secret must fail closed, not open.
func (h *CronHandler) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.secret == "" {
			return echo.NewHTTPError(http.StatusForbidden, "cron endpoints disabled")
		}

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid cron secret")
		}
		return next(c)
	}
}

func (h *CronHandler) RunReviewRequests(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.reviews.ProcessReviewRequests(ctx)
	if err != nil {
		if errors.Is(err, service.ErrReviewsDisabled) {
			return echo.NewHTTPError(http.StatusConflict, "review requests are disabled")
		}
		return err
	}

	h.log.Info().Int("processed", result.Processed).Int("sent", result.Sent).Msg("review request run finished")
	return c.JSON(http.StatusOK, result)
}

func (h *CronHandler) RunBackup(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.backups.RunBackup(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
