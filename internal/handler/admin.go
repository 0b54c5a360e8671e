package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"resume-services-backend/internal/dto"
	"resume-services-backend/internal/repository"
	"resume-services-backend/internal/service"
)

// AdminHandler serves the dashboard API behind JWT auth.
type AdminHandler struct {
	payments service.PaymentService
	intakes  service.IntakeService
	promos   service.PromoService
	emails   service.EmailService
	contacts service.ContactService
	reviews  service.ReviewService
}

func NewAdminHandler(
	payments service.PaymentService,
	intakes service.IntakeService,
	promos service.PromoService,
	emails service.EmailService,
	contacts service.ContactService,
	reviews service.ReviewService,
) *AdminHandler {
	return &AdminHandler{
		payments: payments,
		intakes:  intakes,
		promos:   promos,
		emails:   emails,
		contacts: contacts,
		reviews:  reviews,
	}
}

// -------- orders --------

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	filters := repository.OrderFilters{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("startDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.StartDate = &t
		}
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			end := t.AddDate(0, 0, 1)
			filters.EndDate = &end
		}
	}

	orders, err := h.payments.GetAllOrders(ctx, filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) RecentOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	orders, err := h.payments.GetRecentOrders(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) OrderStatistics(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.payments.GetOrderStatistics(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.payments.UpdateOrderStatus(ctx, orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, "completed, cancelled and failed orders cannot be reopened")
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order updated"})
}

func (h *AdminHandler) UpdateOrderCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.payments.UpdateOrderCustomer(ctx, orderID, req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order updated"})
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.payments.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -------- intakes --------

func (h *AdminHandler) ListIntakes(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.intakes.GetAllIntakes(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (h *AdminHandler) GetIntake(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.intakes.GetIntakeByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrIntakeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "intake record not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *AdminHandler) UpdateIntakeStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateIntakeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.intakes.UpdateIntakeStatus(ctx, id, req.Status, req.AdminNotes); err != nil {
		if errors.Is(err, service.ErrIntakeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "intake record not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Intake updated"})
}

func (h *AdminHandler) ListIncompleteDrafts(c echo.Context) error {
	ctx := c.Request().Context()

	drafts, err := h.intakes.GetIncompleteDrafts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, drafts)
}

func (h *AdminHandler) SendReviewRequest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.reviews.SendManualReviewRequest(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrIntakeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "intake record not found")
		case errors.Is(err, service.ErrNotReviewEligible):
			return echo.NewHTTPError(http.StatusConflict, "intake is not eligible for a review request")
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Review request sent"})
}

// -------- promo codes --------

func (h *AdminHandler) CreatePromoCode(c echo.Context) error {
	ctx := c.Request().Context()

	var input service.CreatePromoCodeInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	promo, err := h.promos.CreatePromoCode(ctx, input)
	if err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusCreated, promo)
}

func (h *AdminHandler) ListPromoCodes(c echo.Context) error {
	ctx := c.Request().Context()

	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid active filter")
		}
		active = &parsed
	}

	codes, err := h.promos.ListPromoCodes(ctx, active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, codes)
}

func (h *AdminHandler) UpdatePromoCode(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	delete(updates, "id")

	if err := h.promos.UpdatePromoCode(ctx, id, updates); err != nil {
		if errors.Is(err, service.ErrPromoCodeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "promo code not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Promo code updated"})
}

func (h *AdminHandler) DeletePromoCode(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.promos.DeletePromoCode(ctx, id); err != nil {
		if errors.Is(err, service.ErrPromoCodeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "promo code not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) PromoStatistics(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.promos.PromoStatistics(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// -------- contact --------

func (h *AdminHandler) ListContactSubmissions(c echo.Context) error {
	ctx := c.Request().Context()

	submissions, err := h.contacts.ListSubmissions(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submissions)
}

func (h *AdminHandler) UpdateContactStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.contacts.UpdateSubmissionStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "submission not found")
		}
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Submission updated"})
}

func (h *AdminHandler) ListSubscribers(c echo.Context) error {
	ctx := c.Request().Context()

	subs, err := h.contacts.ListSubscribers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// -------- email logs --------

func (h *AdminHandler) ListEmailLogs(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	if emailType := c.QueryParam("type"); emailType != "" {
		logs, err := h.emails.LogsByType(ctx, emailType, limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, logs)
	}
	if recipient := c.QueryParam("recipient"); recipient != "" {
		logs, err := h.emails.LogsByRecipient(ctx, recipient, limit)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, logs)
	}

	logs, err := h.emails.RecentLogs(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AdminHandler) EmailStatistics(c echo.Context) error {
	ctx := c.Request().Context()

	days, _ := strconv.Atoi(c.QueryParam("days"))
	stats, err := h.emails.Statistics(ctx, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// SendTestEmail propagates the transport error so the admin can see whether
// SMTP actually works.
func (h *AdminHandler) SendTestEmail(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.TestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if _, err := mail.ParseAddress(req.Recipient); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "valid recipient is required")
	}

	if err := h.emails.SendTestEmail(ctx, req.Recipient); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "test email failed: "+err.Error())
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Test email sent"})
}
