package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"resume-services-backend/internal/client"
	"resume-services-backend/internal/dto"
	"resume-services-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
	log      zerolog.Logger
}

func NewPaymentHandler(payments service.PaymentService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PackageName == "" || req.Amount == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "packageName and amount are required")
	}

	result, err := h.payments.CreateOrder(ctx, service.CreateOrderInput{
		PackageName:   req.PackageName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order amount")
		}
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *PaymentHandler) CaptureOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CaptureOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PaypalOrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "paypalOrderId is required")
	}

	order, err := h.payments.CaptureOrder(ctx, orderID, req.PaypalOrderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.payments.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func webhookHeaders(c echo.Context) client.WebhookHeaders {
	h := c.Request().Header
	return client.WebhookHeaders{
		TransmissionID:   h.Get("Paypal-Transmission-Id"),
		TransmissionTime: h.Get("Paypal-Transmission-Time"),
		TransmissionSig:  h.Get("Paypal-Transmission-Sig"),
		CertURL:          h.Get("Paypal-Cert-Url"),
		AuthAlgo:         h.Get("Paypal-Auth-Algo"),
	}
}

// PaypalWebhook validates the signature bundle, then always answers 2xx to
// post-verification processing errors so PayPal does not retry-storm an
// event our code cannot apply. Only a bad signature earns a 401.
func (h *PaymentHandler) PaypalWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	headers := webhookHeaders(c)
	if !headers.Complete() {
		return echo.NewHTTPError(http.StatusBadRequest, "missing webhook signature headers")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	if err := h.payments.HandleWebhook(ctx, headers, body); err != nil {
		if errors.Is(err, service.ErrWebhookSignature) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook signature")
		}
		h.log.Error().Err(err).Msg("webhook processing failed")
		return c.JSON(http.StatusOK, map[string]bool{"success": false})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
