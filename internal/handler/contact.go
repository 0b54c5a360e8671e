package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resume-services-backend/internal/dto"
	"resume-services-backend/internal/service"
)

type ContactHandler struct {
	contacts service.ContactService
	promos   service.PromoService
}

func NewContactHandler(contacts service.ContactService, promos service.PromoService) *ContactHandler {
	return &ContactHandler{contacts: contacts, promos: promos}
}

func (h *ContactHandler) SubmitContactForm(c echo.Context) error {
	ctx := c.Request().Context()

	var input service.ContactFormInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.contacts.SubmitContactForm(ctx, input); err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Thanks for reaching out. We'll be in touch shortly."})
}

func (h *ContactHandler) CaptureLeadMagnet(c echo.Context) error {
	ctx := c.Request().Context()

	var input service.LeadMagnetInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.contacts.CaptureLeadMagnet(ctx, input); err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Your guide is on its way."})
}

// ValidatePromoCode is public: the checkout page calls it before payment.
func (h *ContactHandler) ValidatePromoCode(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ValidatePromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" || req.OrderAmount == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code and orderAmount are required")
	}

	result, err := h.promos.ValidatePromoCode(ctx, req.Code, req.OrderAmount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
