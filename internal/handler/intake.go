package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"resume-services-backend/internal/dto"
	"resume-services-backend/internal/service"
)

type IntakeHandler struct {
	intakes service.IntakeService
}

func NewIntakeHandler(intakes service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakes: intakes}
}

func validationHTTPError(err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Message)
	}
	return err
}

func (h *IntakeHandler) SubmitIntake(c echo.Context) error {
	ctx := c.Request().Context()

	var input service.SubmitIntakeInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.intakes.SubmitIntake(ctx, input)
	if err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *IntakeHandler) SaveDraft(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SaveDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := h.intakes.SaveDraft(ctx, req.Email, req.PaypalTransactionID, req.FormData)
	if err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.SaveDraftResponse{ResumeToken: token})
}

// GetDraft answers 404 for unknown tokens; the token is the only credential
// so there is nothing else to check.
func (h *IntakeHandler) GetDraft(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.Param("token")
	draft, err := h.intakes.GetDraftByToken(ctx, token)
	if err != nil {
		return err
	}
	if draft == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	return c.JSON(http.StatusOK, draft)
}

func (h *IntakeHandler) ResumeLater(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResumeLaterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.intakes.RequestResumeLater(ctx, req.Email, req.Name, req.FormData); err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Resume link sent. Check your inbox."})
}

func (h *IntakeHandler) CompleteDraft(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CompleteDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.intakes.CompleteDraft(ctx, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Draft marked complete"})
}
