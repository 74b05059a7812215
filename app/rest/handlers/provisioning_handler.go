package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
	apperrors "provisioning-service/app/utils/errors"
	"provisioning-service/app/utils/validator"
)

// ProvisioningHandler handles provisioning and repair HTTP requests
type ProvisioningHandler struct {
	registration port.RegistrationUsecase
	repair       port.RepairUsecase
	inspection   port.InspectionUsecase
	validator    *validator.Validator
	logger       *slog.Logger
}

// NewProvisioningHandler creates a new provisioning handler
func NewProvisioningHandler(
	registration port.RegistrationUsecase,
	repair port.RepairUsecase,
	inspection port.InspectionUsecase,
	logger *slog.Logger,
) *ProvisioningHandler {
	return &ProvisioningHandler{
		registration: registration,
		repair:       repair,
		inspection:   inspection,
		validator:    validator.New(),
		logger:       logger,
	}
}

// RegisterRequest is the registration payload. Exactly one of identityId
// (signup front-end already created the identity) or password (identity is
// created server-side) must be present.
type RegisterRequest struct {
	IdentityID string `json:"identityId,omitempty"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	TenantName string `json:"tenantName" validate:"required"`
	Subdomain  string `json:"subdomain,omitempty"`
}

// EmailRequest is the payload shared by the repair endpoints.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Register handles the full provisioning saga for one organization
// @Summary Register an organization
// @Description Provision identity, tenant and admin user atomically
// @Tags provisioning
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/provisioning/register [post]
func (h *ProvisioningHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return h.badRequest(c, err.Error())
	}

	domainReq := &domain.RegistrationRequest{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		TenantName: req.TenantName,
		Subdomain:  req.Subdomain,
	}
	if req.IdentityID != "" {
		identityID, err := uuid.Parse(req.IdentityID)
		if err != nil {
			return h.badRequest(c, "identityId must be a UUID")
		}
		domainReq.IdentityID = &identityID
	}

	result, err := h.registration.Register(c.Request().Context(), domainReq)
	if err != nil {
		return h.respondError(c, err)
	}

	message := ""
	if result.SubdomainSuffixed {
		message = "the requested subdomain was taken; a numeric suffix was appended"
	}
	return c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    result,
		Message: message,
	})
}

// Recover frees an email blocked by an orphaned identity
// @Summary Recover an orphaned identity
// @Description Delete the provider identity when no user row references it
// @Tags repair
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Target email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/provisioning/recover [post]
func (h *ProvisioningHandler) Recover(c echo.Context) error {
	email, err := h.bindEmail(c)
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	result, err := h.repair.Recover(c.Request().Context(), email)
	if err != nil {
		return h.respondError(c, err)
	}

	message := "orphaned identity deleted; the email can register again"
	if result.HasUserRecord {
		message = "identity has a linked user record; nothing to recover"
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
		Message: message,
	})
}

// FixUser repairs a broken user-to-identity link
// @Summary Relink a user record
// @Description Point the user row's identity reference at the provider identity
// @Tags repair
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Target email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/provisioning/fix-user [post]
func (h *ProvisioningHandler) FixUser(c echo.Context) error {
	email, err := h.bindEmail(c)
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	result, err := h.repair.Relink(c.Request().Context(), email)
	if err != nil {
		return h.respondError(c, err)
	}

	message := "user record linked to identity"
	if result.AlreadyLinked {
		message = "user record was already linked; nothing to fix"
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
		Message: message,
	})
}

// CleanupDuplicates collapses duplicate user rows for one email
// @Summary Remove duplicate user records
// @Description Keep the oldest identity-linked row and delete the rest
// @Tags repair
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Target email"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/provisioning/cleanup-duplicates [post]
func (h *ProvisioningHandler) CleanupDuplicates(c echo.Context) error {
	email, err := h.bindEmail(c)
	if err != nil {
		return h.badRequest(c, err.Error())
	}

	result, err := h.repair.Deduplicate(c.Request().Context(), email)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// Debug returns the consistency report for one email
// @Summary Inspect provisioning consistency
// @Description Cross-reference the identity provider and the user table
// @Tags repair
// @Accept json
// @Produce json
// @Param email query string true "Target email"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/provisioning/debug [get]
func (h *ProvisioningHandler) Debug(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return h.badRequest(c, "email query parameter is required")
	}

	report, err := h.inspection.Inspect(c.Request().Context(), email)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    report,
	})
}

func (h *ProvisioningHandler) bindEmail(c echo.Context) (string, error) {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return "", errors.New("invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return "", err
	}
	return req.Email, nil
}

func (h *ProvisioningHandler) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Code:    string(apperrors.ErrCodeValidationFailed),
		Message: message,
	})
}

// respondError maps domain errors onto the HTTP envelope. Everything the
// caller can act on keeps its specific status; the rest is a 500 with the
// error text preserved, since these endpoints are operator-facing.
func (h *ProvisioningHandler) respondError(c echo.Context, err error) error {
	appErr := h.toAppError(err)

	h.logger.Error("request failed",
		"path", c.Path(),
		"code", appErr.Code,
		"error", err)

	return c.JSON(appErr.StatusCode, ErrorResponse{
		Success: false,
		Code:    string(appErr.Code),
		Message: err.Error(),
	})
}

func (h *ProvisioningHandler) toAppError(err error) *apperrors.AppError {
	var (
		noIdentity *domain.NoIdentityError
		noUser     *domain.NoUserRecordError
		ambiguous  *domain.AmbiguousDuplicateError
		exhausted  *domain.SubdomainExhaustedError
	)

	switch {
	case errors.As(err, &noIdentity):
		return apperrors.Wrap(apperrors.ErrCodeIdentityNotFound, "identity not found", err)
	case errors.As(err, &noUser):
		return apperrors.Wrap(apperrors.ErrCodeUserNotFound, "user record not found", err)
	case errors.As(err, &ambiguous):
		return apperrors.Wrap(apperrors.ErrCodeAmbiguousDuplicates, "cannot determine which record to keep", err)
	case errors.As(err, &exhausted):
		return apperrors.Wrap(apperrors.ErrCodeSubdomainExhausted, "no unique subdomain available", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeProvisioningFailed, "provisioning operation failed", err)
	}
}
