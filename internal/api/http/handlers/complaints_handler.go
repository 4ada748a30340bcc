package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	msgRequiredFields = "Please provide all required fields."
	msgInvalidUpdate  = "Invalid complaint update"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service  *service.ComplaintService
	validate *validator.Validate
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, validate *validator.Validate) *ComplaintsHandler {
	if validate == nil {
		validate = NewValidator()
	}
	return &ComplaintsHandler{service: complaintService, validate: validate}
}

// ListComplaints GET /complaints.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.service.List(c.UserContext(), parseComplaintFilter(c))
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.NewComplaintResponse(&complaints[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// CreateComplaint POST /complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(msgRequiredFields, err)
	}

	complaint, err := h.service.Create(c.UserContext(), service.ComplaintCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ComplaintCategory(req.Category),
		Priority:    domain.ComplaintPriority(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewComplaintResponse(complaint)})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewComplaintResponse(complaint)})
}

// UpdateComplaint PUT /complaints/:id.
func (h *ComplaintsHandler) UpdateComplaint(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authorized, no token")
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(msgInvalidUpdate, err)
	}

	complaint, err := h.service.Update(c.UserContext(), c.Params("id"), identity, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewComplaintResponse(complaint)})
}

// DeleteComplaint DELETE /complaints/:id.
func (h *ComplaintsHandler) DeleteComplaint(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authorized, no token")
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id"), identity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
}

// ComplaintHistory GET /complaints/:id/history.
func (h *ComplaintsHandler) ComplaintHistory(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authorized, no token")
	}
	entries, err := h.service.History(c.UserContext(), c.Params("id"), identity)
	if err != nil {
		return err
	}
	items := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewHistoryResponse(entry))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func parseComplaintFilter(c *fiber.Ctx) repository.ComplaintFilter {
	var filter repository.ComplaintFilter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := domain.ComplaintStatus(v)
		filter.Status = &status
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		priority := domain.ComplaintPriority(v)
		filter.Priority = &priority
	}
	return filter
}
