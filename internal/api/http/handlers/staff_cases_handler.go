package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

// StaffCasesHandler handles staff case listing and progress endpoints. Role
// checks happen inside the lifecycle service; these handlers only resolve the
// actor from the request.
type StaffCasesHandler struct {
	lifecycle *service.LifecycleService
}

// NewStaffCasesHandler constructs handler.
func NewStaffCasesHandler(lifecycleService *service.LifecycleService) *StaffCasesHandler {
	return &StaffCasesHandler{lifecycle: lifecycleService}
}

// AllCases GET /all_cases.
func (h *StaffCasesHandler) AllCases(c *fiber.Ctx) error {
	actor, err := requestActor(c)
	if err != nil {
		return err
	}
	items, err := h.lifecycle.ListAll(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(caseDetails(items))
}

// PendingCases GET /pending_cases.
func (h *StaffCasesHandler) PendingCases(c *fiber.Ctx) error {
	actor, err := requestActor(c)
	if err != nil {
		return err
	}
	cases, err := h.lifecycle.ListPending(c.Context(), actor)
	if err != nil {
		return err
	}

	items := make([]dto.CaseSummary, 0, len(cases))
	for i := range cases {
		items = append(items, caseSummary(&cases[i], true))
	}
	return c.JSON(items)
}

// MyTakenCases GET /my_taken_cases.
func (h *StaffCasesHandler) MyTakenCases(c *fiber.Ctx) error {
	actor, err := requestActor(c)
	if err != nil {
		return err
	}
	items, err := h.lifecycle.ListTaken(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(caseDetails(items))
}

// UpdateTakenCase POST /update_taken_case/:id.
func (h *StaffCasesHandler) UpdateTakenCase(c *fiber.Ctx) error {
	actor, err := requestActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.lifecycle.Advance(c.Context(), actor, c.Params("id"), service.AdvanceInput{
		Status:   req.Status,
		Note:     req.Note,
		Location: req.Location,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "case progress updated"})
}

func requestActor(c *fiber.Ctx) (*domain.Account, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("login required")
	}
	return principal.Account, nil
}

func caseDetails(items []service.CaseWithHistory) []dto.CaseDetail {
	result := make([]dto.CaseDetail, 0, len(items))
	for i := range items {
		result = append(result, caseDetail(&items[i], true))
	}
	return result
}
