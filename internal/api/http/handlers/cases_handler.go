package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

// CasesHandler manages client-facing case endpoints.
type CasesHandler struct {
	lifecycle *service.LifecycleService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(lifecycleService *service.LifecycleService) *CasesHandler {
	return &CasesHandler{lifecycle: lifecycleService}
}

// CreateCase POST /create_case.
func (h *CasesHandler) CreateCase(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	kase, err := h.lifecycle.Submit(c.Context(), principal.Account, service.SubmitInput{
		DocumentName:     req.DocumentName,
		DeliveryTarget:   req.DeliveryTarget,
		GivenLocation:    req.GivenLocation,
		GivenToStaffTime: req.GivenToStaffTime,
		Note:             req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "case created",
		"case_id": kase.ID,
	})
}

// ListCases GET /cases returns the caller's own cases.
func (h *CasesHandler) ListCases(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	cases, err := h.lifecycle.ListOwn(c.Context(), principal.Account)
	if err != nil {
		return err
	}

	items := make([]dto.CaseSummary, 0, len(cases))
	for i := range cases {
		items = append(items, caseSummary(&cases[i], false))
	}
	return c.JSON(items)
}

func caseSummary(kase *domain.Case, includeOwner bool) dto.CaseSummary {
	summary := dto.CaseSummary{
		ID:               kase.ID,
		DeliveryTarget:   kase.DeliveryTarget,
		GivenLocation:    kase.GivenLocation,
		GivenToStaffTime: dto.FormatTime(kase.GivenToStaffTime),
		Status:           kase.Status.Label(),
	}
	if kase.DocumentName != nil {
		summary.DocumentName = *kase.DocumentName
	}
	if kase.Note != nil {
		summary.Note = *kase.Note
	}
	if includeOwner {
		summary.AccountID = kase.AccountID
	}
	return summary
}

func caseDetail(item *service.CaseWithHistory, includeOwner bool) dto.CaseDetail {
	updates := make([]dto.CaseUpdateEntry, 0, len(item.Updates))
	for _, update := range item.Updates {
		updates = append(updates, dto.CaseUpdateEntry{
			Status:   string(update.Status),
			Note:     update.Note,
			Location: update.Location,
			Time:     dto.FormatTime(update.UpdateTime),
		})
	}
	return dto.CaseDetail{
		CaseSummary: caseSummary(&item.Case, includeOwner),
		Updates:     updates,
	}
}
