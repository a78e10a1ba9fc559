package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

// handoffTimeLayouts are the accepted formats for the client-supplied handoff
// timestamp. The bare form has no zone suffix.
var handoffTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// LifecycleService is the sole mutator of case state. It enforces who may
// transition what and keeps the case row and its history log consistent.
type LifecycleService struct {
	cases      repository.CaseRepository
	updates    repository.CaseUpdateRepository
	dispatcher events.Dispatcher
}

// LifecycleDependencies bundles repositories for the lifecycle service.
type LifecycleDependencies struct {
	CaseRepo       repository.CaseRepository
	CaseUpdateRepo repository.CaseUpdateRepository
	Dispatcher     events.Dispatcher
}

// SubmitInput describes case creation payload.
type SubmitInput struct {
	DocumentName     *string
	DeliveryTarget   string
	GivenLocation    string
	GivenToStaffTime string
	Note             *string
}

// AdvanceInput describes a staff progress update. A nil Status leaves the
// case status unchanged but still appends a history entry.
type AdvanceInput struct {
	Status   *string
	Note     *string
	Location *string
}

// CaseWithHistory pairs a case with its ordered update log.
type CaseWithHistory struct {
	Case    domain.Case
	Updates []domain.CaseUpdate
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	return &LifecycleService{
		cases:      deps.CaseRepo,
		updates:    deps.CaseUpdateRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a pending case owned by the actor. Creation itself writes no
// history entry; pending is the implicit initial state.
func (s *LifecycleService) Submit(ctx context.Context, actor *domain.Account, input SubmitInput) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("login required")
	}
	if strings.TrimSpace(input.DeliveryTarget) == "" {
		return nil, apperrors.NewValidationError("delivery_target required", nil)
	}
	if strings.TrimSpace(input.GivenLocation) == "" {
		return nil, apperrors.NewValidationError("given_location required", nil)
	}
	handoffTime, err := parseHandoffTime(input.GivenToStaffTime)
	if err != nil {
		return nil, apperrors.NewValidationError("given_to_staff_time must be an ISO timestamp", map[string]any{
			"value": input.GivenToStaffTime,
		})
	}

	kase := &domain.Case{
		DocumentName:     input.DocumentName,
		DeliveryTarget:   strings.TrimSpace(input.DeliveryTarget),
		GivenLocation:    strings.TrimSpace(input.GivenLocation),
		GivenToStaffTime: handoffTime,
		Note:             input.Note,
		Status:           domain.CaseStatusPending,
		AccountID:        actor.ID,
	}

	if err := s.cases.Create(ctx, kase); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventCaseCreated,
		CaseID: kase.ID,
		Actor:  eventActor(actor),
		Payload: events.CaseCreatedPayload{
			DeliveryTarget: kase.DeliveryTarget,
			GivenLocation:  kase.GivenLocation,
			DocumentName:   kase.DocumentName,
		},
	})
	return kase, nil
}

// Advance records a staff progress update. The status write and the history
// insert happen in one transaction. A done case can never be advanced again.
func (s *LifecycleService) Advance(ctx context.Context, actor *domain.Account, caseID string, input AdvanceInput) (*domain.Case, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}

	kase, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", map[string]any{"case_id": caseID})
		}
		return nil, err
	}
	if kase.Status.Terminal() {
		return nil, apperrors.NewCaseDone(kase.ID)
	}

	oldStatus := kase.Status
	newStatus := kase.Status
	if input.Status != nil {
		candidate := domain.CaseStatus(strings.TrimSpace(*input.Status))
		if !candidate.Valid() {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		newStatus = candidate
	}

	kase.Status = newStatus
	update := &domain.CaseUpdate{
		CaseID:     kase.ID,
		Status:     newStatus,
		Note:       input.Note,
		Location:   input.Location,
		UpdateTime: time.Now().UTC(),
	}
	if err := s.cases.UpdateStatusWithLog(ctx, kase, update); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventCaseUpdated,
		CaseID: kase.ID,
		Actor:  eventActor(actor),
		Payload: events.CaseUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Note:      input.Note,
			Location:  input.Location,
		},
	})
	return kase, nil
}

// ListOwn returns the actor's cases without history detail.
func (s *LifecycleService) ListOwn(ctx context.Context, actor *domain.Account) ([]domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("login required")
	}
	return s.cases.ListByAccount(ctx, actor.ID)
}

// ListAll returns every case with its full ordered history. Staff only.
func (s *LifecycleService) ListAll(ctx context.Context, actor *domain.Account) ([]CaseWithHistory, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	cases, err := s.cases.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachHistories(ctx, cases)
}

// ListPending returns cases awaiting acceptance. Staff only.
func (s *LifecycleService) ListPending(ctx context.Context, actor *domain.Account) ([]domain.Case, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	return s.cases.ListByStatus(ctx, domain.CaseStatusPending)
}

// ListTaken returns non-pending cases with their full ordered history. Staff only.
func (s *LifecycleService) ListTaken(ctx context.Context, actor *domain.Account) ([]CaseWithHistory, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	cases, err := s.cases.ListExcludingStatus(ctx, domain.CaseStatusPending)
	if err != nil {
		return nil, err
	}
	return s.attachHistories(ctx, cases)
}

func (s *LifecycleService) attachHistories(ctx context.Context, cases []domain.Case) ([]CaseWithHistory, error) {
	result := make([]CaseWithHistory, 0, len(cases))
	for i := range cases {
		updates, err := s.updates.ListByCase(ctx, cases[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CaseWithHistory{Case: cases[i], Updates: updates})
	}
	return result, nil
}

func parseHandoffTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var lastErr error
	for _, layout := range handoffTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (s *LifecycleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor *domain.Account) events.Actor {
	return events.Actor{AccountID: actor.ID, Role: actor.Role}
}
