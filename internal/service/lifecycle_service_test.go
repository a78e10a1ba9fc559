package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

func newLifecycleService(cases *mockCaseRepo, updates *mockCaseUpdateRepo) *LifecycleService {
	return NewLifecycleService(LifecycleDependencies{
		CaseRepo:       cases,
		CaseUpdateRepo: updates,
	})
}

func clientAccount() *domain.Account {
	return &domain.Account{ID: "acc-client", Username: "alice", Role: domain.RoleClient}
}

func staffAccount() *domain.Account {
	return &domain.Account{ID: "acc-staff", Username: "admin", Role: domain.RoleStaff}
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestSubmit_CreatesPendingCase(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	updates := &mockCaseUpdateRepo{}

	cases.On("Create", mock.Anything, mock.MatchedBy(func(kase *domain.Case) bool {
		return kase.Status == domain.CaseStatusPending &&
			kase.AccountID == "acc-client" &&
			kase.DeliveryTarget == "HQ" &&
			kase.GivenLocation == "Branch1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Case).ID = "case-1"
	}).Return(nil)

	svc := newLifecycleService(cases, updates)
	kase, err := svc.Submit(ctx, clientAccount(), SubmitInput{
		DeliveryTarget:   "HQ",
		GivenLocation:    "Branch1",
		GivenToStaffTime: "2024-01-01T10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "case-1", kase.ID)
	assert.Equal(t, domain.CaseStatusPending, kase.Status)
	cases.AssertExpectations(t)
}

func TestSubmit_ParsesHandoffTimestamps(t *testing.T) {
	ctx := context.Background()

	for _, value := range []string{"2024-01-01T10:00:00", "2024-01-01T10:00:00Z"} {
		cases := &mockCaseRepo{}
		cases.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
		kase, err := svc.Submit(ctx, clientAccount(), SubmitInput{
			DeliveryTarget:   "HQ",
			GivenLocation:    "Branch1",
			GivenToStaffTime: value,
		})
		require.NoError(t, err, value)
		want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		assert.True(t, kase.GivenToStaffTime.Equal(want), value)
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})

	_, err := svc.Submit(ctx, clientAccount(), SubmitInput{
		GivenLocation:    "Branch1",
		GivenToStaffTime: "2024-01-01T10:00:00",
	})
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))

	_, err = svc.Submit(ctx, clientAccount(), SubmitInput{
		DeliveryTarget:   "HQ",
		GivenToStaffTime: "2024-01-01T10:00:00",
	})
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))

	cases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_MalformedTimestamp(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	_, err := svc.Submit(ctx, clientAccount(), SubmitInput{
		DeliveryTarget:   "HQ",
		GivenLocation:    "Branch1",
		GivenToStaffTime: "yesterday",
	})
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	cases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdvance_NonStaffForbidden(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	_, err := svc.Advance(ctx, clientAccount(), "case-1", AdvanceInput{})
	assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	cases.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cases.AssertNotCalled(t, "UpdateStatusWithLog", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvance_UnknownCase(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	_, err := svc.Advance(ctx, staffAccount(), "missing", AdvanceInput{})
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestAdvance_DoneCaseFrozen(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "case-1").Return(&domain.Case{
		ID:     "case-1",
		Status: domain.CaseStatusDone,
	}, nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	status := string(domain.CaseStatusInProgress)
	_, err := svc.Advance(ctx, staffAccount(), "case-1", AdvanceInput{Status: &status})
	assert.Equal(t, "CASE_DONE", domainErrCode(t, err))
	cases.AssertNotCalled(t, "UpdateStatusWithLog", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvance_SetsStatusAndAppendsLog(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "case-1").Return(&domain.Case{
		ID:     "case-1",
		Status: domain.CaseStatusPending,
	}, nil)
	cases.On("UpdateStatusWithLog", mock.Anything,
		mock.MatchedBy(func(kase *domain.Case) bool {
			return kase.Status == domain.CaseStatusAccepted
		}),
		mock.MatchedBy(func(update *domain.CaseUpdate) bool {
			return update.CaseID == "case-1" &&
				update.Status == domain.CaseStatusAccepted &&
				update.Note != nil && *update.Note == "picked up"
		}),
	).Return(nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	status := string(domain.CaseStatusAccepted)
	note := "picked up"
	kase, err := svc.Advance(ctx, staffAccount(), "case-1", AdvanceInput{Status: &status, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusAccepted, kase.Status)
	cases.AssertExpectations(t)
}

func TestAdvance_NoStatusStillAppendsLog(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "case-1").Return(&domain.Case{
		ID:     "case-1",
		Status: domain.CaseStatusInProgress,
	}, nil)
	cases.On("UpdateStatusWithLog", mock.Anything,
		mock.MatchedBy(func(kase *domain.Case) bool {
			return kase.Status == domain.CaseStatusInProgress
		}),
		mock.MatchedBy(func(update *domain.CaseUpdate) bool {
			return update.Status == domain.CaseStatusInProgress &&
				update.Location != nil && *update.Location == "warehouse"
		}),
	).Return(nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	location := "warehouse"
	kase, err := svc.Advance(ctx, staffAccount(), "case-1", AdvanceInput{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusInProgress, kase.Status)
	cases.AssertExpectations(t)
}

func TestAdvance_BackwardTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "case-1").Return(&domain.Case{
		ID:     "case-1",
		Status: domain.CaseStatusDelivered,
	}, nil)
	cases.On("UpdateStatusWithLog", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	status := string(domain.CaseStatusAccepted)
	kase, err := svc.Advance(ctx, staffAccount(), "case-1", AdvanceInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusAccepted, kase.Status)
}

func TestAdvance_RejectsUnknownStatusValue(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	cases.On("GetByID", mock.Anything, "case-1").Return(&domain.Case{
		ID:     "case-1",
		Status: domain.CaseStatusPending,
	}, nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	status := "shredded"
	_, err := svc.Advance(ctx, staffAccount(), "case-1", AdvanceInput{Status: &status})
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	cases.AssertNotCalled(t, "UpdateStatusWithLog", mock.Anything, mock.Anything, mock.Anything)
}

func TestListOwn_ReturnsOwnCases(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	own := []domain.Case{{ID: "case-1", AccountID: "acc-client"}}
	cases.On("ListByAccount", mock.Anything, "acc-client").Return(own, nil).Twice()

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	first, err := svc.ListOwn(ctx, clientAccount())
	require.NoError(t, err)
	second, err := svc.ListOwn(ctx, clientAccount())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListAll_ClientForbidden(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})
	_, err := svc.ListAll(ctx, clientAccount())
	assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	cases.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestListPending_StaffOnly(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	pending := []domain.Case{{ID: "case-1", Status: domain.CaseStatusPending}}
	cases.On("ListByStatus", mock.Anything, domain.CaseStatusPending).Return(pending, nil)

	svc := newLifecycleService(cases, &mockCaseUpdateRepo{})

	_, err := svc.ListPending(ctx, clientAccount())
	assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))

	got, err := svc.ListPending(ctx, staffAccount())
	require.NoError(t, err)
	assert.Equal(t, pending, got)
}

func TestListTaken_AttachesOrderedHistory(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	updates := &mockCaseUpdateRepo{}

	taken := []domain.Case{{ID: "case-1", Status: domain.CaseStatusDelivered}}
	history := []domain.CaseUpdate{
		{CaseID: "case-1", Status: domain.CaseStatusAccepted, UpdateTime: time.Now().Add(-2 * time.Hour)},
		{CaseID: "case-1", Status: domain.CaseStatusDelivered, UpdateTime: time.Now().Add(-time.Hour)},
	}
	cases.On("ListExcludingStatus", mock.Anything, domain.CaseStatusPending).Return(taken, nil)
	updates.On("ListByCase", mock.Anything, "case-1").Return(history, nil)

	svc := newLifecycleService(cases, updates)
	got, err := svc.ListTaken(ctx, staffAccount())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Updates, 2)
	// current status matches the last appended entry
	assert.Equal(t, got[0].Case.Status, got[0].Updates[len(got[0].Updates)-1].Status)
}

func TestListTaken_HistoryReadFailurePropagates(t *testing.T) {
	ctx := context.Background()
	cases := &mockCaseRepo{}
	updates := &mockCaseUpdateRepo{}

	cases.On("ListExcludingStatus", mock.Anything, domain.CaseStatusPending).
		Return([]domain.Case{{ID: "case-1"}}, nil)
	updates.On("ListByCase", mock.Anything, "case-1").Return(nil, errors.New("connection reset"))

	svc := newLifecycleService(cases, updates)
	_, err := svc.ListTaken(ctx, staffAccount())
	require.Error(t, err)
}
