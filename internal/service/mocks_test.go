package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/case-service/internal/domain"
)

type mockCaseRepo struct {
	mock.Mock
}

func (m *mockCaseRepo) Create(ctx context.Context, kase *domain.Case) error {
	args := m.Called(ctx, kase)
	return args.Error(0)
}

func (m *mockCaseRepo) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if kase := args.Get(0); kase != nil {
		return kase.(*domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Case, error) {
	args := m.Called(ctx, accountID)
	if cases := args.Get(0); cases != nil {
		return cases.([]domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepo) ListAll(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if cases := args.Get(0); cases != nil {
		return cases.([]domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepo) ListByStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error) {
	args := m.Called(ctx, status)
	if cases := args.Get(0); cases != nil {
		return cases.([]domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepo) ListExcludingStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error) {
	args := m.Called(ctx, status)
	if cases := args.Get(0); cases != nil {
		return cases.([]domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCaseRepo) UpdateStatusWithLog(ctx context.Context, kase *domain.Case, update *domain.CaseUpdate) error {
	args := m.Called(ctx, kase, update)
	return args.Error(0)
}

type mockCaseUpdateRepo struct {
	mock.Mock
}

func (m *mockCaseUpdateRepo) ListByCase(ctx context.Context, caseID string) ([]domain.CaseUpdate, error) {
	args := m.Called(ctx, caseID)
	if updates := args.Get(0); updates != nil {
		return updates.([]domain.CaseUpdate), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if account := args.Get(0); account != nil {
		return account.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if account := args.Get(0); account != nil {
		return account.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type mockSessionRegistry struct {
	mock.Mock
}

func (m *mockSessionRegistry) Create(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionRegistry) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Generate(account *domain.Account, sessionID string) (string, time.Time, error) {
	args := m.Called(account, sessionID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
