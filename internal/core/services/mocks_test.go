package services_test

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, organizationID string, params portsrepo.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionsInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllTransactions(ctx context.Context, organizationID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindCommissionByDealID(ctx context.Context, organizationID, dealID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, organizationID, transactionID string, deletedBy string) error {
	args := m.Called(ctx, organizationID, transactionID, deletedBy)
	return args.Error(0)
}

// --- Mock DealRepository ---

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, organizationID, dealID string) (*domain.Deal, error) {
	args := m.Called(ctx, organizationID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindDeals(ctx context.Context, organizationID string, filter portsrepo.ListDealsFilter) ([]domain.Deal, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindOpenDeals(ctx context.Context, organizationID string) ([]domain.Deal, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindClosedWonInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Deal, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) UpdateDeal(ctx context.Context, deal domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) UpdateDealStage(ctx context.Context, organizationID, dealID string, stage domain.DealStage, updatedBy string) error {
	args := m.Called(ctx, organizationID, dealID, stage, updatedBy)
	return args.Error(0)
}

func (m *MockDealRepository) DeleteDeal(ctx context.Context, organizationID, dealID string, deletedBy string) error {
	args := m.Called(ctx, organizationID, dealID, deletedBy)
	return args.Error(0)
}

// --- Mock ProfileRepository ---

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, organizationID, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, organizationID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) CreateOwnerWithOrganization(ctx context.Context, org domain.Organization, profile domain.Profile) error {
	args := m.Called(ctx, org, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindProfileByIDRedacted(ctx context.Context, organizationID, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, organizationID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileForAuth(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfiles(ctx context.Context, organizationID string) ([]domain.Profile, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfilesRedacted(ctx context.Context, organizationID string) ([]domain.Profile, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateCommissionConfig(ctx context.Context, organizationID, profileID string, percent decimal.Decimal, basis domain.CommissionBasis, updatedBy string) error {
	args := m.Called(ctx, organizationID, profileID, percent, basis, updatedBy)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateRefreshToken(ctx context.Context, profileID, refreshTokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, profileID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockProfileRepository) MarkProfileDeleted(ctx context.Context, organizationID, profileID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, organizationID, profileID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClients(ctx context.Context, organizationID string) ([]domain.Client, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientsWithContractEndingBetween(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Client, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, organizationID, clientID string, deletedBy string) error {
	args := m.Called(ctx, organizationID, clientID, deletedBy)
	return args.Error(0)
}

// --- Mock ProjectRepository ---

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, organizationID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindProjects(ctx context.Context, organizationID string) ([]domain.Project, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, organizationID, projectID string, deletedBy string) error {
	args := m.Called(ctx, organizationID, projectID, deletedBy)
	return args.Error(0)
}

// --- Mock TaskRepository ---

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, organizationID, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, organizationID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindTasks(ctx context.Context, organizationID string, filter portsrepo.ListTasksFilter) ([]domain.Task, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindActiveTasks(ctx context.Context, organizationID string) ([]domain.Task, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, organizationID, taskID string, deletedBy string) error {
	args := m.Called(ctx, organizationID, taskID, deletedBy)
	return args.Error(0)
}
