package endpoints

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// MockCatalogStore implements store.CatalogStore for testing using testify/mock
type MockCatalogStore struct {
	mock.Mock
}

func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{}
}

func (m *MockCatalogStore) CreateRole(role model.Role) error {
	args := m.Called(role)
	return args.Error(0)
}

func (m *MockCatalogStore) FetchRole(roleID string) (*model.Role, error) {
	args := m.Called(roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockCatalogStore) ListRoles() ([]model.Role, error) {
	args := m.Called()
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockCatalogStore) UpdateRole(roleID, name string, classification model.Classification) error {
	args := m.Called(roleID, name, classification)
	return args.Error(0)
}

func (m *MockCatalogStore) DeleteRole(roleID string, cascade bool) error {
	args := m.Called(roleID, cascade)
	return args.Error(0)
}

func (m *MockCatalogStore) RoleExists(roleID string) bool {
	args := m.Called(roleID)
	return args.Bool(0)
}

func (m *MockCatalogStore) CreateResource(resource model.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *MockCatalogStore) FetchResource(resourceID string) (*model.Resource, error) {
	args := m.Called(resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockCatalogStore) ListResources() ([]model.Resource, error) {
	args := m.Called()
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockCatalogStore) ResourceExists(resourceID string) bool {
	args := m.Called(resourceID)
	return args.Bool(0)
}

func (m *MockCatalogStore) RetireResource(resourceID string) error {
	args := m.Called(resourceID)
	return args.Error(0)
}

// MockGrantsStore implements store.GrantsStore for testing using testify/mock
type MockGrantsStore struct {
	mock.Mock
}

func NewMockGrantsStore() *MockGrantsStore {
	return &MockGrantsStore{}
}

func (m *MockGrantsStore) SetGrant(roleID, resourceID string, level model.Level) error {
	args := m.Called(roleID, resourceID, level)
	return args.Error(0)
}

func (m *MockGrantsStore) CycleGrant(roleID, resourceID string) (model.Level, error) {
	args := m.Called(roleID, resourceID)
	return args.Get(0).(model.Level), args.Error(1)
}

func (m *MockGrantsStore) EffectiveLevel(roleID, resourceID string) (model.Level, error) {
	args := m.Called(roleID, resourceID)
	return args.Get(0).(model.Level), args.Error(1)
}

func (m *MockGrantsStore) BulkApply(roleIDs, resourceIDs []string, level model.Level) error {
	args := m.Called(roleIDs, resourceIDs, level)
	return args.Error(0)
}

func (m *MockGrantsStore) Matrix() ([]model.PermissionGrant, error) {
	args := m.Called()
	return args.Get(0).([]model.PermissionGrant), args.Error(1)
}

// MockRequestsStore implements store.RequestsStore for testing using testify/mock
type MockRequestsStore struct {
	mock.Mock
}

func NewMockRequestsStore() *MockRequestsStore {
	return &MockRequestsStore{}
}

func (m *MockRequestsStore) CreateRequest(req *model.AccessRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockRequestsStore) FetchRequest(requestID string) (*model.AccessRequest, error) {
	args := m.Called(requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessRequest), args.Error(1)
}

func (m *MockRequestsStore) ListRequests(filter store.RequestFilter) ([]model.AccessRequest, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessRequest), args.Error(1)
}

func (m *MockRequestsStore) UpdateDecision(requestID string, expectedVersion int, status model.RequestStatus, steps []model.ApprovalStep) error {
	args := m.Called(requestID, expectedVersion, status, steps)
	return args.Error(0)
}

func (m *MockRequestsStore) UpdateAssessment(requestID string, expectedVersion int, score int, level model.RiskLevel, factors []model.RiskFactor) error {
	args := m.Called(requestID, expectedVersion, score, level, factors)
	return args.Error(0)
}

func (m *MockRequestsStore) ListOverdue(now time.Time) ([]model.AccessRequest, error) {
	args := m.Called(now)
	return args.Get(0).([]model.AccessRequest), args.Error(1)
}

// MockViolationsStore implements store.ViolationsStore for testing using testify/mock
type MockViolationsStore struct {
	mock.Mock
}

func NewMockViolationsStore() *MockViolationsStore {
	return &MockViolationsStore{}
}

func (m *MockViolationsStore) RecordViolation(v *model.Violation) error {
	args := m.Called(v)
	return args.Error(0)
}

func (m *MockViolationsStore) FetchViolation(violationID string) (*model.Violation, error) {
	args := m.Called(violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Violation), args.Error(1)
}

func (m *MockViolationsStore) ListViolations(framework string, from, until time.Time) ([]model.Violation, error) {
	args := m.Called(framework, from, until)
	return args.Get(0).([]model.Violation), args.Error(1)
}

func (m *MockViolationsStore) UpdateViolationStatus(violationID string, status model.ViolationStatus) error {
	args := m.Called(violationID, status)
	return args.Error(0)
}

func (m *MockViolationsStore) Frameworks() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

// MockMetricsStore implements store.MetricsStore for testing using testify/mock
type MockMetricsStore struct {
	mock.Mock
}

func NewMockMetricsStore() *MockMetricsStore {
	return &MockMetricsStore{}
}

func (m *MockMetricsStore) SaveMetric(metric *model.ComplianceMetric) error {
	args := m.Called(metric)
	return args.Error(0)
}

func (m *MockMetricsStore) FetchMetric(framework string, periodStart time.Time) (*model.ComplianceMetric, error) {
	args := m.Called(framework, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComplianceMetric), args.Error(1)
}

func (m *MockMetricsStore) LatestMetrics() ([]model.ComplianceMetric, error) {
	args := m.Called()
	return args.Get(0).([]model.ComplianceMetric), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
