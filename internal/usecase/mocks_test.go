package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/address-verification/internal/domain"
)

// MockGeoNodeRepository is a mock of GeoNodeRepository
type MockGeoNodeRepository struct {
	mock.Mock
}

func (m *MockGeoNodeRepository) Upsert(ctx context.Context, node *domain.GeoNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockGeoNodeRepository) FindByTypeAndParent(ctx context.Context, t domain.NodeType, parentID string) ([]*domain.GeoNode, error) {
	args := m.Called(ctx, t, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoNode), args.Error(1)
}

func (m *MockGeoNodeRepository) FindByTypeAndName(ctx context.Context, t domain.NodeType, name, parentID string) (*domain.GeoNode, error) {
	args := m.Called(ctx, t, name, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoNode), args.Error(1)
}

func (m *MockGeoNodeRepository) Search(ctx context.Context, t domain.NodeType, parentID, nameSubstr string) ([]*domain.GeoNode, error) {
	args := m.Called(ctx, t, parentID, nameSubstr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoNode), args.Error(1)
}

func (m *MockGeoNodeRepository) FindByPlaceID(ctx context.Context, placeID string) (*domain.GeoNode, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoNode), args.Error(1)
}

func (m *MockGeoNodeRepository) FindByPlaceIDs(ctx context.Context, placeIDs []string) ([]*domain.GeoNode, error) {
	args := m.Called(ctx, placeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoNode), args.Error(1)
}

func (m *MockGeoNodeRepository) CountByType(ctx context.Context, t domain.NodeType) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func (m *MockGeoNodeRepository) CountChildren(ctx context.Context, parentID string) (int, error) {
	args := m.Called(ctx, parentID)
	return args.Int(0), args.Error(1)
}

func (m *MockGeoNodeRepository) Delete(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

// MockAddressSourceRepository is a mock of AddressSourceRepository
type MockAddressSourceRepository struct {
	mock.Mock
}

func (m *MockAddressSourceRepository) FetchProvinces(ctx context.Context) ([]domain.SourcePlace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourcePlace), args.Error(1)
}

func (m *MockAddressSourceRepository) FetchProvinceDetail(ctx context.Context, sourceID string) (*domain.SourceProvinceDetail, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceProvinceDetail), args.Error(1)
}

func (m *MockAddressSourceRepository) FetchDistrictDetail(ctx context.Context, sourceID string) (*domain.SourceDistrictDetail, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDistrictDetail), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetOptions(ctx context.Context, key string) ([]domain.AddressOption, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AddressOption), args.Error(1)
}

func (m *MockCacheRepository) SetOptions(ctx context.Context, key string, options []domain.AddressOption, ttl time.Duration) error {
	args := m.Called(ctx, key, options, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data []byte) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) Ack(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockPersonRepository is a mock of PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) FindByCode(ctx context.Context, uniqueCode string) (*domain.Person, error) {
	args := m.Called(ctx, uniqueCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	args := m.Called(ctx, person)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Person, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPersonRepository) List(ctx context.Context, search string, page, limit int) ([]*domain.Person, int, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Person), args.Int(1), args.Error(2)
}

func (m *MockPersonRepository) AppendTelemetry(ctx context.Context, id uuid.UUID, kind domain.TelemetryKind, at time.Time) error {
	args := m.Called(ctx, id, kind, at)
	return args.Error(0)
}

// MockChangeRequestRepository is a mock of ChangeRequestRepository
type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) SavePending(ctx context.Context, change *domain.ChangeRequest) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) FindPendingByCode(ctx context.Context, uniqueCode string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, uniqueCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ChangeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockChangeRequestRepository) List(ctx context.Context, status domain.ChangeStatus, page, limit int) ([]*domain.ChangeRequest, int, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ChangeRequest), args.Int(1), args.Error(2)
}

func (m *MockChangeRequestRepository) CountByStatus(ctx context.Context, status domain.ChangeStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// MockNeighborhoodRegistrar is a mock of the resolver slice used by the
// review flow.
type MockNeighborhoodRegistrar struct {
	mock.Mock
}

func (m *MockNeighborhoodRegistrar) AddManualNeighborhood(ctx context.Context, provinceName, districtName, neighborhoodName string) (*domain.GeoNode, error) {
	args := m.Called(ctx, provinceName, districtName, neighborhoodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoNode), args.Error(1)
}
