package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/repository/cache"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

func newDefinition(nodeRepo *MockGeoNodeRepository, cacheRepo *MockCacheRepository) *usecase.DefinitionUseCase {
	return usecase.NewDefinitionUseCase(nodeRepo, cacheRepo, zap.NewNop())
}

func TestDefinition_List_EnrichesAncestry(t *testing.T) {
	nodeRepo := &MockGeoNodeRepository{}
	uc := newDefinition(nodeRepo, &MockCacheRepository{})

	neighborhoods := []*domain.GeoNode{
		{PlaceID: "neighborhood_5001", Type: domain.NodeTypeNeighborhood, ParentID: "district_101", Name: "Kızılay Mahallesi"},
		{PlaceID: "neighborhood_custom_1700000000000", Type: domain.NodeTypeNeighborhood, ParentID: "district_101", Name: "Yeni Mahalle"},
	}
	district := &domain.GeoNode{PlaceID: "district_101", Type: domain.NodeTypeDistrict, ParentID: "province_6", Name: "Çankaya"}
	province := &domain.GeoNode{PlaceID: "province_6", Type: domain.NodeTypeProvince, Name: "Ankara"}

	nodeRepo.On("Search", mock.Anything, domain.NodeTypeNeighborhood, "district_101", "").Return(neighborhoods, nil)
	nodeRepo.On("FindByPlaceIDs", mock.Anything, []string{"district_101"}).Return([]*domain.GeoNode{district}, nil)
	nodeRepo.On("FindByPlaceIDs", mock.Anything, []string{"province_6"}).Return([]*domain.GeoNode{province}, nil)

	items, err := uc.List(context.Background(), &dto.DefinitionListRequest{
		Type:     "neighborhood",
		ParentID: "district_101",
	})

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Çankaya", items[0].DistrictName)
	assert.Equal(t, "Ankara", items[0].ProvinceName)
	assert.False(t, items[0].IsManual)
	assert.True(t, items[1].IsManual)
}

func TestDefinition_List_RejectsUnknownType(t *testing.T) {
	uc := newDefinition(&MockGeoNodeRepository{}, &MockCacheRepository{})

	_, err := uc.List(context.Background(), &dto.DefinitionListRequest{Type: "country"})

	assert.Equal(t, errors.ErrInvalidRequest, err)
}

func TestDefinition_Add_ChainsFormattedAddress(t *testing.T) {
	nodeRepo := &MockGeoNodeRepository{}
	cacheRepo := &MockCacheRepository{}
	uc := newDefinition(nodeRepo, cacheRepo)

	parent := &domain.GeoNode{
		PlaceID:          "province_6",
		Type:             domain.NodeTypeProvince,
		Name:             "Ankara",
		FormattedAddress: "Ankara",
	}
	nodeRepo.On("FindByPlaceID", mock.Anything, "province_6").Return(parent, nil)
	nodeRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(n *domain.GeoNode) bool {
		return n.IsManual() && n.FormattedAddress == "Gölbaşı, Ankara"
	})).Return(nil)
	cacheRepo.On("Delete", mock.Anything, []string{cache.KeyDistricts("province_6")}).Return(nil)

	node, err := uc.Add(context.Background(), &dto.AddDefinitionRequest{
		Type:     "district",
		Name:     "Gölbaşı",
		ParentID: "province_6",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.NodeTypeDistrict, node.Type)
	cacheRepo.AssertExpectations(t)
}

func TestDefinition_Add_NonProvinceRequiresParent(t *testing.T) {
	uc := newDefinition(&MockGeoNodeRepository{}, &MockCacheRepository{})

	_, err := uc.Add(context.Background(), &dto.AddDefinitionRequest{
		Type: "district",
		Name: "Merkez",
	})

	assert.Equal(t, errors.ErrInvalidRequest, err)
}

func TestDefinition_Delete_RefusesWithChildren(t *testing.T) {
	nodeRepo := &MockGeoNodeRepository{}
	uc := newDefinition(nodeRepo, &MockCacheRepository{})

	node := &domain.GeoNode{PlaceID: "province_6", Type: domain.NodeTypeProvince, Name: "Ankara"}
	nodeRepo.On("FindByPlaceID", mock.Anything, "province_6").Return(node, nil)
	nodeRepo.On("CountChildren", mock.Anything, "province_6").Return(25, nil)

	err := uc.Delete(context.Background(), "province_6")

	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.CodeHasChildren, appErr.Code)
	assert.Contains(t, appErr.Message, "25")
	nodeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDefinition_Delete_ChildlessNode(t *testing.T) {
	nodeRepo := &MockGeoNodeRepository{}
	cacheRepo := &MockCacheRepository{}
	uc := newDefinition(nodeRepo, cacheRepo)

	node := &domain.GeoNode{
		PlaceID:  "neighborhood_custom_1700000000000",
		Type:     domain.NodeTypeNeighborhood,
		ParentID: "district_101",
		Name:     "Yeni Mahalle",
	}
	nodeRepo.On("FindByPlaceID", mock.Anything, node.PlaceID).Return(node, nil)
	nodeRepo.On("CountChildren", mock.Anything, node.PlaceID).Return(0, nil)
	nodeRepo.On("Delete", mock.Anything, node.PlaceID).Return(nil)
	cacheRepo.On("Delete", mock.Anything, []string{cache.KeyNeighborhoods("district_101")}).Return(nil)

	err := uc.Delete(context.Background(), node.PlaceID)

	assert.NoError(t, err)
	nodeRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}
