package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

func newReview(changeRepo *MockChangeRequestRepository, personRepo *MockPersonRepository, registrar *MockNeighborhoodRegistrar) *usecase.ReviewUseCase {
	return usecase.NewReviewUseCase(changeRepo, personRepo, registrar, zap.NewNop())
}

func TestReview_Approve_NewEntryCreatesPerson(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	uc := newReview(changeRepo, personRepo, &MockNeighborhoodRegistrar{})

	change := &domain.ChangeRequest{
		ID:         uuid.New(),
		UniqueCode: "QRST6789",
		Status:     domain.ChangeStatusPending,
		IsNewEntry: true,
		NewData: domain.JSONMap{
			"firstName": "Ali",
			"lastName":  "Kaya",
			"address": map[string]interface{}{
				"province": "Ankara",
				"district": "Çankaya",
			},
		},
	}
	created := &domain.Person{ID: uuid.New(), UniqueCode: "QRST6789"}

	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	personRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Person) bool {
		// The nested address object must be flattened before storage.
		return p.UniqueCode == "QRST6789" && p.FirstName == "Ali" && p.Province == "Ankara"
	})).Return(created, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusApproved).Return(nil)

	result, err := uc.Approve(context.Background(), change.ID, false)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeStatusApproved, result.Status)
	assert.Equal(t, created.ID, *result.PersonID)
}

func TestReview_Approve_UpdateAppliesPartialFields(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	uc := newReview(changeRepo, personRepo, &MockNeighborhoodRegistrar{})

	personID := uuid.New()
	change := &domain.ChangeRequest{
		ID:       uuid.New(),
		PersonID: &personID,
		Status:   domain.ChangeStatusPending,
		NewData:  domain.JSONMap{"province": "İzmir"},
	}

	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	personRepo.On("Update", mock.Anything, personID, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["province"] == "İzmir"
	})).Return(&domain.Person{ID: personID}, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusApproved).Return(nil)

	result, err := uc.Approve(context.Background(), change.ID, false)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeStatusApproved, result.Status)
}

func TestReview_Approve_AlreadyProcessed(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	uc := newReview(changeRepo, personRepo, &MockNeighborhoodRegistrar{})

	change := &domain.ChangeRequest{ID: uuid.New(), Status: domain.ChangeStatusApproved}
	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)

	_, err := uc.Approve(context.Background(), change.ID, false)

	assert.Equal(t, errors.ErrAlreadyProcessed, err)
	personRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	changeRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_Approve_ManualNeighborhoodRegistered(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	registrar := &MockNeighborhoodRegistrar{}
	uc := newReview(changeRepo, personRepo, registrar)

	personID := uuid.New()
	change := &domain.ChangeRequest{
		ID:       uuid.New(),
		PersonID: &personID,
		Status:   domain.ChangeStatusPending,
		NewData: domain.JSONMap{
			"province":             "Ankara",
			"district":             "Çankaya",
			"neighborhood":         "Yeni Mahalle",
			"isManualNeighborhood": true,
		},
	}

	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	personRepo.On("Update", mock.Anything, personID, mock.Anything).Return(&domain.Person{}, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusApproved).Return(nil)
	registrar.On("AddManualNeighborhood", mock.Anything, "Ankara", "Çankaya", "Yeni Mahalle").
		Return(&domain.GeoNode{}, nil)

	_, err := uc.Approve(context.Background(), change.ID, true)

	assert.NoError(t, err)
	registrar.AssertExpectations(t)
}

func TestReview_Approve_RegistrationFailureDoesNotUnwind(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	registrar := &MockNeighborhoodRegistrar{}
	uc := newReview(changeRepo, personRepo, registrar)

	personID := uuid.New()
	change := &domain.ChangeRequest{
		ID:       uuid.New(),
		PersonID: &personID,
		Status:   domain.ChangeStatusPending,
		NewData: domain.JSONMap{
			"province":             "Atlantis",
			"district":             "Merkez",
			"neighborhood":         "Liman",
			"isManualNeighborhood": "true", // string form also counts
		},
	}

	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	personRepo.On("Update", mock.Anything, personID, mock.Anything).Return(&domain.Person{}, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusApproved).Return(nil)
	registrar.On("AddManualNeighborhood", mock.Anything, "Atlantis", "Merkez", "Liman").
		Return(nil, errors.ErrProvinceNotFound)

	result, err := uc.Approve(context.Background(), change.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeStatusApproved, result.Status)
}

func TestReview_Approve_NotManualSkipsRegistration(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	registrar := &MockNeighborhoodRegistrar{}
	uc := newReview(changeRepo, personRepo, registrar)

	personID := uuid.New()
	change := &domain.ChangeRequest{
		ID:       uuid.New(),
		PersonID: &personID,
		Status:   domain.ChangeStatusPending,
		NewData:  domain.JSONMap{"neighborhood": "Kızılay Mahallesi"},
	}

	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	personRepo.On("Update", mock.Anything, personID, mock.Anything).Return(&domain.Person{}, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusApproved).Return(nil)

	_, err := uc.Approve(context.Background(), change.ID, true)

	assert.NoError(t, err)
	registrar.AssertNotCalled(t, "AddManualNeighborhood", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_Reject(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	personRepo := &MockPersonRepository{}
	uc := newReview(changeRepo, personRepo, &MockNeighborhoodRegistrar{})

	change := &domain.ChangeRequest{ID: uuid.New(), Status: domain.ChangeStatusPending}
	changeRepo.On("FindByID", mock.Anything, change.ID).Return(change, nil)
	changeRepo.On("UpdateStatus", mock.Anything, change.ID, domain.ChangeStatusRejected).Return(nil)

	result, err := uc.Reject(context.Background(), change.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChangeStatusRejected, result.Status)
	personRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_List_Pagination(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	uc := newReview(changeRepo, &MockPersonRepository{}, &MockNeighborhoodRegistrar{})

	changeRepo.On("List", mock.Anything, domain.ChangeStatusPending, 1, 20).
		Return([]*domain.ChangeRequest{{}, {}}, 45, nil)

	resp, err := uc.List(context.Background(), &dto.ChangeListRequest{Status: "pending"})

	assert.NoError(t, err)
	assert.Len(t, resp.Changes, 2)
	assert.Equal(t, 45, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
}

func TestReview_PendingCount(t *testing.T) {
	changeRepo := &MockChangeRequestRepository{}
	uc := newReview(changeRepo, &MockPersonRepository{}, &MockNeighborhoodRegistrar{})

	changeRepo.On("CountByStatus", mock.Anything, domain.ChangeStatusPending).Return(7, nil)

	count, err := uc.PendingCount(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}
