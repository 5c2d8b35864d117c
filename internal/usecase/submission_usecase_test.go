package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/pkg/code"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

func newSubmission(personRepo *MockPersonRepository, changeRepo *MockChangeRequestRepository) *usecase.SubmissionUseCase {
	return usecase.NewSubmissionUseCase(personRepo, changeRepo, zap.NewNop())
}

func testPerson() *domain.Person {
	return &domain.Person{
		ID:         uuid.New(),
		UniqueCode: "ABCD2345",
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		Province:   "Ankara",
	}
}

func TestSubmission_Submit_NameRequired(t *testing.T) {
	uc := newSubmission(&MockPersonRepository{}, &MockChangeRequestRepository{})

	_, err := uc.Submit(context.Background(), &dto.SubmitRequest{
		Data: map[string]interface{}{"firstName": "  ", "lastName": "Yılmaz"},
	})

	assert.Equal(t, errors.ErrNameRequired, err)
}

func TestSubmission_Submit_NestedAddressNamesAccepted(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)

	personRepo.On("FindByCode", mock.Anything, mock.Anything).Return(nil, errors.ErrPersonNotFound)
	changeRepo.On("SavePending", mock.Anything, mock.Anything).
		Return(&domain.ChangeRequest{}, nil)

	resp, err := uc.Submit(context.Background(), &dto.SubmitRequest{
		UniqueCode: "zzzz9999",
		Data: map[string]interface{}{
			"address": map[string]interface{}{
				"firstName": "Ali", "lastName": "Kaya",
			},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, dto.SubmitTypeNew, resp.Type)
}

func TestSubmission_Submit_ExistingCodeCreatesUpdateRequest(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)
	person := testPerson()

	personRepo.On("FindByCode", mock.Anything, "ABCD2345").Return(person, nil)
	personRepo.On("AppendTelemetry", mock.Anything, person.ID, domain.TelemetryFormSubmission, mock.Anything).Return(nil)
	changeRepo.On("FindPendingByCode", mock.Anything, "ABCD2345").Return(nil, errors.ErrChangeNotFound)
	changeRepo.On("SavePending", mock.Anything, mock.MatchedBy(func(c *domain.ChangeRequest) bool {
		return !c.IsNewEntry &&
			c.PersonID != nil && *c.PersonID == person.ID &&
			c.OldData.GetString("province") == "Ankara" &&
			c.NewData.GetString("province") == "İzmir"
	})).Return(&domain.ChangeRequest{}, nil)

	resp, err := uc.Submit(context.Background(), &dto.SubmitRequest{
		// Lowercase input must match the stored uppercase code.
		UniqueCode: "abcd2345",
		Data: map[string]interface{}{
			"firstName": "Ayşe", "lastName": "Yılmaz", "province": "İzmir",
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, dto.SubmitTypeUpdate, resp.Type)
	assert.Empty(t, resp.UniqueCode)
	changeRepo.AssertExpectations(t)
}

func TestSubmission_Submit_RepeatSubmissionCoalesces(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)
	person := testPerson()

	personRepo.On("FindByCode", mock.Anything, "ABCD2345").Return(person, nil)
	personRepo.On("AppendTelemetry", mock.Anything, person.ID, domain.TelemetryFormSubmission, mock.Anything).Return(nil)
	changeRepo.On("FindPendingByCode", mock.Anything, "ABCD2345").
		Return(&domain.ChangeRequest{UniqueCode: "ABCD2345"}, nil)
	changeRepo.On("SavePending", mock.Anything, mock.Anything).Return(&domain.ChangeRequest{}, nil)

	resp, err := uc.Submit(context.Background(), &dto.SubmitRequest{
		UniqueCode: "ABCD2345",
		Data:       map[string]interface{}{"firstName": "Ayşe", "lastName": "Yılmaz"},
	})

	assert.NoError(t, err)
	assert.Equal(t, dto.SubmitTypeUpdate, resp.Type)
	assert.Contains(t, resp.Message, "güncellendi")
}

func TestSubmission_Submit_UnknownCodeOpensNewEntry(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)

	changeRepo.On("SavePending", mock.Anything, mock.MatchedBy(func(c *domain.ChangeRequest) bool {
		return c.IsNewEntry && c.PersonID == nil && len(c.UniqueCode) == code.Length
	})).Return(&domain.ChangeRequest{}, nil)

	resp, err := uc.Submit(context.Background(), &dto.SubmitRequest{
		Data: map[string]interface{}{"firstName": "Ali", "lastName": "Kaya"},
	})

	assert.NoError(t, err)
	assert.Equal(t, dto.SubmitTypeNew, resp.Type)
	assert.Len(t, resp.UniqueCode, code.Length)
	for _, r := range resp.UniqueCode {
		assert.Contains(t, code.Alphabet, string(r))
	}
	personRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}

func TestSubmission_Lookup_UnknownCode(t *testing.T) {
	personRepo := &MockPersonRepository{}
	uc := newSubmission(personRepo, &MockChangeRequestRepository{})

	personRepo.On("FindByCode", mock.Anything, "NOPE").Return(nil, errors.ErrPersonNotFound)

	resp, err := uc.Lookup(context.Background(), "NOPE")

	assert.NoError(t, err)
	assert.False(t, resp.Exists)
	assert.Nil(t, resp.Data)
}

func TestSubmission_Lookup_PendingOverlaysAuthoritative(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)
	person := testPerson()

	personRepo.On("FindByCode", mock.Anything, "ABCD2345").Return(person, nil)
	personRepo.On("AppendTelemetry", mock.Anything, person.ID, domain.TelemetryLinkVisit, mock.Anything).Return(nil)
	changeRepo.On("FindPendingByCode", mock.Anything, "ABCD2345").
		Return(&domain.ChangeRequest{
			NewData: domain.JSONMap{"province": "İzmir", "street": "Mithatpaşa"},
		}, nil)

	resp, err := uc.Lookup(context.Background(), "ABCD2345")

	assert.NoError(t, err)
	assert.True(t, resp.Exists)
	// Proposed values win; untouched fields fall through.
	assert.Equal(t, "İzmir", resp.Data["province"])
	assert.Equal(t, "Mithatpaşa", resp.Data["street"])
	assert.Equal(t, "Ayşe", resp.Data["firstName"])
}

func TestSubmission_Lookup_TelemetryFailureIsNotFatal(t *testing.T) {
	personRepo := &MockPersonRepository{}
	changeRepo := &MockChangeRequestRepository{}
	uc := newSubmission(personRepo, changeRepo)
	person := testPerson()

	personRepo.On("FindByCode", mock.Anything, "ABCD2345").Return(person, nil)
	personRepo.On("AppendTelemetry", mock.Anything, person.ID, domain.TelemetryLinkVisit, mock.Anything).
		Return(errors.ErrDatabaseError)
	changeRepo.On("FindPendingByCode", mock.Anything, "ABCD2345").Return(nil, errors.ErrChangeNotFound)

	resp, err := uc.Lookup(context.Background(), "ABCD2345")

	assert.NoError(t, err)
	assert.True(t, resp.Exists)
}

func TestSubmission_TrackClick(t *testing.T) {
	personRepo := &MockPersonRepository{}
	uc := newSubmission(personRepo, &MockChangeRequestRepository{})
	person := testPerson()

	personRepo.On("FindByCode", mock.Anything, "ABCD2345").Return(person, nil)
	personRepo.On("AppendTelemetry", mock.Anything, person.ID, domain.TelemetryButtonClick, mock.Anything).Return(nil)

	err := uc.TrackClick(context.Background(), "ABCD2345")

	assert.NoError(t, err)
	personRepo.AssertExpectations(t)
}
