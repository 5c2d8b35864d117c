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
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

func TestPerson_Create_GeneratesReferenceCode(t *testing.T) {
	personRepo := &MockPersonRepository{}
	uc := usecase.NewPersonUseCase(personRepo, zap.NewNop())

	personRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Person) bool {
		return len(p.UniqueCode) == code.Length && p.FirstName == "Ayşe"
	})).Return(&domain.Person{ID: uuid.New()}, nil)

	_, err := uc.Create(context.Background(), &dto.CreatePersonRequest{
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
	})

	assert.NoError(t, err)
	personRepo.AssertExpectations(t)
}

func TestPerson_Update_FlattensNestedAddress(t *testing.T) {
	personRepo := &MockPersonRepository{}
	uc := usecase.NewPersonUseCase(personRepo, zap.NewNop())
	id := uuid.New()

	personRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasNested := fields["address"]
		return fields["province"] == "Ankara" && !hasNested
	})).Return(&domain.Person{ID: id}, nil)

	_, err := uc.Update(context.Background(), id, dto.UpdatePersonRequest{
		"address": map[string]interface{}{"province": "Ankara"},
	})

	assert.NoError(t, err)
}

func TestPerson_List_Pagination(t *testing.T) {
	personRepo := &MockPersonRepository{}
	uc := usecase.NewPersonUseCase(personRepo, zap.NewNop())

	personRepo.On("List", mock.Anything, "yılmaz", 2, 10).
		Return([]*domain.Person{{}}, 11, nil)

	resp, err := uc.List(context.Background(), &dto.PersonListRequest{
		Search: "yılmaz",
		Page:   2,
		Limit:  10,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.Pages)
	assert.Equal(t, 11, resp.Pagination.Total)
}
