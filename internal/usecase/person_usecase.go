package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/code"
	"github.com/address-verification/internal/usecase/dto"
)

// PersonUseCase is the admin CRUD surface over the person directory.
// Edits here bypass the change-request workflow by design.
type PersonUseCase struct {
	personRepo repository.PersonRepository
	logger     *zap.Logger
}

func NewPersonUseCase(personRepo repository.PersonRepository, logger *zap.Logger) *PersonUseCase {
	return &PersonUseCase{
		personRepo: personRepo,
		logger:     logger,
	}
}

func (uc *PersonUseCase) List(ctx context.Context, req *dto.PersonListRequest) (*dto.PersonListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	persons, total, err := uc.personRepo.List(ctx, req.Search, page, limit)
	if err != nil {
		return nil, err
	}
	return &dto.PersonListResponse{
		Persons:    persons,
		Pagination: paginate(page, limit, total),
	}, nil
}

func (uc *PersonUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	return uc.personRepo.FindByID(ctx, id)
}

// Create registers a person directly, generating a fresh reference code.
func (uc *PersonUseCase) Create(ctx context.Context, req *dto.CreatePersonRequest) (*domain.Person, error) {
	uniqueCode, err := code.Generate()
	if err != nil {
		return nil, err
	}

	person := &domain.Person{
		UniqueCode:   uniqueCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		Province:     req.Province,
		District:     req.District,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		BuildingNo:   req.BuildingNo,
		ApartmentNo:  req.ApartmentNo,
		PostalCode:   req.PostalCode,
		FullAddress:  req.FullAddress,
	}
	created, err := uc.personRepo.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Person created",
		zap.String("person_id", created.ID.String()),
		zap.String("unique_code", created.UniqueCode))
	return created, nil
}

// Update applies a partial field map; unknown keys are ignored by the
// repository.
func (uc *PersonUseCase) Update(ctx context.Context, id uuid.UUID, fields dto.UpdatePersonRequest) (*domain.Person, error) {
	return uc.personRepo.Update(ctx, id, domain.FlattenAddress(domain.JSONMap(fields)))
}

func (uc *PersonUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.personRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Person deleted", zap.String("person_id", id.String()))
	return nil
}
