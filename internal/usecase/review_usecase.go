package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/usecase/dto"
)

// neighborhoodRegistrar is the slice of the resolver the review flow
// needs: registering a hand-entered neighborhood into the address cache.
type neighborhoodRegistrar interface {
	AddManualNeighborhood(ctx context.Context, provinceName, districtName, neighborhoodName string) (*domain.GeoNode, error)
}

// ReviewUseCase is the admin disposition side of the workflow: listing
// pending requests and approving or rejecting them.
type ReviewUseCase struct {
	changeRepo repository.ChangeRequestRepository
	personRepo repository.PersonRepository
	registrar  neighborhoodRegistrar
	logger     *zap.Logger
}

func NewReviewUseCase(
	changeRepo repository.ChangeRequestRepository,
	personRepo repository.PersonRepository,
	registrar neighborhoodRegistrar,
	logger *zap.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		changeRepo: changeRepo,
		personRepo: personRepo,
		registrar:  registrar,
		logger:     logger,
	}
}

// List returns a page of change requests, newest first, optionally
// filtered by status.
func (uc *ReviewUseCase) List(ctx context.Context, req *dto.ChangeListRequest) (*dto.ChangeListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	changes, total, err := uc.changeRepo.List(ctx, domain.ChangeStatus(req.Status), page, limit)
	if err != nil {
		return nil, err
	}
	return &dto.ChangeListResponse{
		Changes:    changes,
		Pagination: paginate(page, limit, total),
	}, nil
}

// PendingCount returns the number of requests awaiting disposition, used
// for the admin badge.
func (uc *ReviewUseCase) PendingCount(ctx context.Context) (int, error) {
	return uc.changeRepo.CountByStatus(ctx, domain.ChangeStatusPending)
}

// Approve applies a pending change: new-entry requests create a person
// with the request's code, update requests partially apply the proposed
// fields. After the disposition is persisted, a hand-entered neighborhood
// is registered into the address cache best-effort when the admin asked
// for it; a failure there is logged and never unwinds the approval.
func (uc *ReviewUseCase) Approve(ctx context.Context, id uuid.UUID, addToSystem bool) (*domain.ChangeRequest, error) {
	change, err := uc.changeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if change.Status != domain.ChangeStatusPending {
		return nil, errors.ErrAlreadyProcessed
	}

	fields := domain.FlattenAddress(change.NewData)

	if change.IsNewEntry {
		person := personFromFields(change.UniqueCode, fields)
		created, err := uc.personRepo.Create(ctx, person)
		if err != nil {
			return nil, err
		}
		change.PersonID = &created.ID
	} else {
		if change.PersonID == nil {
			return nil, errors.ErrPersonNotFound
		}
		if _, err := uc.personRepo.Update(ctx, *change.PersonID, fields); err != nil {
			return nil, err
		}
	}

	if err := uc.changeRepo.UpdateStatus(ctx, change.ID, domain.ChangeStatusApproved); err != nil {
		return nil, err
	}
	change.Status = domain.ChangeStatusApproved

	if addToSystem && change.IsManualNeighborhood() {
		uc.registerManualNeighborhood(ctx, change, fields)
	}

	uc.logger.Info("Change request approved",
		zap.String("change_id", change.ID.String()),
		zap.String("unique_code", change.UniqueCode),
		zap.Bool("new_entry", change.IsNewEntry))
	return change, nil
}

// Reject marks a pending change as rejected without touching the person.
func (uc *ReviewUseCase) Reject(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	change, err := uc.changeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if change.Status != domain.ChangeStatusPending {
		return nil, errors.ErrAlreadyProcessed
	}

	if err := uc.changeRepo.UpdateStatus(ctx, change.ID, domain.ChangeStatusRejected); err != nil {
		return nil, err
	}
	change.Status = domain.ChangeStatusRejected

	uc.logger.Info("Change request rejected",
		zap.String("change_id", change.ID.String()),
		zap.String("unique_code", change.UniqueCode))
	return change, nil
}

func (uc *ReviewUseCase) registerManualNeighborhood(ctx context.Context, change *domain.ChangeRequest, fields domain.JSONMap) {
	province := fields.GetString("province")
	district := fields.GetString("district")
	neighborhood := fields.GetString("neighborhood")

	if _, err := uc.registrar.AddManualNeighborhood(ctx, province, district, neighborhood); err != nil {
		uc.logger.Warn("Manual neighborhood registration failed after approval",
			zap.String("change_id", change.ID.String()),
			zap.String("province", province),
			zap.String("district", district),
			zap.String("neighborhood", neighborhood),
			zap.Error(err))
		return
	}
	uc.logger.Info("Manual neighborhood registered from approval",
		zap.String("change_id", change.ID.String()),
		zap.String("neighborhood", neighborhood))
}

// personFromFields builds a person from a proposed field map; unknown keys
// (flags like isManualNeighborhood) are ignored.
func personFromFields(uniqueCode string, fields domain.JSONMap) *domain.Person {
	return &domain.Person{
		UniqueCode:   uniqueCode,
		FirstName:    fields.GetString("firstName"),
		LastName:     fields.GetString("lastName"),
		Phone:        fields.GetString("phone"),
		Email:        fields.GetString("email"),
		Province:     fields.GetString("province"),
		District:     fields.GetString("district"),
		Neighborhood: fields.GetString("neighborhood"),
		Street:       fields.GetString("street"),
		BuildingNo:   fields.GetString("buildingNo"),
		ApartmentNo:  fields.GetString("apartmentNo"),
		PostalCode:   fields.GetString("postalCode"),
		FullAddress:  fields.GetString("fullAddress"),
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func paginate(page, limit, total int) dto.Pagination {
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
