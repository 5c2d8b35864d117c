package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/code"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/usecase/dto"
)

// SubmissionUseCase is the public side of the workflow: anonymous visitors
// look records up by reference code and submit edits, which land as
// pending change requests instead of touching the person directly.
type SubmissionUseCase struct {
	personRepo repository.PersonRepository
	changeRepo repository.ChangeRequestRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewSubmissionUseCase(
	personRepo repository.PersonRepository,
	changeRepo repository.ChangeRequestRepository,
	logger *zap.Logger,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		personRepo: personRepo,
		changeRepo: changeRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Lookup returns the public view of a record. A pending change is overlaid
// on the authoritative fields so the submitter sees their in-flight edit.
// The visit is recorded as telemetry before returning.
func (uc *SubmissionUseCase) Lookup(ctx context.Context, uniqueCode string) (*dto.LookupResponse, error) {
	person, err := uc.personRepo.FindByCode(ctx, uniqueCode)
	if err != nil {
		if err == errors.ErrPersonNotFound {
			return &dto.LookupResponse{Exists: false}, nil
		}
		return nil, err
	}

	if err := uc.personRepo.AppendTelemetry(ctx, person.ID, domain.TelemetryLinkVisit, uc.now()); err != nil {
		uc.logger.Warn("Link visit telemetry failed",
			zap.String("unique_code", person.UniqueCode), zap.Error(err))
	}

	data := person.Snapshot()
	pending, err := uc.changeRepo.FindPendingByCode(ctx, person.UniqueCode)
	if err == nil {
		for k, v := range domain.FlattenAddress(pending.NewData) {
			data[k] = v
		}
	} else if err != errors.ErrChangeNotFound {
		return nil, err
	}

	return &dto.LookupResponse{Exists: true, Data: data}, nil
}

// Submit records a proposed edit. An existing code yields a pending update
// request snapshotting the current state; an unknown or absent code opens
// a brand-new entry request with a freshly generated code.
func (uc *SubmissionUseCase) Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if !hasRequiredNames(req.Data) {
		return nil, errors.ErrNameRequired
	}

	uniqueCode := strings.ToUpper(strings.TrimSpace(req.UniqueCode))
	if uniqueCode != "" {
		person, err := uc.personRepo.FindByCode(ctx, uniqueCode)
		if err == nil {
			return uc.submitUpdate(ctx, person, req.Data)
		}
		if err != errors.ErrPersonNotFound {
			return nil, err
		}
	}
	return uc.submitNewEntry(ctx, uniqueCode, req.Data)
}

func (uc *SubmissionUseCase) submitUpdate(ctx context.Context, person *domain.Person, data map[string]interface{}) (*dto.SubmitResponse, error) {
	if err := uc.personRepo.AppendTelemetry(ctx, person.ID, domain.TelemetryFormSubmission, uc.now()); err != nil {
		uc.logger.Warn("Form submission telemetry failed",
			zap.String("unique_code", person.UniqueCode), zap.Error(err))
	}

	coalesced := false
	if _, err := uc.changeRepo.FindPendingByCode(ctx, person.UniqueCode); err == nil {
		coalesced = true
	} else if err != errors.ErrChangeNotFound {
		return nil, err
	}

	change := &domain.ChangeRequest{
		PersonID:   &person.ID,
		UniqueCode: person.UniqueCode,
		OldData:    person.Snapshot(),
		NewData:    domain.JSONMap(data),
		IsNewEntry: false,
	}
	if _, err := uc.changeRepo.SavePending(ctx, change); err != nil {
		return nil, err
	}

	message := "Değişiklik talebiniz alındı. Onay sonrası güncellenecektir."
	if coalesced {
		message = "Mevcut değişiklik talebiniz güncellendi. Onay sonrası uygulanacaktır."
	}
	uc.logger.Info("Change request submitted",
		zap.String("unique_code", person.UniqueCode),
		zap.Bool("coalesced", coalesced))
	return &dto.SubmitResponse{Message: message, Type: dto.SubmitTypeUpdate}, nil
}

func (uc *SubmissionUseCase) submitNewEntry(ctx context.Context, uniqueCode string, data map[string]interface{}) (*dto.SubmitResponse, error) {
	if uniqueCode == "" {
		generated, err := code.Generate()
		if err != nil {
			return nil, err
		}
		uniqueCode = generated
	}

	change := &domain.ChangeRequest{
		UniqueCode: uniqueCode,
		NewData:    domain.JSONMap(data),
		IsNewEntry: true,
	}
	if _, err := uc.changeRepo.SavePending(ctx, change); err != nil {
		return nil, err
	}

	uc.logger.Info("New entry request submitted", zap.String("unique_code", uniqueCode))
	return &dto.SubmitResponse{
		Message:    "Kaydınız alındı. Onay sonrası sisteme eklenecektir.",
		Type:       dto.SubmitTypeNew,
		UniqueCode: uniqueCode,
	}, nil
}

// TrackClick records a call-button press for an existing record.
func (uc *SubmissionUseCase) TrackClick(ctx context.Context, uniqueCode string) error {
	person, err := uc.personRepo.FindByCode(ctx, uniqueCode)
	if err != nil {
		return err
	}
	return uc.personRepo.AppendTelemetry(ctx, person.ID, domain.TelemetryButtonClick, uc.now())
}

// hasRequiredNames enforces the only hard validation on public data:
// first and last name must be non-blank, at top level or inside a nested
// address object.
func hasRequiredNames(data map[string]interface{}) bool {
	flat := domain.FlattenAddress(domain.JSONMap(data))
	first, _ := flat["firstName"].(string)
	last, _ := flat["lastName"].(string)
	return strings.TrimSpace(first) != "" && strings.TrimSpace(last) != ""
}
