package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/address-verification/internal/domain"
)

// PersonRepository is the authoritative person directory. Unique code
// uniqueness is guaranteed here, not by callers.
type PersonRepository interface {
	// FindByCode looks a person up by reference code. Codes are normalized
	// to uppercase before comparison. Returns ErrPersonNotFound when absent.
	FindByCode(ctx context.Context, uniqueCode string) (*domain.Person, error)

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	Create(ctx context.Context, person *domain.Person) (*domain.Person, error)

	// Update applies a partial field map (JSON field keys); unspecified
	// fields remain unchanged.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Person, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of persons, newest first, optionally filtered by
	// a search term across name, contact fields and code.
	List(ctx context.Context, search string, page, limit int) ([]*domain.Person, int, error)

	// AppendTelemetry appends one timestamp to the person's append-only
	// engagement log of the given kind.
	AppendTelemetry(ctx context.Context, id uuid.UUID, kind domain.TelemetryKind, at time.Time) error
}
