package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/address-verification/internal/domain"
)

// ChangeRequestRepository stores proposed edits and their dispositions.
type ChangeRequestRepository interface {
	// SavePending creates the pending request for the code, or coalesces
	// the proposed data into the existing one. The at-most-one-pending
	// invariant is backed by a partial unique index, so concurrent double
	// submissions cannot create two pending rows.
	SavePending(ctx context.Context, change *domain.ChangeRequest) (*domain.ChangeRequest, error)

	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error)

	// FindPendingByCode returns the single pending request for a code, or
	// ErrChangeNotFound.
	FindPendingByCode(ctx context.Context, uniqueCode string) (*domain.ChangeRequest, error)

	// UpdateStatus moves a request into a terminal state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ChangeStatus) error

	// List returns a page of requests, newest first. Empty status or "all"
	// disables the filter. Person summaries are joined where linked.
	List(ctx context.Context, status domain.ChangeStatus, page, limit int) ([]*domain.ChangeRequest, int, error)

	CountByStatus(ctx context.Context, status domain.ChangeStatus) (int, error)
}
