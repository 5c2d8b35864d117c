package repository

import (
	"context"

	"github.com/address-verification/internal/domain"
)

// GeoNodeRepository is the durable store of address-hierarchy nodes.
type GeoNodeRepository interface {
	// Upsert creates or replaces a node keyed by place id. Idempotent:
	// concurrent calls with identical content coalesce to one row.
	Upsert(ctx context.Context, node *domain.GeoNode) error

	// FindByTypeAndParent returns the children of parentID at the given
	// level in Turkish alphabetical order. Empty slice when none exist.
	FindByTypeAndParent(ctx context.Context, t domain.NodeType, parentID string) ([]*domain.GeoNode, error)

	// FindByTypeAndName resolves a node by case-insensitive exact name,
	// optionally scoped to a parent. Returns ErrNodeNotFound when absent.
	FindByTypeAndName(ctx context.Context, t domain.NodeType, name, parentID string) (*domain.GeoNode, error)

	// Search lists nodes of a type with optional parent scope and
	// case-insensitive name substring filter, Turkish-sorted.
	Search(ctx context.Context, t domain.NodeType, parentID, nameSubstr string) ([]*domain.GeoNode, error)

	FindByPlaceID(ctx context.Context, placeID string) (*domain.GeoNode, error)
	FindByPlaceIDs(ctx context.Context, placeIDs []string) ([]*domain.GeoNode, error)

	CountByType(ctx context.Context, t domain.NodeType) (int, error)
	CountChildren(ctx context.Context, parentID string) (int, error)

	// Delete removes a childless node. Callers must enforce the
	// has-children refusal before the delete is visible to clients.
	Delete(ctx context.Context, placeID string) error
}
