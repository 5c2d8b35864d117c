package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/turkish"
)

type geoNodeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGeoNodeRepository(db *DB) repository.GeoNodeRepository {
	return &geoNodeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const geoNodeColumns = `place_id, type, parent_id, name, formatted_address, created_at, updated_at`

// Upsert creates or replaces the node keyed by place id. Re-running with
// identical content coalesces into the same row, which is what makes
// concurrent resolves and repeated syncs safe.
func (r *geoNodeRepository) Upsert(ctx context.Context, node *domain.GeoNode) error {
	query := `
		INSERT INTO geo_nodes (place_id, type, parent_id, name, formatted_address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (place_id) DO UPDATE SET
			type = EXCLUDED.type,
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			formatted_address = EXCLUDED.formatted_address,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		node.PlaceID, node.Type, node.ParentID, node.Name, node.FormattedAddress,
	)
	if err != nil {
		r.logger.Error("Failed to upsert geo node",
			zap.String("place_id", node.PlaceID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *geoNodeRepository) FindByTypeAndParent(ctx context.Context, t domain.NodeType, parentID string) ([]*domain.GeoNode, error) {
	query := `
		SELECT ` + geoNodeColumns + `
		FROM geo_nodes
		WHERE type = $1 AND parent_id = $2
	`

	var nodes []*domain.GeoNode
	if err := r.db.SelectContext(ctx, &nodes, query, t, parentID); err != nil {
		r.logger.Error("Failed to list geo nodes",
			zap.String("type", string(t)),
			zap.String("parent_id", parentID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	sortNodes(nodes)
	return nodes, nil
}

// FindByTypeAndName matches case-insensitively under Turkish casing rules.
// Postgres LOWER() folds the dotted/dotless I pair wrong, so candidates are
// narrowed by type/parent in SQL and compared in Go.
func (r *geoNodeRepository) FindByTypeAndName(ctx context.Context, t domain.NodeType, name, parentID string) (*domain.GeoNode, error) {
	query := `SELECT ` + geoNodeColumns + ` FROM geo_nodes WHERE type = $1`
	args := []interface{}{t}
	if parentID != "" {
		query += ` AND parent_id = $2`
		args = append(args, parentID)
	}

	var nodes []*domain.GeoNode
	if err := r.db.SelectContext(ctx, &nodes, query, args...); err != nil {
		r.logger.Error("Failed to query geo nodes by name",
			zap.String("type", string(t)),
			zap.String("name", name),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, node := range nodes {
		if turkish.EqualFold(node.Name, name) {
			return node, nil
		}
	}

	return nil, errors.ErrNodeNotFound
}

func (r *geoNodeRepository) Search(ctx context.Context, t domain.NodeType, parentID, nameSubstr string) ([]*domain.GeoNode, error) {
	query := `SELECT ` + geoNodeColumns + ` FROM geo_nodes WHERE type = $1`
	args := []interface{}{t}
	if parentID != "" {
		query += ` AND parent_id = $2`
		args = append(args, parentID)
	}

	var nodes []*domain.GeoNode
	if err := r.db.SelectContext(ctx, &nodes, query, args...); err != nil {
		r.logger.Error("Failed to search geo nodes",
			zap.String("type", string(t)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if nameSubstr != "" {
		needle := turkish.Fold(nameSubstr)
		filtered := nodes[:0]
		for _, node := range nodes {
			if strings.Contains(turkish.Fold(node.Name), needle) {
				filtered = append(filtered, node)
			}
		}
		nodes = filtered
	}

	sortNodes(nodes)
	return nodes, nil
}

func (r *geoNodeRepository) FindByPlaceID(ctx context.Context, placeID string) (*domain.GeoNode, error) {
	query := `SELECT ` + geoNodeColumns + ` FROM geo_nodes WHERE place_id = $1`

	var node domain.GeoNode
	err := r.db.GetContext(ctx, &node, query, placeID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNodeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get geo node", zap.String("place_id", placeID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &node, nil
}

func (r *geoNodeRepository) FindByPlaceIDs(ctx context.Context, placeIDs []string) ([]*domain.GeoNode, error) {
	if len(placeIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+geoNodeColumns+` FROM geo_nodes WHERE place_id IN (?)`, placeIDs)
	if err != nil {
		return nil, errors.ErrDatabaseError
	}
	query = r.db.Rebind(query)

	var nodes []*domain.GeoNode
	if err := r.db.SelectContext(ctx, &nodes, query, args...); err != nil {
		r.logger.Error("Failed to get geo nodes by ids", zap.Int("count", len(placeIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return nodes, nil
}

func (r *geoNodeRepository) CountByType(ctx context.Context, t domain.NodeType) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM geo_nodes WHERE type = $1`, t)
	if err != nil {
		r.logger.Error("Failed to count geo nodes", zap.String("type", string(t)), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func (r *geoNodeRepository) CountChildren(ctx context.Context, parentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM geo_nodes WHERE parent_id = $1`, parentID)
	if err != nil {
		r.logger.Error("Failed to count children", zap.String("parent_id", parentID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func (r *geoNodeRepository) Delete(ctx context.Context, placeID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geo_nodes WHERE place_id = $1`, placeID)
	if err != nil {
		r.logger.Error("Failed to delete geo node", zap.String("place_id", placeID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrNodeNotFound
	}

	return nil
}

func sortNodes(nodes []*domain.GeoNode) {
	turkish.SortByName(nodes, func(n *domain.GeoNode) string { return n.Name })
}
