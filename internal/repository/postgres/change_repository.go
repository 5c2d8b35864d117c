package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
)

type changeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewChangeRepository(db *DB) repository.ChangeRequestRepository {
	return &changeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const changeColumns = `id, person_id, unique_code, old_data, new_data, status, is_new_entry, created_at, updated_at`

// SavePending inserts the pending request for a code, or coalesces the new
// proposed data into the one that already exists. The partial unique index
// on (unique_code) WHERE status = 'pending' makes the at-most-one-pending
// invariant hold even under concurrent double submission.
func (r *changeRepository) SavePending(ctx context.Context, change *domain.ChangeRequest) (*domain.ChangeRequest, error) {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	change.UniqueCode = strings.ToUpper(change.UniqueCode)

	query := `
		INSERT INTO change_requests (id, person_id, unique_code, old_data, new_data, status, is_new_entry)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		ON CONFLICT (unique_code) WHERE status = 'pending' DO UPDATE SET
			new_data = EXCLUDED.new_data,
			updated_at = NOW()
		RETURNING ` + changeColumns

	var saved domain.ChangeRequest
	err := r.db.GetContext(ctx, &saved, query,
		change.ID, change.PersonID, change.UniqueCode,
		change.OldData, change.NewData, change.IsNewEntry,
	)
	if err != nil {
		r.logger.Error("Failed to save pending change",
			zap.String("unique_code", change.UniqueCode),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &saved, nil
}

func (r *changeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	query := `SELECT ` + changeColumns + ` FROM change_requests WHERE id = $1`

	var change domain.ChangeRequest
	err := r.db.GetContext(ctx, &change, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrChangeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get change request", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &change, nil
}

func (r *changeRepository) FindPendingByCode(ctx context.Context, uniqueCode string) (*domain.ChangeRequest, error) {
	query := `
		SELECT ` + changeColumns + `
		FROM change_requests
		WHERE unique_code = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var change domain.ChangeRequest
	err := r.db.GetContext(ctx, &change, query, strings.ToUpper(uniqueCode))
	if err == sql.ErrNoRows {
		return nil, errors.ErrChangeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get pending change",
			zap.String("unique_code", uniqueCode),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &change, nil
}

// UpdateStatus moves a pending request into a terminal state. The status
// guard lives in the WHERE clause so a concurrent approve and reject
// cannot both win.
func (r *changeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ChangeStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE change_requests SET status = $1, updated_at = NOW() WHERE id = $2 AND status = 'pending'`,
		status, id,
	)
	if err != nil {
		r.logger.Error("Failed to update change status",
			zap.String("id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrAlreadyProcessed
	}

	return nil
}

func (r *changeRepository) List(ctx context.Context, status domain.ChangeStatus, page, limit int) ([]*domain.ChangeRequest, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := ""
	args := []interface{}{}
	if status != "" && status != "all" {
		where = `WHERE c.status = $1`
		args = append(args, status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM change_requests c ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.logger.Error("Failed to count change requests", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := fmt.Sprintf(`
		SELECT
			c.id, c.person_id, c.unique_code, c.old_data, c.new_data,
			c.status, c.is_new_entry, c.created_at, c.updated_at,
			p.id, p.unique_code, p.first_name, p.last_name
		FROM change_requests c
		LEFT JOIN persons p ON p.id = c.person_id
		%s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list change requests", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}
	defer rows.Close()

	var changes []*domain.ChangeRequest
	for rows.Next() {
		var c domain.ChangeRequest
		var pID uuid.NullUUID
		var pCode, pFirst, pLast sql.NullString

		err := rows.Scan(
			&c.ID, &c.PersonID, &c.UniqueCode, &c.OldData, &c.NewData,
			&c.Status, &c.IsNewEntry, &c.CreatedAt, &c.UpdatedAt,
			&pID, &pCode, &pFirst, &pLast,
		)
		if err != nil {
			r.logger.Error("Failed to scan change request", zap.Error(err))
			continue
		}

		if pID.Valid {
			c.Person = &domain.PersonSummary{
				ID:         pID.UUID,
				UniqueCode: pCode.String,
				FirstName:  pFirst.String,
				LastName:   pLast.String,
			}
		}

		changes = append(changes, &c)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating change request rows", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return changes, total, nil
}

func (r *changeRepository) CountByStatus(ctx context.Context, status domain.ChangeStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM change_requests WHERE status = $1`, status)
	if err != nil {
		r.logger.Error("Failed to count changes by status",
			zap.String("status", string(status)),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}
