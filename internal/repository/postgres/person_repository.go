package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
)

type personRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPersonRepository(db *DB) repository.PersonRepository {
	return &personRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const personColumns = `
	id, unique_code, first_name, last_name, phone, email,
	province, district, neighborhood, street, building_no, apartment_no,
	postal_code, full_address, link_visits, form_submissions, button_clicks,
	created_at, updated_at`

// fieldColumns maps submittable JSON field keys to columns. Proposed data
// is freeform; anything outside this map is silently ignored on update.
var fieldColumns = map[string]string{
	"firstName":    "first_name",
	"lastName":     "last_name",
	"phone":        "phone",
	"email":        "email",
	"province":     "province",
	"district":     "district",
	"neighborhood": "neighborhood",
	"street":       "street",
	"buildingNo":   "building_no",
	"apartmentNo":  "apartment_no",
	"postalCode":   "postal_code",
	"fullAddress":  "full_address",
}

var telemetryColumns = map[domain.TelemetryKind]string{
	domain.TelemetryLinkVisit:      "link_visits",
	domain.TelemetryFormSubmission: "form_submissions",
	domain.TelemetryButtonClick:    "button_clicks",
}

func (r *personRepository) FindByCode(ctx context.Context, uniqueCode string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE unique_code = $1`

	var person domain.Person
	err := r.db.GetContext(ctx, &person, query, strings.ToUpper(uniqueCode))
	if err == sql.ErrNoRows {
		return nil, errors.ErrPersonNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get person by code", zap.String("unique_code", uniqueCode), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &person, nil
}

func (r *personRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`

	var person domain.Person
	err := r.db.GetContext(ctx, &person, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPersonNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get person by id", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &person, nil
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	person.UniqueCode = strings.ToUpper(person.UniqueCode)

	query := `
		INSERT INTO persons (
			id, unique_code, first_name, last_name, phone, email,
			province, district, neighborhood, street, building_no, apartment_no,
			postal_code, full_address
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + personColumns

	var created domain.Person
	err := r.db.GetContext(ctx, &created, query,
		person.ID, person.UniqueCode, person.FirstName, person.LastName,
		person.Phone, person.Email, person.Province, person.District,
		person.Neighborhood, person.Street, person.BuildingNo, person.ApartmentNo,
		person.PostalCode, person.FullAddress,
	)
	if err != nil {
		r.logger.Error("Failed to create person",
			zap.String("unique_code", person.UniqueCode),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &created, nil
}

func (r *personRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Person, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)

	for key, value := range fields {
		column, ok := fieldColumns[key]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE persons SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), personColumns,
	)

	var updated domain.Person
	err := r.db.GetContext(ctx, &updated, query, args...)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPersonNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update person", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &updated, nil
}

func (r *personRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete person", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPersonNotFound
	}

	return nil
}

func (r *personRepository) List(ctx context.Context, search string, page, limit int) ([]*domain.Person, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := ""
	args := []interface{}{}
	if search != "" {
		where = `
			WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
			   OR phone ILIKE $1 OR unique_code ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM persons`+where, args...); err != nil {
		r.logger.Error("Failed to count persons", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := fmt.Sprintf(
		`SELECT %s FROM persons %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		personColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	var persons []*domain.Person
	if err := r.db.SelectContext(ctx, &persons, query, args...); err != nil {
		r.logger.Error("Failed to list persons", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return persons, total, nil
}

// AppendTelemetry pushes one timestamp onto the requested append-only log.
// The JSONB concat keeps the write a single statement, so concurrent
// events cannot lose each other.
func (r *personRepository) AppendTelemetry(ctx context.Context, id uuid.UUID, kind domain.TelemetryKind, at time.Time) error {
	column, ok := telemetryColumns[kind]
	if !ok {
		return errors.ErrInvalidRequest
	}

	query := fmt.Sprintf(
		`UPDATE persons SET %s = COALESCE(%s, '[]'::jsonb) || to_jsonb($1::timestamptz) WHERE id = $2`,
		column, column,
	)

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		r.logger.Error("Failed to append telemetry",
			zap.String("id", id.String()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPersonNotFound
	}

	return nil
}
