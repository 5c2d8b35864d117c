package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewGeoNodeRepositoryForTest creates a geo node repository with test database and logger
func NewGeoNodeRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GeoNodeRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewGeoNodeRepository(pgDB)
}

// NewPersonRepositoryForTest creates a person repository with test database and logger
func NewPersonRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PersonRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPersonRepository(pgDB)
}

// NewChangeRepositoryForTest creates a change request repository with test database and logger
func NewChangeRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ChangeRequestRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewChangeRepository(pgDB)
}
