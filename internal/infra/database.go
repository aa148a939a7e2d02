package infra

import (
	"errors"
	"fmt"

	"catu/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDatabase opens the ledger store. Postgres is the production driver; the
// pure-Go SQLite driver serves local development and tests.
//
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One connection: every transaction is serialized, and an in-memory
		// database lives as long as that connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	return db, nil
}

// AutoMigrate creates the ledger tables from the model tags. Used with SQLite;
// Postgres schema is owned by the SQL files in migrations/.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Caja{},
		&model.Empleado{},
		&model.Turno{},
		&model.Apertura{},
		&model.PagoProveedor{},
		&model.Arqueo{},
		&model.Traslado{},
		&model.Recepcion{},
		&model.Parametro{},
	)
}

// RunMigrations applies the pending SQL migrations found in migrationsPath.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("migrate: init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}

// PrepareSchema brings the schema up to date for the configured driver.
func PrepareSchema(db *gorm.DB, driver, databaseURL, migrationsPath string) error {
	if driver == DriverSQLite {
		return AutoMigrate(db)
	}
	return RunMigrations(databaseURL, migrationsPath)
}
