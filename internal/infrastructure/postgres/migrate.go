package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// Migrate aplica las migraciones pendientes de src sobre la base del pool.
// Sin cambios pendientes no es un error.
func Migrate(pool *pgxpool.Pool, src fs.FS, log *logger.Logger) error {
	source, err := iofs.New(src, ".")
	if err != nil {
		return fmt.Errorf("migraciones: abrir fuente: %w", err)
	}

	// El *sql.DB toma prestadas conexiones del pool; m.Close las devuelve.
	db := stdlib.OpenDBFromPool(pool)
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migraciones: driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("migraciones: crear migrador: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migraciones: aplicar: %w", err)
	}
	if version, dirty, err := m.Version(); err == nil {
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("esquema al día")
	}
	return nil
}
