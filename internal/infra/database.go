package infra

import (
	"fmt"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables. The non-negative stock
// constraint cannot be expressed through struct tags, so it is applied as an
// idempotent SQL patch afterwards.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Alimento{},
		&model.ConsumoAlimento{},
		&model.Cuy{},
		&model.Galpon{},
		&model.Poza{},
		&model.RegistroSanitario{},
		&model.Prenez{},
		&model.Camada{},
		&model.Usuario{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches adds constraints AutoMigrate cannot express. Each
// statement is guarded so re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{
			"alimentos.stock >= 0",
			`DO $$ BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = 'chk_alimentos_stock_no_negativo'
				) THEN
					ALTER TABLE alimentos ADD CONSTRAINT chk_alimentos_stock_no_negativo CHECK (stock >= 0);
				END IF;
			END $$;`,
		},
		{
			"consumos_alimento.cantidad > 0",
			`DO $$ BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = 'chk_consumos_cantidad_positiva'
				) THEN
					ALTER TABLE consumos_alimento ADD CONSTRAINT chk_consumos_cantidad_positiva CHECK (cantidad > 0);
				END IF;
			END $$;`,
		},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
