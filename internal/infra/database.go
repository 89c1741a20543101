package infra

import (
	"fmt"

	"santripay/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the five record types, then applies the idempotent SQL patches GORM
// cannot express (the kode sequence and partial indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Session{},
		&model.Santri{},
		&model.Transaksi{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Sequence backing Transaksi.Kode generation (TRX-%06d)
		`CREATE SEQUENCE IF NOT EXISTS transaksi_kode_seq START 1`,
		// Partial index for the dashboard income queries (status=LUNAS scans)
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_transaksi_lunas_created') THEN
		    CREATE INDEX idx_transaksi_lunas_created
		        ON transaksi (created_at)
		        WHERE status = 'LUNAS';
		  END IF;
		END $$`,
		// Session sweeper scans by expiry
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sessions_expires_at') THEN
		    CREATE INDEX idx_sessions_expires_at ON sessions (expires_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
