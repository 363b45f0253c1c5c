package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique index, display-number sequence).
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

// RunMigrations creates/updates all tables and applies the schema patches.
// Also used by integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.GroomingService{},
		&model.CashSession{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderPayment{},
		&model.InventoryMovement{},
		&model.FinancialTransaction{},
		&model.Appointment{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one cash session may be OPEN at any time. The application
		// checks before inserting, but only this index makes the rule hold
		// under two terminals racing to open.
		{"partial unique index on open cash sessions", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_cash_sessions_open') THEN
    CREATE UNIQUE INDEX uniq_cash_sessions_open ON cash_sessions ((status)) WHERE status = 'OPEN';
  END IF;
END $$`},
		// Human-facing order numbers come from a dedicated sequence, drawn
		// inside the commit transaction.
		{"order display-number sequence", `
CREATE SEQUENCE IF NOT EXISTS orders_seq_id_seq START 1`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
