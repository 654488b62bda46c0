package database

import (
	"os"

	"propintel-backend/internal/config"
	"propintel-backend/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "database").Logger()

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}

	// Properties created before the visibility feature lack the is_hidden
	// column; backfill it as false before AutoMigrate adds constraints.
	if DB.Migrator().HasTable(&models.Property{}) {
		if !DB.Migrator().HasColumn(&models.Property{}, "is_hidden") {
			logger.Info().Msg("adding properties.is_hidden column")
			if err := DB.Exec("ALTER TABLE properties ADD COLUMN is_hidden BOOLEAN DEFAULT false").Error; err != nil {
				logger.Warn().Err(err).Msg("adding is_hidden column failed (may already exist)")
			}
		}
		DB.Exec("UPDATE properties SET is_hidden = false WHERE is_hidden IS NULL")
	}

	// Early data imports predate the payment_method columns.
	for _, table := range []string{"work_records", "income_records", "expense_records"} {
		if DB.Migrator().HasTable(table) {
			DB.Exec("ALTER TABLE " + table + " ADD COLUMN IF NOT EXISTS payment_method VARCHAR(50)")
		}
	}

	// AutoMigrate is idempotent: re-running against an up-to-date schema is a
	// no-op, matching the CREATE TABLE IF NOT EXISTS contract of the old DDL.
	err = DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.WorkRecord{},
		&models.IncomeRecord{},
		&models.ExpenseRecord{},
		&models.AuditLog{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	logger.Info().Msg("database connected, migration complete")
}
