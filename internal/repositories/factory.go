package repositories

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rapporteur_backend/internal/config"
)

// NewReportRepository builds the report store selected by
// configuration: "memory" (default) or "postgres".
func NewReportRepository(cfg *config.Config) (ReportRepository, error) {
	switch cfg.Reports.Store {
	case "", "memory":
		return NewMemoryReportRepository(), nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return NewGormReportRepository(db)
	default:
		return nil, fmt.Errorf("unsupported report store: %s", cfg.Reports.Store)
	}
}
