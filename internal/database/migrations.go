package database

import (
	"errors"
	"time"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationNormalizeEnumCase = "2024-03-01_normalize_event_enum_case"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationNormalizeEnumCase, apply: normalizeEnumCase},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// normalizeEnumCase lower-cases pin types and statuses written by clients that
// sent display labels ("Buoy", "Valmis") instead of the enum values.
func normalizeEnumCase(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&events.MarineEvent{}).
			Where("pin_type <> LOWER(pin_type)").
			Update("pin_type", gorm.Expr("LOWER(pin_type)")).Error; err != nil {
			return err
		}
		return tx.Model(&events.MarineEvent{}).
			Where("status <> LOWER(status)").
			Update("status", gorm.Expr("LOWER(status)")).Error
	})
}
