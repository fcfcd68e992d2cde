package database

import (
	"errors"
	"time"

	"github.com/vidaplena/agenda/internal/events"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationBackfillEventOrder = "2026-07-12_backfill_event_order"

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
		{name: migrationBackfillEventOrder, apply: backfillEventOrder},
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

// backfillEventOrder assigns sequential order slots, by (date, time)
// ascending, to rows imported before ordering existed. Rows that already
// carry a positive order keep it; new slots start after the current maximum.
func backfillEventOrder(db *gorm.DB) error {
	var maxOrder int
	row := db.Model(&events.Event{}).Select("COALESCE(MAX(order_index), 0)").Row()
	if err := row.Scan(&maxOrder); err != nil {
		return err
	}

	var unordered []events.Event
	if err := db.Where("order_index <= 0").
		Order("event_date ASC, event_time ASC").
		Find(&unordered).Error; err != nil {
		return err
	}

	for i := range unordered {
		next := maxOrder + i + 1
		if err := db.Model(&events.Event{}).
			Where("id = ?", unordered[i].ID).
			Update("order_index", next).Error; err != nil {
			return err
		}
	}
	return nil
}
