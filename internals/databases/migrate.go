package database

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dbMigration struct {
	Version uint
	Name    string
	Queries []string
}

type schemaMigration struct {
	Version    uint      `gorm:"column:version;primaryKey"`
	Name       string    `gorm:"column:name;type:varchar(120);not null"`
	Success    bool      `gorm:"column:success;not null;default:false"`
	ExecutedAt time.Time `gorm:"column:executed_at;type:timestamptz;autoCreateTime"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Constraints gorm tags cannot express. Run after AutoMigrate.
var migrations = []dbMigration{
	{
		Version: 1,
		Name:    "reservation_range_check",
		Queries: []string{
			`ALTER TABLE equipment_reservations
			   ADD CONSTRAINT ck_equipment_reservations_range
			   CHECK (reservation_start_date <= reservation_end_date)`,
		},
	},
	{
		Version: 2,
		Name:    "reservation_no_overlap",
		Queries: []string{
			`ALTER TABLE equipment_reservations
			   ADD CONSTRAINT ex_equipment_reservations_no_overlap
			   EXCLUDE USING gist (
			     reservation_equipment_id WITH =,
			     daterange(reservation_start_date, reservation_end_date, '[]') WITH &&
			   ) WHERE (reservation_status IN ('PENDING', 'APPROVED', 'ACTIVE'))`,
		},
	},
	{
		Version: 3,
		Name:    "submission_grade_check",
		Queries: []string{
			`ALTER TABLE submissions
			   ADD CONSTRAINT ck_submissions_grade
			   CHECK (submission_grade IS NULL OR (submission_grade >= 0 AND submission_grade <= 100))`,
		},
	},
	{
		Version: 4,
		Name:    "event_registrations_admission_order",
		Queries: []string{
			`CREATE INDEX IF NOT EXISTS idx_event_registrations_event_status_created
			   ON event_registrations (event_registration_event_id, event_registration_status, event_registration_created_at)`,
		},
	},
}

// Migrate creates the extensions, auto-migrates the given models and applies
// the versioned migrations that have not succeeded yet.
func Migrate(db *gorm.DB, models ...interface{}) error {
	for _, ext := range []string{"pgcrypto", "btree_gist"} {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS " + ext).Error; err != nil {
			return errors.Wrapf(err, "create extension %s", ext)
		}
	}
	if err := db.AutoMigrate(append([]interface{}{&schemaMigration{}}, models...)...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	for _, m := range migrations {
		if err := m.execute(db); err != nil {
			return err
		}
	}
	return nil
}

func (m dbMigration) execute(db *gorm.DB) error {
	var done schemaMigration
	err := db.Where("version = ? AND success = true", m.Version).Limit(1).Find(&done).Error
	if err != nil {
		return errors.Wrap(err, "read migration state")
	}
	if done.Version == m.Version {
		return nil
	}

	entry := log.WithFields(log.Fields{"version": m.Version, "migration": m.Name})
	entry.Info("executing DB migration")

	txErr := db.Transaction(func(tx *gorm.DB) error {
		for i, q := range m.Queries {
			if err := tx.Exec(q).Error; err != nil {
				return errors.Wrapf(err, "migration %d query %d", m.Version, i+1)
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "version"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "success"}),
		}).Create(&schemaMigration{Version: m.Version, Name: m.Name, Success: true}).Error
	})
	if txErr != nil {
		entry.WithError(txErr).Error("DB migration failed")
		return txErr
	}
	return nil
}
