package seeds

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/seeds/equipment"
	"africrea_backend/internals/seeds/users"
)

// RunAllSeeds loads the demo accounts and the equipment catalog from dir.
// Existing rows are left untouched.
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Users
	if err := users.SeedUsersFromJSON(db, filepath.Join(dir, "users", "data_users.json")); err != nil {
		return err
	}

	//* Equipment
	if err := equipment.SeedEquipmentFromJSON(db, filepath.Join(dir, "equipment", "data_equipment.json")); err != nil {
		return err
	}

	log.Info("seeding finished")
	return nil
}
