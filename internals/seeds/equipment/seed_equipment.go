package equipment

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/features/equipment/equipments/model"
)

type EquipmentSeed struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Category     string  `json:"category"`
	SerialNumber *string `json:"serial_number"`
}

func SeedEquipmentFromJSON(db *gorm.DB, filePath string) error {
	log.WithField("file", filePath).Info("reading equipment seeds")

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrap(err, "read equipment seeds")
	}
	var inputs []EquipmentSeed
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return errors.Wrap(err, "decode equipment seeds")
	}

	created := 0
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		var n int64
		if err := db.Model(&model.EquipmentModel{}).Where("equipment_name = ?", name).Count(&n).Error; err != nil {
			return errors.Wrap(err, "lookup seeded equipment")
		}
		if n > 0 {
			continue
		}
		row := model.EquipmentModel{
			EquipmentName:         name,
			EquipmentDescription:  in.Description,
			EquipmentCategory:     model.EquipmentCategory(strings.ToUpper(in.Category)),
			EquipmentStatus:       model.EquipmentStatusAvailable,
			EquipmentSerialNumber: in.SerialNumber,
		}
		if err := db.Create(&row).Error; err != nil {
			return errors.Wrapf(err, "create equipment %s", name)
		}
		created++
	}
	log.WithField("created", created).Info("equipment seeded")
	return nil
}
