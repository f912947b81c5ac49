package model

import (
	"time"

	"github.com/google/uuid"
)

type EquipmentCategory string

const (
	EquipmentCategoryCamera   EquipmentCategory = "CAMERA"
	EquipmentCategoryLens     EquipmentCategory = "LENS"
	EquipmentCategoryLighting EquipmentCategory = "LIGHTING"
	EquipmentCategoryAudio    EquipmentCategory = "AUDIO"
	EquipmentCategoryComputer EquipmentCategory = "COMPUTER"
	EquipmentCategorySoftware EquipmentCategory = "SOFTWARE"
	EquipmentCategoryOther    EquipmentCategory = "OTHER"
)

// Status is denormalized; availability is decided by the reservations themselves.
type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusReserved    EquipmentStatus = "RESERVED"
	EquipmentStatusInUse       EquipmentStatus = "IN_USE"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusUnavailable EquipmentStatus = "UNAVAILABLE"
)

type EquipmentModel struct {
	EquipmentID           uuid.UUID         `gorm:"column:equipment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"equipment_id"`
	EquipmentName         string            `gorm:"column:equipment_name;type:varchar(150);not null;index" json:"equipment_name"`
	EquipmentDescription  *string           `gorm:"column:equipment_description;type:text" json:"equipment_description,omitempty"`
	EquipmentCategory     EquipmentCategory `gorm:"column:equipment_category;type:varchar(20);not null" json:"equipment_category"`
	EquipmentStatus       EquipmentStatus   `gorm:"column:equipment_status;type:varchar(20);not null;default:'AVAILABLE'" json:"equipment_status"`
	EquipmentSerialNumber *string           `gorm:"column:equipment_serial_number;type:varchar(120);uniqueIndex" json:"equipment_serial_number,omitempty"`
	EquipmentImageURL     *string           `gorm:"column:equipment_image_url;type:varchar(255)" json:"equipment_image_url,omitempty"`

	EquipmentCreatedAt time.Time `gorm:"column:equipment_created_at;type:timestamptz;autoCreateTime" json:"equipment_created_at"`
	EquipmentUpdatedAt time.Time `gorm:"column:equipment_updated_at;type:timestamptz;autoUpdateTime" json:"equipment_updated_at"`
}

func (EquipmentModel) TableName() string {
	return "equipment"
}
