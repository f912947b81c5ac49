package model

import (
	"time"

	"github.com/google/uuid"

	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationApproved  ReservationStatus = "APPROVED"
	ReservationRejected  ReservationStatus = "REJECTED"
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// BlockingStatuses hold the equipment: a new request may not overlap any of them.
var BlockingStatuses = []ReservationStatus{ReservationPending, ReservationApproved, ReservationActive}

var AllStatuses = []ReservationStatus{
	ReservationPending, ReservationApproved, ReservationRejected,
	ReservationActive, ReservationCompleted, ReservationCancelled,
}

func (s ReservationStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Blocks() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

type ReservationModel struct {
	ReservationID          uuid.UUID         `gorm:"column:reservation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"reservation_id"`
	ReservationEquipmentID uuid.UUID         `gorm:"column:reservation_equipment_id;type:uuid;not null;index:idx_reservations_equipment_range,priority:1" json:"reservation_equipment_id"`
	ReservationUserID      uuid.UUID         `gorm:"column:reservation_user_id;type:uuid;not null;index" json:"reservation_user_id"`
	ReservationStartDate   time.Time         `gorm:"column:reservation_start_date;type:date;not null;index:idx_reservations_equipment_range,priority:2" json:"reservation_start_date"`
	ReservationEndDate     time.Time         `gorm:"column:reservation_end_date;type:date;not null;index:idx_reservations_equipment_range,priority:3" json:"reservation_end_date"`
	ReservationPurpose     string            `gorm:"column:reservation_purpose;type:text;not null;default:''" json:"reservation_purpose"`
	ReservationStatus      ReservationStatus `gorm:"column:reservation_status;type:varchar(20);not null;default:'PENDING';index" json:"reservation_status"`

	ReservationDecidedBy *uuid.UUID `gorm:"column:reservation_decided_by;type:uuid" json:"reservation_decided_by,omitempty"`
	ReservationDecidedAt *time.Time `gorm:"column:reservation_decided_at;type:timestamptz" json:"reservation_decided_at,omitempty"`

	ReservationCreatedAt time.Time `gorm:"column:reservation_created_at;type:timestamptz;autoCreateTime" json:"reservation_created_at"`
	ReservationUpdatedAt time.Time `gorm:"column:reservation_updated_at;type:timestamptz;autoUpdateTime" json:"reservation_updated_at"`

	Equipment *equipmentModel.EquipmentModel `gorm:"foreignKey:ReservationEquipmentID;references:EquipmentID;constraint:OnDelete:RESTRICT" json:"equipment,omitempty"`
	User      *userModel.UserModel           `gorm:"foreignKey:ReservationUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReservationModel) TableName() string {
	return "equipment_reservations"
}

// Overlaps is the closed-interval test: ranges sharing a single day overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
