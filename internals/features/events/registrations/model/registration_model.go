package model

import (
	"time"

	"github.com/google/uuid"

	eventModel "africrea_backend/internals/features/events/events/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationWaitlist  RegistrationStatus = "WAITLIST"
)

// One row per (event, user); unregistering deletes the row.
type EventRegistrationModel struct {
	EventRegistrationID      uuid.UUID          `gorm:"column:event_registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_registration_id"`
	EventRegistrationEventID uuid.UUID          `gorm:"column:event_registration_event_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user,priority:1" json:"event_registration_event_id"`
	EventRegistrationUserID  uuid.UUID          `gorm:"column:event_registration_user_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user,priority:2;index" json:"event_registration_user_id"`
	EventRegistrationStatus  RegistrationStatus `gorm:"column:event_registration_status;type:varchar(20);not null" json:"event_registration_status"`

	EventRegistrationCreatedAt time.Time `gorm:"column:event_registration_created_at;type:timestamptz;autoCreateTime" json:"event_registration_created_at"`
	EventRegistrationUpdatedAt time.Time `gorm:"column:event_registration_updated_at;type:timestamptz;autoUpdateTime" json:"event_registration_updated_at"`

	Event *eventModel.EventModel `gorm:"foreignKey:EventRegistrationEventID;references:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  *userModel.UserModel   `gorm:"foreignKey:EventRegistrationUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}
