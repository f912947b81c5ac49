package model

import (
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
)

type EventType string

const (
	EventMasterclass   EventType = "MASTERCLASS"
	EventWorkshop      EventType = "WORKSHOP"
	EventStudioSession EventType = "STUDIO_SESSION"
	EventConference    EventType = "CONFERENCE"
	EventNetworking    EventType = "NETWORKING"
)

type EventModel struct {
	EventID          uuid.UUID  `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string     `gorm:"column:event_title;type:varchar(255);not null"                  json:"event_title"`
	EventDescription string     `gorm:"column:event_description;type:text;not null;default:''"         json:"event_description"`
	EventType        EventType  `gorm:"column:event_type;type:varchar(20);not null"                    json:"event_type"`
	EventDate        time.Time  `gorm:"column:event_date;type:timestamptz;not null;index"              json:"event_date"`
	EventEndDate     *time.Time `gorm:"column:event_end_date;type:timestamptz"                         json:"event_end_date,omitempty"`
	EventLocation    *string    `gorm:"column:event_location;type:varchar(255)"                        json:"event_location,omitempty"`
	EventIsOnline    bool       `gorm:"column:event_is_online;not null;default:false"                  json:"event_is_online"`
	EventMeetingURL  *string    `gorm:"column:event_meeting_url;type:varchar(255)"                     json:"event_meeting_url,omitempty"`
	EventImageURL    *string    `gorm:"column:event_image_url;type:varchar(255)"                       json:"event_image_url,omitempty"`

	// nil = unlimited
	EventMaxAttendees *int `gorm:"column:event_max_attendees" json:"event_max_attendees"`

	EventCreatedBy uuid.UUID `gorm:"column:event_created_by;type:uuid;not null;index" json:"event_created_by"`
	EventCreatedAt time.Time `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`

	Creator *userModel.UserModel `gorm:"foreignKey:EventCreatedBy;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}

// HasRoom reports whether one more CONFIRMED registration fits.
func (e EventModel) HasRoom(confirmed int64) bool {
	return e.EventMaxAttendees == nil || confirmed < int64(*e.EventMaxAttendees)
}

// FreeSeats is -1 for unlimited events.
func (e EventModel) FreeSeats(confirmed int64) int {
	if e.EventMaxAttendees == nil {
		return -1
	}
	free := *e.EventMaxAttendees - int(confirmed)
	if free < 0 {
		return 0
	}
	return free
}
