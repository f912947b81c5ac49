package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"africrea_backend/internals/features/events/events/model"
	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/helpers/dbtime"
)

type CreateEventRequest struct {
	Title        string  `json:"event_title"         validate:"required,max=255"`
	Description  string  `json:"event_description"`
	Type         string  `json:"event_type"          validate:"required,oneof=MASTERCLASS WORKSHOP STUDIO_SESSION CONFERENCE NETWORKING"`
	Date         string  `json:"event_date"          validate:"required"`
	EndDate      *string `json:"event_end_date"`
	Location     *string `json:"event_location"      validate:"omitempty,max=255"`
	IsOnline     bool    `json:"event_is_online"`
	MeetingURL   *string `json:"event_meeting_url"   validate:"omitempty,url"`
	ImageURL     *string `json:"event_image_url"     validate:"omitempty,url"`
	MaxAttendees *int    `json:"event_max_attendees" validate:"omitempty,gte=1"`
}

func (r *CreateEventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

// ToModel parses the dates; field errors come back keyed by json name.
func (r CreateEventRequest) ToModel(createdBy uuid.UUID) (*model.EventModel, map[string][]string) {
	errs := map[string][]string{}
	start, err := dbtime.ParseTimestamp(r.Date)
	if err != nil {
		errs["event_date"] = append(errs["event_date"], "must be an RFC3339 timestamp or a date")
	}
	var end *time.Time
	if r.EndDate != nil && strings.TrimSpace(*r.EndDate) != "" {
		t, err := dbtime.ParseTimestamp(*r.EndDate)
		switch {
		case err != nil:
			errs["event_end_date"] = append(errs["event_end_date"], "must be an RFC3339 timestamp or a date")
		case t.Before(start):
			errs["event_end_date"] = append(errs["event_end_date"], "must not precede event_date")
		default:
			end = &t
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &model.EventModel{
		EventID:           uuid.New(),
		EventTitle:        r.Title,
		EventDescription:  strings.TrimSpace(r.Description),
		EventType:         model.EventType(r.Type),
		EventDate:         start,
		EventEndDate:      end,
		EventLocation:     r.Location,
		EventIsOnline:     r.IsOnline,
		EventMeetingURL:   r.MeetingURL,
		EventImageURL:     r.ImageURL,
		EventMaxAttendees: r.MaxAttendees,
		EventCreatedBy:    createdBy,
	}, nil
}

// Counts per event, filled from event_registrations.
type Counts struct {
	EventID   uuid.UUID `gorm:"column:event_id"`
	Confirmed int64     `gorm:"column:confirmed"`
	Waitlist  int64     `gorm:"column:waitlist"`
}

type EventResponse struct {
	ID             uuid.UUID            `json:"event_id"`
	Title          string               `json:"event_title"`
	Description    string               `json:"event_description"`
	Type           model.EventType      `json:"event_type"`
	Date           time.Time            `json:"event_date"`
	EndDate        *time.Time           `json:"event_end_date,omitempty"`
	Location       *string              `json:"event_location,omitempty"`
	IsOnline       bool                 `json:"event_is_online"`
	MeetingURL     *string              `json:"event_meeting_url,omitempty"`
	ImageURL       *string              `json:"event_image_url,omitempty"`
	MaxAttendees   *int                 `json:"event_max_attendees"`
	ConfirmedCount int64                `json:"confirmed_count"`
	WaitlistCount  int64                `json:"waitlist_count"`
	SeatsLeft      *int                 `json:"seats_left"`
	Creator        *userModel.UserBrief `json:"creator,omitempty"`
}

func FromModel(m *model.EventModel, c Counts) EventResponse {
	resp := EventResponse{
		ID:             m.EventID,
		Title:          m.EventTitle,
		Description:    m.EventDescription,
		Type:           m.EventType,
		Date:           m.EventDate,
		EndDate:        m.EventEndDate,
		Location:       m.EventLocation,
		IsOnline:       m.EventIsOnline,
		MeetingURL:     m.EventMeetingURL,
		ImageURL:       m.EventImageURL,
		MaxAttendees:   m.EventMaxAttendees,
		ConfirmedCount: c.Confirmed,
		WaitlistCount:  c.Waitlist,
	}
	if free := m.FreeSeats(c.Confirmed); free >= 0 {
		resp.SeatsLeft = &free
	}
	if m.Creator != nil {
		b := m.Creator.Brief()
		resp.Creator = &b
	}
	return resp
}
