package dto

import (
	"time"

	"github.com/google/uuid"

	"africrea_backend/internals/features/events/registrations/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
}

type EventBrief struct {
	ID       uuid.UUID `json:"event_id"`
	Title    string    `json:"event_title"`
	Type     string    `json:"event_type"`
	Date     time.Time `json:"event_date"`
	Location *string   `json:"event_location,omitempty"`
	IsOnline bool      `json:"event_is_online"`
}

type RegistrationResponse struct {
	ID        uuid.UUID                `json:"event_registration_id"`
	EventID   uuid.UUID                `json:"event_registration_event_id"`
	UserID    uuid.UUID                `json:"event_registration_user_id"`
	Status    model.RegistrationStatus `json:"event_registration_status"`
	CreatedAt time.Time                `json:"event_registration_created_at"`

	Event *EventBrief          `json:"event,omitempty"`
	User  *userModel.UserBrief `json:"user,omitempty"`
}

func FromModel(m *model.EventRegistrationModel) RegistrationResponse {
	resp := RegistrationResponse{
		ID:        m.EventRegistrationID,
		EventID:   m.EventRegistrationEventID,
		UserID:    m.EventRegistrationUserID,
		Status:    m.EventRegistrationStatus,
		CreatedAt: m.EventRegistrationCreatedAt,
	}
	if m.Event != nil {
		resp.Event = &EventBrief{
			ID:       m.Event.EventID,
			Title:    m.Event.EventTitle,
			Type:     string(m.Event.EventType),
			Date:     m.Event.EventDate,
			Location: m.Event.EventLocation,
			IsOnline: m.Event.EventIsOnline,
		}
	}
	if m.User != nil {
		b := m.User.Brief()
		b.Email = m.User.Email
		resp.User = &b
	}
	return resp
}

func FromModels(rows []model.EventRegistrationModel) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
