package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"africrea_backend/internals/features/events/events/model"
	helper "africrea_backend/internals/helpers"
)

func strPtr(s string) *string { return &s }

func TestCreateEventRequest(t *testing.T) {
	creator := uuid.New()

	req := CreateEventRequest{
		Title:   " Atelier motion design ",
		Type:    "workshop",
		Date:    "2026-09-12T14:00:00Z",
		EndDate: strPtr("2026-09-12T17:00:00Z"),
	}
	req.Normalize()
	require.NoError(t, helper.NewValidator().Struct(req))

	ev, errs := req.ToModel(creator)
	require.Nil(t, errs)
	assert.Equal(t, "Atelier motion design", ev.EventTitle)
	assert.Equal(t, model.EventWorkshop, ev.EventType)
	assert.Equal(t, creator, ev.EventCreatedBy)
	require.NotNil(t, ev.EventEndDate)
	assert.Equal(t, 3*time.Hour, ev.EventEndDate.Sub(ev.EventDate))
	assert.Nil(t, ev.EventMaxAttendees)

	req.EndDate = strPtr("2026-09-11")
	_, errs = req.ToModel(creator)
	assert.Contains(t, errs, "event_end_date")

	req.Date = "someday"
	_, errs = req.ToModel(creator)
	assert.Contains(t, errs, "event_date")
}

func TestCreateEventRequestCapacityValidation(t *testing.T) {
	zero := 0
	req := CreateEventRequest{Title: "Conf", Type: "CONFERENCE", Date: "2026-10-01", MaxAttendees: &zero}
	errs := helper.ValidationErrors(helper.NewValidator().Struct(req))
	assert.Contains(t, errs, "event_max_attendees")
}

func TestFromModelSeatsLeft(t *testing.T) {
	capacity := 10
	ev := &model.EventModel{EventID: uuid.New(), EventMaxAttendees: &capacity}
	resp := FromModel(ev, Counts{Confirmed: 7, Waitlist: 0})
	require.NotNil(t, resp.SeatsLeft)
	assert.Equal(t, 3, *resp.SeatsLeft)

	assert.Nil(t, FromModel(&model.EventModel{}, Counts{Confirmed: 7}).SeatsLeft)
}
