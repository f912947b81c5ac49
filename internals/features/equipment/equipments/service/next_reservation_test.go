package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
)

func TestNextByEquipment(t *testing.T) {
	camera, light := uuid.New(), uuid.New()
	d := func(n int) time.Time { return time.Date(2026, time.June, n, 0, 0, 0, 0, time.UTC) }

	rows := []reservationModel.ReservationModel{
		{ReservationID: uuid.New(), ReservationEquipmentID: camera, ReservationStartDate: d(20)},
		{ReservationID: uuid.New(), ReservationEquipmentID: camera, ReservationStartDate: d(3)},
		{ReservationID: uuid.New(), ReservationEquipmentID: light, ReservationStartDate: d(10)},
		{ReservationID: uuid.New(), ReservationEquipmentID: camera, ReservationStartDate: d(12)},
	}

	next := NextByEquipment(rows)
	assert.Len(t, next, 2)
	assert.Equal(t, rows[1].ReservationID, next[camera].ReservationID)
	assert.Equal(t, rows[2].ReservationID, next[light].ReservationID)
	assert.Empty(t, NextByEquipment(nil))
}
