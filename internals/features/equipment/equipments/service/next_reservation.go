package service

import (
	"github.com/google/uuid"

	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
)

// NextByEquipment keeps, per equipment, the upcoming reservation with the
// earliest start. rows need not be sorted.
func NextByEquipment(rows []reservationModel.ReservationModel) map[uuid.UUID]*reservationModel.ReservationModel {
	out := make(map[uuid.UUID]*reservationModel.ReservationModel, len(rows))
	for i := range rows {
		r := &rows[i]
		cur, ok := out[r.ReservationEquipmentID]
		if !ok || r.ReservationStartDate.Before(cur.ReservationStartDate) {
			out[r.ReservationEquipmentID] = r
		}
	}
	return out
}
