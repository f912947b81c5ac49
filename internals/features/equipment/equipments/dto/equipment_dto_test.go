package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"africrea_backend/internals/features/equipment/equipments/model"
	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
	userModel "africrea_backend/internals/features/users/user/model"
	helper "africrea_backend/internals/helpers"
)

func TestCreateEquipmentRequestValidation(t *testing.T) {
	v := helper.NewValidator()

	blank := " "
	req := CreateEquipmentRequest{Name: "  Rode NTG3 ", Category: "audio", SerialNumber: &blank}
	req.Normalize()
	require.NoError(t, v.Struct(req))
	assert.Equal(t, "Rode NTG3", req.Name)
	assert.Equal(t, "AUDIO", req.Category)
	assert.Nil(t, req.SerialNumber)

	m := req.ToModel()
	assert.Equal(t, model.EquipmentStatusAvailable, m.EquipmentStatus)
	assert.NotEqual(t, uuid.Nil, m.EquipmentID)

	bad := CreateEquipmentRequest{Name: "Drone", Category: "DRONE"}
	errs := helper.ValidationErrors(v.Struct(bad))
	assert.Contains(t, errs, "equipment_category")
}

func TestFromModelWithNextReservation(t *testing.T) {
	eq := &model.EquipmentModel{EquipmentID: uuid.New(), EquipmentName: "Aputure 600d"}
	next := &reservationModel.ReservationModel{
		ReservationID:        uuid.New(),
		ReservationStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		ReservationEndDate:   time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
		ReservationStatus:    reservationModel.ReservationApproved,
		User:                 &userModel.UserModel{ID: uuid.New(), FirstName: "Awa", LastName: "Traoré", Email: "awa@example.com"},
	}

	resp := FromModel(eq, next)
	require.NotNil(t, resp.NextReservation)
	assert.Equal(t, "2026-07-01", resp.NextReservation.StartDate)
	assert.Equal(t, "Awa", resp.NextReservation.User.FirstName)
	assert.Empty(t, resp.NextReservation.User.Email)

	assert.Nil(t, FromModel(eq, nil).NextReservation)
}
