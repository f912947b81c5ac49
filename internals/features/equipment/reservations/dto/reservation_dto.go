package dto

import (
	"time"

	"github.com/google/uuid"

	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	"africrea_backend/internals/features/equipment/reservations/model"
	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/helpers/dbtime"
)

/* ===================== REQUESTS ===================== */

type CreateReservationRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid"`
	StartDate   string `json:"start_date"   validate:"required"`
	EndDate     string `json:"end_date"     validate:"required"`
	Purpose     string `json:"purpose"      validate:"max=1000"`
}

// Parse returns the equipment id and the calendar range, with per-field errors.
func (r CreateReservationRequest) Parse() (uuid.UUID, time.Time, time.Time, map[string][]string) {
	errs := map[string][]string{}
	id, err := uuid.Parse(r.EquipmentID)
	if err != nil {
		errs["equipment_id"] = append(errs["equipment_id"], "must be a valid UUID")
	}
	start, err := dbtime.ParseDate(r.StartDate)
	if err != nil {
		errs["start_date"] = append(errs["start_date"], "must be a date (YYYY-MM-DD)")
	}
	end, err := dbtime.ParseDate(r.EndDate)
	if err != nil {
		errs["end_date"] = append(errs["end_date"], "must be a date (YYYY-MM-DD)")
	}
	if len(errs) == 0 && end.Before(start) {
		errs["end_date"] = append(errs["end_date"], "must not precede start_date")
	}
	if len(errs) == 0 {
		errs = nil
	}
	return id, start, end, errs
}

// Status is checked by the service so that a bad value answers 400, not 422.
type DecisionRequest struct {
	Status string `json:"status" validate:"required"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type EquipmentBrief struct {
	ID       uuid.UUID                        `json:"equipment_id"`
	Name     string                           `json:"equipment_name"`
	Category equipmentModel.EquipmentCategory `json:"equipment_category"`
	Status   equipmentModel.EquipmentStatus   `json:"equipment_status"`
}

type ReservationResponse struct {
	ID          uuid.UUID               `json:"reservation_id"`
	EquipmentID uuid.UUID               `json:"reservation_equipment_id"`
	UserID      uuid.UUID               `json:"reservation_user_id"`
	StartDate   string                  `json:"reservation_start_date"`
	EndDate     string                  `json:"reservation_end_date"`
	Purpose     string                  `json:"reservation_purpose"`
	Status      model.ReservationStatus `json:"reservation_status"`
	DecidedBy   *uuid.UUID              `json:"reservation_decided_by,omitempty"`
	DecidedAt   *time.Time              `json:"reservation_decided_at,omitempty"`
	CreatedAt   time.Time               `json:"reservation_created_at"`

	Equipment *EquipmentBrief      `json:"equipment,omitempty"`
	User      *userModel.UserBrief `json:"user,omitempty"`
}

func FromModel(m *model.ReservationModel) ReservationResponse {
	resp := ReservationResponse{
		ID:          m.ReservationID,
		EquipmentID: m.ReservationEquipmentID,
		UserID:      m.ReservationUserID,
		StartDate:   m.ReservationStartDate.Format(dbtime.DateLayout),
		EndDate:     m.ReservationEndDate.Format(dbtime.DateLayout),
		Purpose:     m.ReservationPurpose,
		Status:      m.ReservationStatus,
		DecidedBy:   m.ReservationDecidedBy,
		DecidedAt:   m.ReservationDecidedAt,
		CreatedAt:   m.ReservationCreatedAt,
	}
	if m.Equipment != nil {
		resp.Equipment = &EquipmentBrief{
			ID:       m.Equipment.EquipmentID,
			Name:     m.Equipment.EquipmentName,
			Category: m.Equipment.EquipmentCategory,
			Status:   m.Equipment.EquipmentStatus,
		}
	}
	if m.User != nil {
		b := m.User.Brief()
		b.Email = m.User.Email
		resp.User = &b
	}
	return resp
}

func FromModels(rows []model.ReservationModel) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
