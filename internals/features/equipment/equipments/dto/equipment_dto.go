package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"africrea_backend/internals/features/equipment/equipments/model"
	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/helpers/dbtime"
)

type CreateEquipmentRequest struct {
	Name         string  `json:"equipment_name"          validate:"required,max=150"`
	Description  *string `json:"equipment_description"`
	Category     string  `json:"equipment_category"      validate:"required,oneof=CAMERA LENS LIGHTING AUDIO COMPUTER SOFTWARE OTHER"`
	SerialNumber *string `json:"equipment_serial_number" validate:"omitempty,max=120"`
	ImageURL     *string `json:"equipment_image_url"     validate:"omitempty,url"`
}

func (r *CreateEquipmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if r.SerialNumber != nil {
		s := strings.TrimSpace(*r.SerialNumber)
		if s == "" {
			r.SerialNumber = nil
		} else {
			r.SerialNumber = &s
		}
	}
}

func (r CreateEquipmentRequest) ToModel() *model.EquipmentModel {
	return &model.EquipmentModel{
		EquipmentID:           uuid.New(),
		EquipmentName:         r.Name,
		EquipmentDescription:  r.Description,
		EquipmentCategory:     model.EquipmentCategory(r.Category),
		EquipmentStatus:       model.EquipmentStatusAvailable,
		EquipmentSerialNumber: r.SerialNumber,
		EquipmentImageURL:     r.ImageURL,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"equipment_status" validate:"required,oneof=AVAILABLE RESERVED IN_USE MAINTENANCE UNAVAILABLE"`
}

// NextReservation is the closest APPROVED/ACTIVE booking that has not ended yet.
type NextReservation struct {
	ID        uuid.UUID                          `json:"reservation_id"`
	StartDate string                             `json:"reservation_start_date"`
	EndDate   string                             `json:"reservation_end_date"`
	Status    reservationModel.ReservationStatus `json:"reservation_status"`
	User      *userModel.UserBrief               `json:"user,omitempty"`
}

type EquipmentResponse struct {
	ID              uuid.UUID               `json:"equipment_id"`
	Name            string                  `json:"equipment_name"`
	Description     *string                 `json:"equipment_description,omitempty"`
	Category        model.EquipmentCategory `json:"equipment_category"`
	Status          model.EquipmentStatus   `json:"equipment_status"`
	SerialNumber    *string                 `json:"equipment_serial_number,omitempty"`
	ImageURL        *string                 `json:"equipment_image_url,omitempty"`
	CreatedAt       time.Time               `json:"equipment_created_at"`
	NextReservation *NextReservation        `json:"next_reservation"`
}

func FromModel(m *model.EquipmentModel, next *reservationModel.ReservationModel) EquipmentResponse {
	resp := EquipmentResponse{
		ID:           m.EquipmentID,
		Name:         m.EquipmentName,
		Description:  m.EquipmentDescription,
		Category:     m.EquipmentCategory,
		Status:       m.EquipmentStatus,
		SerialNumber: m.EquipmentSerialNumber,
		ImageURL:     m.EquipmentImageURL,
		CreatedAt:    m.EquipmentCreatedAt,
	}
	if next != nil {
		resp.NextReservation = &NextReservation{
			ID:        next.ReservationID,
			StartDate: next.ReservationStartDate.Format(dbtime.DateLayout),
			EndDate:   next.ReservationEndDate.Format(dbtime.DateLayout),
			Status:    next.ReservationStatus,
		}
		if next.User != nil {
			b := next.User.Brief()
			resp.NextReservation.User = &b
		}
	}
	return resp
}
