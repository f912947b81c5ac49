package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	"africrea_backend/internals/features/equipment/reservations/model"
	"africrea_backend/internals/features/equipment/reservations/repository"
	helper "africrea_backend/internals/helpers"
	"africrea_backend/internals/helpers/dbtime"
)

var (
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("equipment already reserved for this period")
	ErrInvalidRange        = errors.New("end date must not precede start date")
	ErrInvalidDecision     = errors.New("status must be APPROVED or REJECTED")
	ErrInvalidStatus       = errors.New("status must be ACTIVE, COMPLETED or CANCELLED")
	ErrAlreadyDecided      = errors.New("reservation is no longer pending")
	ErrIllegalTransition   = errors.New("status transition not allowed")
	ErrNotOwner            = errors.New("reservation belongs to another user")
)

// transitions lists the manual lifecycle moves after the decision step.
var transitions = map[model.ReservationStatus][]model.ReservationStatus{
	model.ReservationApproved: {model.ReservationActive, model.ReservationCancelled},
	model.ReservationActive:   {model.ReservationCompleted},
	model.ReservationPending:  {model.ReservationCancelled},
}

func canTransition(from, to model.ReservationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type RequestInput struct {
	EquipmentID uuid.UUID
	UserID      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Purpose     string
}

// Request admits a new PENDING reservation when no blocking reservation of the
// same equipment shares a day with the requested range.
func (s *Service) Request(ctx context.Context, in RequestInput) (*model.ReservationModel, error) {
	start := dbtime.TruncateDay(in.StartDate)
	end := dbtime.TruncateDay(in.EndDate)

	res := &model.ReservationModel{
		ReservationID:          uuid.New(),
		ReservationEquipmentID: in.EquipmentID,
		ReservationUserID:      in.UserID,
		ReservationStartDate:   start,
		ReservationEndDate:     end,
		ReservationPurpose:     strings.TrimSpace(in.Purpose),
		ReservationStatus:      model.ReservationPending,
	}

	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		eq, err := r.LockEquipment(ctx, in.EquipmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}
		if end.Before(start) {
			return ErrInvalidRange
		}

		overlapping, err := r.FindOverlapping(ctx, in.EquipmentID, start, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrReservationConflict
		}

		now := s.now().UTC()
		res.ReservationCreatedAt = now
		res.ReservationUpdatedAt = now
		if err := r.Create(ctx, res); err != nil {
			return err
		}
		res.Equipment = eq
		return nil
	})
	if helper.IsExclusionViolation(err) {
		err = ErrReservationConflict
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldReservation: res.ReservationID,
		constants.FldEquipment:   res.ReservationEquipmentID,
		constants.FldUser:        res.ReservationUserID,
	}).Info("reservation requested")
	return res, nil
}

// Decide approves or rejects a PENDING reservation. Approval also marks the
// equipment RESERVED, in the same transaction.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, decision model.ReservationStatus, decidedBy uuid.UUID) (*model.ReservationModel, error) {
	if decision != model.ReservationApproved && decision != model.ReservationRejected {
		return nil, ErrInvalidDecision
	}

	var out *model.ReservationModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		res, err := r.LockReservation(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.ReservationStatus != model.ReservationPending {
			return ErrAlreadyDecided
		}

		now := s.now().UTC()
		res.ReservationStatus = decision
		res.ReservationDecidedBy = &decidedBy
		res.ReservationDecidedAt = &now
		if err := r.UpdateStatus(ctx, res); err != nil {
			return err
		}

		if decision == model.ReservationApproved {
			if _, err := r.LockEquipment(ctx, res.ReservationEquipmentID); err != nil {
				return err
			}
			if err := r.SetEquipmentStatus(ctx, res.ReservationEquipmentID, equipmentModel.EquipmentStatusReserved); err != nil {
				return err
			}
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldReservation: id,
		constants.FldStatus:      decision,
		constants.FldUser:        decidedBy,
	}).Info("reservation decided")
	return s.reload(ctx, out), nil
}

// Transition applies a manual lifecycle move (ACTIVE, COMPLETED, CANCELLED).
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to model.ReservationStatus, actor uuid.UUID) (*model.ReservationModel, error) {
	switch to {
	case model.ReservationActive, model.ReservationCompleted, model.ReservationCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	return s.transition(ctx, id, to, actor, nil)
}

// CancelOwn lets the requester cancel a PENDING or APPROVED reservation.
func (s *Service) CancelOwn(ctx context.Context, id, userID uuid.UUID) (*model.ReservationModel, error) {
	return s.transition(ctx, id, model.ReservationCancelled, userID, &userID)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to model.ReservationStatus, actor uuid.UUID, owner *uuid.UUID) (*model.ReservationModel, error) {
	var out *model.ReservationModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		res, err := r.LockReservation(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if owner != nil && res.ReservationUserID != *owner {
			return ErrNotOwner
		}
		if !canTransition(res.ReservationStatus, to) {
			return ErrIllegalTransition
		}

		res.ReservationStatus = to
		if err := r.UpdateStatus(ctx, res); err != nil {
			return err
		}

		eq, err := r.LockEquipment(ctx, res.ReservationEquipmentID)
		if err != nil {
			return err
		}
		switch to {
		case model.ReservationActive:
			err = s.occupyEquipment(ctx, r, eq)
		case model.ReservationCompleted, model.ReservationCancelled:
			err = s.releaseEquipment(ctx, r, eq, res.ReservationID)
		}
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldReservation: id,
		constants.FldStatus:      to,
		constants.FldUser:        actor,
	}).Info("reservation status changed")
	return s.reload(ctx, out), nil
}

// occupyEquipment marks the equipment IN_USE. Manual states (MAINTENANCE,
// UNAVAILABLE) set by an admin are left as they are.
func (s *Service) occupyEquipment(ctx context.Context, r repository.Repository, eq *equipmentModel.EquipmentModel) error {
	if eq.EquipmentStatus != equipmentModel.EquipmentStatusAvailable && eq.EquipmentStatus != equipmentModel.EquipmentStatusReserved {
		return nil
	}
	return r.SetEquipmentStatus(ctx, eq.EquipmentID, equipmentModel.EquipmentStatusInUse)
}

// releaseEquipment returns RESERVED/IN_USE equipment to AVAILABLE once no
// other reservation holds it. Manual states (MAINTENANCE, UNAVAILABLE) stay.
func (s *Service) releaseEquipment(ctx context.Context, r repository.Repository, eq *equipmentModel.EquipmentModel, exclude uuid.UUID) error {
	if eq.EquipmentStatus != equipmentModel.EquipmentStatusReserved && eq.EquipmentStatus != equipmentModel.EquipmentStatusInUse {
		return nil
	}
	holding, err := r.CountHolding(ctx, eq.EquipmentID, exclude)
	if err != nil {
		return err
	}
	if holding > 0 {
		return nil
	}
	return r.SetEquipmentStatus(ctx, eq.EquipmentID, equipmentModel.EquipmentStatusAvailable)
}

// reload fetches the committed row with its equipment; falls back to the
// in-transaction copy when the read fails.
func (s *Service) reload(ctx context.Context, res *model.ReservationModel) *model.ReservationModel {
	fresh, err := s.repo.FindByID(ctx, res.ReservationID)
	if err != nil {
		log.WithError(err).WithField(constants.FldReservation, res.ReservationID).Warn("reload reservation failed")
		return res
	}
	return fresh
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]model.ReservationModel, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, f repository.Filter) ([]model.ReservationModel, int64, error) {
	return s.repo.List(ctx, f)
}
