package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/events/registrations/model"
	"africrea_backend/internals/features/events/registrations/repository"
	helper "africrea_backend/internals/helpers"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register confirms the caller while CONFIRMED rows are below capacity and
// waitlists them otherwise.
func (s *Service) Register(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg *model.EventRegistrationModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		ev, err := r.LockEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if _, err := r.FindRegistration(ctx, eventID, userID); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		confirmed, err := r.CountByStatus(ctx, eventID, model.RegistrationConfirmed)
		if err != nil {
			return err
		}
		status := model.RegistrationConfirmed
		if !ev.HasRoom(confirmed) {
			status = model.RegistrationWaitlist
		}

		now := s.now().UTC()
		reg = &model.EventRegistrationModel{
			EventRegistrationID:        uuid.New(),
			EventRegistrationEventID:   eventID,
			EventRegistrationUserID:    userID,
			EventRegistrationStatus:    status,
			EventRegistrationCreatedAt: now,
			EventRegistrationUpdatedAt: now,
		}
		if err := r.Create(ctx, reg); err != nil {
			return err
		}
		reg.Event = ev
		return nil
	})
	if helper.IsUniqueViolation(err) {
		err = ErrAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldEvent:  eventID,
		constants.FldUser:   userID,
		constants.FldStatus: reg.EventRegistrationStatus,
	}).Info("event registration admitted")
	return reg, nil
}

// Unregister deletes the caller's row. Waitlisted users are not promoted here;
// PromoteWaitlist does that on demand.
func (s *Service) Unregister(ctx context.Context, eventID, userID uuid.UUID) error {
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if _, err := r.LockEvent(ctx, eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		n, err := r.Delete(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRegistrationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		constants.FldEvent: eventID,
		constants.FldUser:  userID,
	}).Info("event registration removed")
	return nil
}

// PromoteWaitlist confirms the earliest WAITLIST rows while seats remain and
// returns the promoted registrations.
func (s *Service) PromoteWaitlist(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var promoted []model.EventRegistrationModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		ev, err := r.LockEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		confirmed, err := r.CountByStatus(ctx, eventID, model.RegistrationConfirmed)
		if err != nil {
			return err
		}
		free := ev.FreeSeats(confirmed)
		if free == 0 {
			return nil
		}

		rows, err := r.OldestWaitlisted(ctx, eventID, free)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(rows))
		for i := range rows {
			ids = append(ids, rows[i].EventRegistrationID)
			rows[i].EventRegistrationStatus = model.RegistrationConfirmed
		}
		if err := r.Confirm(ctx, ids); err != nil {
			return err
		}
		promoted = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldEvent: eventID,
		"promoted":         len(promoted),
	}).Info("waitlist promotion")
	return promoted, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	return s.repo.ListByEvent(ctx, eventID)
}
