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
	"africrea_backend/internals/features/projects/projects/model"
	"africrea_backend/internals/features/projects/projects/repository"
	helper "africrea_backend/internals/helpers"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrAlreadyApplied      = errors.New("already applied to this project")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidDecision     = errors.New("decision must be ACCEPTED or REJECTED")
	ErrAlreadyDecided      = errors.New("application already decided")
	ErrProjectFull         = errors.New("project has no free participant slot")
)

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func lockProject(ctx context.Context, r repository.Repository, id uuid.UUID) (*model.ProjectModel, error) {
	p, err := r.LockProject(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	return p, err
}

// Apply records a PENDING application; one per user and project.
func (s *Service) Apply(ctx context.Context, projectID, userID uuid.UUID, message string) (*model.ParticipantModel, error) {
	var part *model.ParticipantModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		project, err := lockProject(ctx, r, projectID)
		if err != nil {
			return err
		}

		if _, err := r.FindParticipant(ctx, projectID, userID); err == nil {
			return ErrAlreadyApplied
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := s.now().UTC()
		part = &model.ParticipantModel{
			ParticipantID:        uuid.New(),
			ParticipantProjectID: projectID,
			ParticipantUserID:    userID,
			ParticipantRole:      model.ParticipantRoleParticipant,
			ParticipantStatus:    model.ParticipantPending,
			ParticipantMessage:   strings.TrimSpace(message),
			ParticipantCreatedAt: now,
			ParticipantUpdatedAt: now,
		}
		if err := r.CreateParticipant(ctx, part); err != nil {
			return err
		}
		part.Project = project
		return nil
	})
	if helper.IsUniqueViolation(err) {
		err = ErrAlreadyApplied
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldProject: projectID,
		constants.FldUser:    userID,
	}).Info("project application received")
	return part, nil
}

// Decide accepts or rejects a PENDING application. Accepting respects
// max participants, counted under the project lock.
func (s *Service) Decide(ctx context.Context, projectID, userID uuid.UUID, decision model.ParticipantStatus) (*model.ParticipantModel, error) {
	if !decision.Decision() {
		return nil, ErrInvalidDecision
	}

	var part *model.ParticipantModel
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		project, err := lockProject(ctx, r, projectID)
		if err != nil {
			return err
		}

		part, err = r.FindParticipant(ctx, projectID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if part.ParticipantStatus != model.ParticipantPending {
			return ErrAlreadyDecided
		}

		if decision == model.ParticipantAccepted {
			accepted, err := r.CountParticipants(ctx, projectID, model.ParticipantAccepted)
			if err != nil {
				return err
			}
			if !project.HasRoom(accepted) {
				return ErrProjectFull
			}
		}

		part.ParticipantStatus = decision
		part.ParticipantUpdatedAt = s.now().UTC()
		return r.UpdateParticipantStatus(ctx, part)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldProject: projectID,
		constants.FldUser:    userID,
		constants.FldStatus:  decision,
	}).Info("project application decided")
	return part, nil
}
