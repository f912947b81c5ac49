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
	"africrea_backend/internals/features/challenges/submissions/model"
	"africrea_backend/internals/features/challenges/submissions/repository"
)

var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDeadlinePassed     = errors.New("the deadline has passed")
	ErrInvalidReview      = errors.New("review status must be APPROVED or REJECTED")
	ErrInvalidGrade       = errors.New("grade must be between 0 and 100")
)

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type SubmitInput struct {
	ChallengeID uuid.UUID
	StudentID   uuid.UUID
	FileURL     string
	Description string
}

type ReviewInput struct {
	Status     model.SubmissionStatus
	Grade      *int
	Feedback   string
	ReviewerID uuid.UUID
}

// Submit records a PENDING submission for an open challenge.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*model.SubmissionModel, error) {
	ch, err := s.repo.FindChallenge(ctx, in.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	now := s.now().UTC()
	if ch.Closed(now) {
		return nil, ErrDeadlinePassed
	}

	file := strings.TrimSpace(in.FileURL)
	if file == "" {
		file = model.PlaceholderFileURL
	}
	sub := &model.SubmissionModel{
		SubmissionID:          uuid.New(),
		SubmissionChallengeID: in.ChallengeID,
		SubmissionStudentID:   in.StudentID,
		SubmissionFileURL:     file,
		SubmissionDescription: strings.TrimSpace(in.Description),
		SubmissionStatus:      model.SubmissionPending,
		SubmissionCreatedAt:   now,
		SubmissionUpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	sub.Challenge = ch

	log.WithFields(log.Fields{
		constants.FldChallenge:  in.ChallengeID,
		constants.FldSubmission: sub.SubmissionID,
		constants.FldUser:       in.StudentID,
	}).Info("submission received")
	return sub, nil
}

// Review sets the decision and grade and appends the reviewer's feedback in
// one transaction. A reviewed submission may be reviewed again.
func (s *Service) Review(ctx context.Context, id uuid.UUID, in ReviewInput) (*model.SubmissionModel, error) {
	if !in.Status.Reviewable() {
		return nil, ErrInvalidReview
	}
	if in.Grade != nil && !model.ValidGrade(*in.Grade) {
		return nil, ErrInvalidGrade
	}

	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		sub, err := r.LockSubmission(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}

		now := s.now().UTC()
		sub.SubmissionStatus = in.Status
		if in.Grade != nil {
			sub.SubmissionGrade = in.Grade
		}
		sub.SubmissionReviewedAt = &now
		if err := r.UpdateReview(ctx, sub); err != nil {
			return err
		}

		if content := strings.TrimSpace(in.Feedback); content != "" {
			return r.AddFeedback(ctx, &model.FeedbackModel{
				FeedbackID:           uuid.New(),
				FeedbackSubmissionID: id,
				FeedbackAuthorID:     in.ReviewerID,
				FeedbackContent:      content,
				FeedbackCreatedAt:    now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		constants.FldSubmission: id,
		constants.FldStatus:     in.Status,
		constants.FldUser:       in.ReviewerID,
	}).Info("submission reviewed")

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) ListMine(ctx context.Context, studentID uuid.UUID) ([]model.SubmissionModel, error) {
	return s.repo.ListByStudent(ctx, studentID, nil)
}

func (s *Service) ListApproved(ctx context.Context, studentID uuid.UUID) ([]model.SubmissionModel, error) {
	st := model.SubmissionApproved
	return s.repo.ListByStudent(ctx, studentID, &st)
}

func (s *Service) ListAll(ctx context.Context, f repository.Filter) ([]model.SubmissionModel, int64, error) {
	return s.repo.List(ctx, f)
}
