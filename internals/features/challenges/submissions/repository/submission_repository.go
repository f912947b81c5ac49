package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	challengeModel "africrea_backend/internals/features/challenges/challenges/model"
	"africrea_backend/internals/features/challenges/submissions/model"
)

type Filter struct {
	ChallengeID *uuid.UUID
	Status      *model.SubmissionStatus
	Offset      int
	Limit       int
}

// Repository is the store contract of submissions and reviews.
// Lookups of missing rows return an error matching gorm.ErrRecordNotFound.
type Repository interface {
	Transaction(ctx context.Context, fn func(r Repository) error) error

	FindChallenge(ctx context.Context, id uuid.UUID) (*challengeModel.ChallengeModel, error)
	Create(ctx context.Context, s *model.SubmissionModel) error

	LockSubmission(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error)
	UpdateReview(ctx context.Context, s *model.SubmissionModel) error
	AddFeedback(ctx context.Context, f *model.FeedbackModel) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error)
	// ListByStudent returns newest first; status nil means any.
	ListByStudent(ctx context.Context, studentID uuid.UUID, status *model.SubmissionStatus) ([]model.SubmissionModel, error)
	List(ctx context.Context, f Filter) ([]model.SubmissionModel, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) FindChallenge(ctx context.Context, id uuid.UUID) (*challengeModel.ChallengeModel, error) {
	var ch challengeModel.ChallengeModel
	if err := r.db.WithContext(ctx).Where("challenge_id = ?", id).First(&ch).Error; err != nil {
		return nil, errors.Wrap(err, "find challenge")
	}
	return &ch, nil
}

func (r *gormRepository) Create(ctx context.Context, s *model.SubmissionModel) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error, "create submission")
}

// LockSubmission serializes concurrent reviews of one submission.
func (r *gormRepository) LockSubmission(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	var s model.SubmissionModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, errors.Wrap(err, "lock submission")
	}
	return &s, nil
}

func (r *gormRepository) UpdateReview(ctx context.Context, s *model.SubmissionModel) error {
	err := r.db.WithContext(ctx).
		Model(&model.SubmissionModel{}).
		Where("submission_id = ?", s.SubmissionID).
		Updates(map[string]interface{}{
			"submission_status":      string(s.SubmissionStatus),
			"submission_grade":       s.SubmissionGrade,
			"submission_reviewed_at": s.SubmissionReviewedAt,
		}).Error
	return errors.Wrap(err, "update submission review")
}

func (r *gormRepository) AddFeedback(ctx context.Context, f *model.FeedbackModel) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error, "add feedback")
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Challenge").
		Preload("Feedbacks", func(q *gorm.DB) *gorm.DB {
			return q.Order("feedback_created_at DESC, feedback_id DESC")
		}).
		Preload("Feedbacks.Author")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	var s model.SubmissionModel
	err := withDetails(r.db.WithContext(ctx)).
		Preload("Student").
		Where("submission_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, errors.Wrap(err, "find submission")
	}
	return &s, nil
}

func (r *gormRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, status *model.SubmissionStatus) ([]model.SubmissionModel, error) {
	q := withDetails(r.db.WithContext(ctx)).Where("submission_student_id = ?", studentID)
	if status != nil {
		q = q.Where("submission_status = ?", string(*status))
	}
	var rows []model.SubmissionModel
	err := q.Order("submission_created_at DESC").Find(&rows).Error
	return rows, errors.Wrap(err, "list submissions by student")
}

func (r *gormRepository) List(ctx context.Context, f Filter) ([]model.SubmissionModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.SubmissionModel{})
	if f.ChallengeID != nil {
		q = q.Where("submission_challenge_id = ?", *f.ChallengeID)
	}
	if f.Status != nil {
		q = q.Where("submission_status = ?", string(*f.Status))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count submissions")
	}

	var rows []model.SubmissionModel
	q = withDetails(q).Preload("Student").Order("submission_created_at ASC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list submissions")
	}
	return rows, total, nil
}
