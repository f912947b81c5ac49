package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"africrea_backend/internals/features/projects/projects/model"
)

// Repository is the store contract of project applications.
// Lookups of missing rows return an error matching gorm.ErrRecordNotFound.
type Repository interface {
	Transaction(ctx context.Context, fn func(r Repository) error) error

	LockProject(ctx context.Context, projectID uuid.UUID) (*model.ProjectModel, error)
	FindParticipant(ctx context.Context, projectID, userID uuid.UUID) (*model.ParticipantModel, error)
	CountParticipants(ctx context.Context, projectID uuid.UUID, status model.ParticipantStatus) (int64, error)
	CreateParticipant(ctx context.Context, p *model.ParticipantModel) error
	UpdateParticipantStatus(ctx context.Context, p *model.ParticipantModel) error
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

// LockProject serializes applications and decisions per project.
func (r *gormRepository) LockProject(ctx context.Context, projectID uuid.UUID) (*model.ProjectModel, error) {
	var p model.ProjectModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		First(&p).Error
	if err != nil {
		return nil, errors.Wrap(err, "lock project")
	}
	return &p, nil
}

func (r *gormRepository) FindParticipant(ctx context.Context, projectID, userID uuid.UUID) (*model.ParticipantModel, error) {
	var p model.ParticipantModel
	err := r.db.WithContext(ctx).
		Where("participant_project_id = ? AND participant_user_id = ?", projectID, userID).
		First(&p).Error
	if err != nil {
		return nil, errors.Wrap(err, "find participant")
	}
	return &p, nil
}

func (r *gormRepository) CountParticipants(ctx context.Context, projectID uuid.UUID, status model.ParticipantStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ParticipantModel{}).
		Where("participant_project_id = ? AND participant_status = ?", projectID, string(status)).
		Count(&n).Error
	return n, errors.Wrap(err, "count participants")
}

func (r *gormRepository) CreateParticipant(ctx context.Context, p *model.ParticipantModel) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error, "create participant")
}

func (r *gormRepository) UpdateParticipantStatus(ctx context.Context, p *model.ParticipantModel) error {
	err := r.db.WithContext(ctx).
		Model(&model.ParticipantModel{}).
		Where("participant_id = ?", p.ParticipantID).
		Update("participant_status", string(p.ParticipantStatus)).Error
	return errors.Wrap(err, "update participant status")
}
