package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	eventModel "africrea_backend/internals/features/events/events/model"
	"africrea_backend/internals/features/events/registrations/model"
)

// Repository is the store contract of registration admission.
// Lookups of missing rows return an error matching gorm.ErrRecordNotFound.
type Repository interface {
	Transaction(ctx context.Context, fn func(r Repository) error) error

	LockEvent(ctx context.Context, eventID uuid.UUID) (*eventModel.EventModel, error)
	FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error)
	CountByStatus(ctx context.Context, eventID uuid.UUID, status model.RegistrationStatus) (int64, error)
	Create(ctx context.Context, reg *model.EventRegistrationModel) error
	Delete(ctx context.Context, eventID, userID uuid.UUID) (int64, error)

	// OldestWaitlisted returns up to limit WAITLIST rows in admission order; limit < 0 means all.
	OldestWaitlisted(ctx context.Context, eventID uuid.UUID, limit int) ([]model.EventRegistrationModel, error)
	Confirm(ctx context.Context, ids []uuid.UUID) error

	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error)
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

// LockEvent serializes admission per event: capacity is counted under this lock.
func (r *gormRepository) LockEvent(ctx context.Context, eventID uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		First(&ev).Error
	if err != nil {
		return nil, errors.Wrap(err, "lock event")
	}
	return &ev, nil
}

func (r *gormRepository) FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel
	err := r.db.WithContext(ctx).
		Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
		First(&reg).Error
	if err != nil {
		return nil, errors.Wrap(err, "find registration")
	}
	return &reg, nil
}

func (r *gormRepository) CountByStatus(ctx context.Context, eventID uuid.UUID, status model.RegistrationStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_status = ?", eventID, string(status)).
		Count(&n).Error
	return n, errors.Wrap(err, "count registrations")
}

func (r *gormRepository) Create(ctx context.Context, reg *model.EventRegistrationModel) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(reg).Error, "create registration")
}

func (r *gormRepository) Delete(ctx context.Context, eventID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
		Delete(&model.EventRegistrationModel{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete registration")
}

func (r *gormRepository) OldestWaitlisted(ctx context.Context, eventID uuid.UUID, limit int) ([]model.EventRegistrationModel, error) {
	q := r.db.WithContext(ctx).
		Where("event_registration_event_id = ? AND event_registration_status = ?", eventID, string(model.RegistrationWaitlist)).
		Order("event_registration_created_at ASC, event_registration_id ASC")
	if limit >= 0 {
		q = q.Limit(limit)
	}
	var rows []model.EventRegistrationModel
	return rows, errors.Wrap(q.Find(&rows).Error, "list waitlist")
}

func (r *gormRepository) Confirm(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_id IN ?", ids).
		Updates(map[string]interface{}{
			"event_registration_status":     string(model.RegistrationConfirmed),
			"event_registration_updated_at": time.Now().UTC(),
		}).Error
	return errors.Wrap(err, "confirm registrations")
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var rows []model.EventRegistrationModel
	err := r.db.WithContext(ctx).
		Preload("Event").
		Joins("JOIN events ON events.event_id = event_registrations.event_registration_event_id").
		Where("event_registration_user_id = ?", userID).
		Order("events.event_date ASC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list registrations by user")
}

func (r *gormRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var rows []model.EventRegistrationModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_registration_event_id = ?", eventID).
		Order("event_registration_created_at ASC, event_registration_id ASC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list registrations by event")
}
