package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	"africrea_backend/internals/features/equipment/reservations/model"
	"africrea_backend/internals/helpers/dbtime"
)

// Filter narrows the admin listing. Zero value lists everything.
type Filter struct {
	Status *model.ReservationStatus
	Offset int
	Limit  int
}

// Repository is the store contract of reservation admission.
// Lookups of missing rows return an error matching gorm.ErrRecordNotFound.
type Repository interface {
	// Transaction runs fn against a repository bound to one DB transaction.
	Transaction(ctx context.Context, fn func(r Repository) error) error

	LockEquipment(ctx context.Context, equipmentID uuid.UUID) (*equipmentModel.EquipmentModel, error)
	SetEquipmentStatus(ctx context.Context, equipmentID uuid.UUID, status equipmentModel.EquipmentStatus) error

	FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]model.ReservationModel, error)
	CountHolding(ctx context.Context, equipmentID, exclude uuid.UUID) (int64, error)
	Create(ctx context.Context, r *model.ReservationModel) error
	LockReservation(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error)
	UpdateStatus(ctx context.Context, r *model.ReservationModel) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ReservationModel, error)
	List(ctx context.Context, f Filter) ([]model.ReservationModel, int64, error)
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

/* ====================== EQUIPMENT ====================== */

// LockEquipment takes the row lock that serializes admission per equipment.
func (r *gormRepository) LockEquipment(ctx context.Context, equipmentID uuid.UUID) (*equipmentModel.EquipmentModel, error) {
	var eq equipmentModel.EquipmentModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("equipment_id = ?", equipmentID).
		First(&eq).Error
	if err != nil {
		return nil, errors.Wrap(err, "lock equipment")
	}
	return &eq, nil
}

func (r *gormRepository) SetEquipmentStatus(ctx context.Context, equipmentID uuid.UUID, status equipmentModel.EquipmentStatus) error {
	err := r.db.WithContext(ctx).
		Model(&equipmentModel.EquipmentModel{}).
		Where("equipment_id = ?", equipmentID).
		Updates(map[string]interface{}{
			"equipment_status":     status,
			"equipment_updated_at": time.Now().UTC(),
		}).Error
	return errors.Wrap(err, "set equipment status")
}

/* ====================== RESERVATIONS ====================== */

func blockingStatuses() []string {
	out := make([]string, 0, len(model.BlockingStatuses))
	for _, s := range model.BlockingStatuses {
		out = append(out, string(s))
	}
	return out
}

// FindOverlapping returns blocking reservations sharing at least one day with [start, end].
func (r *gormRepository) FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]model.ReservationModel, error) {
	var rows []model.ReservationModel
	err := r.db.WithContext(ctx).
		Where("reservation_equipment_id = ?", equipmentID).
		Where("reservation_status IN ?", blockingStatuses()).
		Where("reservation_start_date <= ?::date AND reservation_end_date >= ?::date",
			end.Format(dbtime.DateLayout), start.Format(dbtime.DateLayout)).
		Find(&rows).Error
	return rows, errors.Wrap(err, "find overlapping reservations")
}

// CountHolding counts APPROVED/ACTIVE reservations of the equipment other than exclude.
func (r *gormRepository) CountHolding(ctx context.Context, equipmentID, exclude uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("reservation_equipment_id = ? AND reservation_id <> ?", equipmentID, exclude).
		Where("reservation_status IN ?", []string{string(model.ReservationApproved), string(model.ReservationActive)}).
		Count(&n).Error
	return n, errors.Wrap(err, "count holding reservations")
}

func (r *gormRepository) Create(ctx context.Context, res *model.ReservationModel) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error, "create reservation")
}

func (r *gormRepository) LockReservation(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	var res model.ReservationModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reservation_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, errors.Wrap(err, "lock reservation")
	}
	return &res, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, res *model.ReservationModel) error {
	err := r.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("reservation_id = ?", res.ReservationID).
		Updates(map[string]interface{}{
			"reservation_status":     res.ReservationStatus,
			"reservation_decided_by": res.ReservationDecidedBy,
			"reservation_decided_at": res.ReservationDecidedAt,
			"reservation_updated_at": time.Now().UTC(),
		}).Error
	return errors.Wrap(err, "update reservation status")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	var res model.ReservationModel
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Where("reservation_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, errors.Wrap(err, "find reservation")
	}
	return &res, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ReservationModel, error) {
	var rows []model.ReservationModel
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Where("reservation_user_id = ?", userID).
		Order("reservation_start_date DESC, reservation_created_at DESC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list reservations by user")
}

func (r *gormRepository) List(ctx context.Context, f Filter) ([]model.ReservationModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ReservationModel{})
	if f.Status != nil {
		q = q.Where("reservation_status = ?", string(*f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count reservations")
	}

	var rows []model.ReservationModel
	q = q.Preload("Equipment").Preload("User").Order("reservation_created_at DESC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list reservations")
	}
	return rows, total, nil
}
