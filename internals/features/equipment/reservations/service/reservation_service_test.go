package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	"africrea_backend/internals/features/equipment/reservations/model"
	"africrea_backend/internals/features/equipment/reservations/repository"
)

// memRepo keeps rows in maps; Transaction serializes callers and rolls back on error.
type memRepo struct {
	mu           *sync.Mutex
	equipment    map[uuid.UUID]equipmentModel.EquipmentModel
	reservations map[uuid.UUID]model.ReservationModel
}

func newMemRepo() *memRepo {
	return &memRepo{
		mu:           &sync.Mutex{},
		equipment:    map[uuid.UUID]equipmentModel.EquipmentModel{},
		reservations: map[uuid.UUID]model.ReservationModel{},
	}
}

func (m *memRepo) Transaction(_ context.Context, fn func(repository.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	eqSnap := make(map[uuid.UUID]equipmentModel.EquipmentModel, len(m.equipment))
	for k, v := range m.equipment {
		eqSnap[k] = v
	}
	resSnap := make(map[uuid.UUID]model.ReservationModel, len(m.reservations))
	for k, v := range m.reservations {
		resSnap[k] = v
	}
	if err := fn(m); err != nil {
		m.equipment, m.reservations = eqSnap, resSnap
		return err
	}
	return nil
}

func (m *memRepo) LockEquipment(_ context.Context, id uuid.UUID) (*equipmentModel.EquipmentModel, error) {
	eq, ok := m.equipment[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &eq, nil
}

func (m *memRepo) SetEquipmentStatus(_ context.Context, id uuid.UUID, status equipmentModel.EquipmentStatus) error {
	eq := m.equipment[id]
	eq.EquipmentStatus = status
	m.equipment[id] = eq
	return nil
}

func (m *memRepo) FindOverlapping(_ context.Context, equipmentID uuid.UUID, start, end time.Time) ([]model.ReservationModel, error) {
	var out []model.ReservationModel
	for _, r := range m.reservations {
		if r.ReservationEquipmentID != equipmentID || !r.ReservationStatus.Blocks() {
			continue
		}
		if model.Overlaps(r.ReservationStartDate, r.ReservationEndDate, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) CountHolding(_ context.Context, equipmentID, exclude uuid.UUID) (int64, error) {
	var n int64
	for _, r := range m.reservations {
		if r.ReservationEquipmentID != equipmentID || r.ReservationID == exclude {
			continue
		}
		if r.ReservationStatus == model.ReservationApproved || r.ReservationStatus == model.ReservationActive {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) Create(_ context.Context, r *model.ReservationModel) error {
	row := *r
	row.Equipment = nil
	m.reservations[r.ReservationID] = row
	return nil
}

func (m *memRepo) LockReservation(_ context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, r *model.ReservationModel) error {
	row := m.reservations[r.ReservationID]
	row.ReservationStatus = r.ReservationStatus
	row.ReservationDecidedBy = r.ReservationDecidedBy
	row.ReservationDecidedAt = r.ReservationDecidedAt
	m.reservations[r.ReservationID] = row
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	eq := m.equipment[r.ReservationEquipmentID]
	r.Equipment = &eq
	return &r, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.ReservationModel, error) {
	var out []model.ReservationModel
	for _, r := range m.reservations {
		if r.ReservationUserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReservationStartDate.After(out[j].ReservationStartDate) })
	return out, nil
}

func (m *memRepo) List(_ context.Context, f repository.Filter) ([]model.ReservationModel, int64, error) {
	var out []model.ReservationModel
	for _, r := range m.reservations {
		if f.Status != nil && r.ReservationStatus != *f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) addEquipment(status equipmentModel.EquipmentStatus) uuid.UUID {
	id := uuid.New()
	m.equipment[id] = equipmentModel.EquipmentModel{
		EquipmentID:       id,
		EquipmentName:     "Sony FX3",
		EquipmentCategory: equipmentModel.EquipmentCategoryCamera,
		EquipmentStatus:   status,
	}
	return id
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

func request(t *testing.T, svc *Service, equipmentID uuid.UUID, from, to int) (*model.ReservationModel, error) {
	t.Helper()
	return svc.Request(context.Background(), RequestInput{
		EquipmentID: equipmentID,
		UserID:      uuid.New(),
		StartDate:   day(from),
		EndDate:     day(to),
		Purpose:     "court métrage",
	})
}

func TestRequest_NoOverlap(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	a, err := request(t, svc, eq, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, a.ReservationStatus)

	_, err = request(t, svc, eq, 3, 7)
	assert.ErrorIs(t, err, ErrReservationConflict)

	_, err = request(t, svc, eq, 6, 8)
	assert.NoError(t, err)

	assert.Len(t, repo.reservations, 2)
	assert.Equal(t, equipmentModel.EquipmentStatusAvailable, repo.equipment[eq].EquipmentStatus)
}

func TestRequest_SharedBoundaryDayConflicts(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	_, err := request(t, svc, eq, 5, 10)
	require.NoError(t, err)

	_, err = request(t, svc, eq, 10, 15)
	assert.ErrorIs(t, err, ErrReservationConflict)
}

func TestRequest_AdjacentRangesAccepted(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	_, err := request(t, svc, eq, 1, 5)
	require.NoError(t, err)
	_, err = request(t, svc, eq, 6, 10)
	assert.NoError(t, err)
}

func TestRequest_OtherEquipmentAndTerminalStatusesDoNotBlock(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
	other := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	a, err := request(t, svc, eq, 1, 5)
	require.NoError(t, err)

	_, err = request(t, svc, other, 1, 5)
	assert.NoError(t, err)

	_, err = svc.Decide(context.Background(), a.ReservationID, model.ReservationRejected, uuid.New())
	require.NoError(t, err)

	_, err = request(t, svc, eq, 2, 4)
	assert.NoError(t, err)
}

func TestRequest_Validation(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	_, err := request(t, svc, eq, 5, 4)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = request(t, svc, uuid.New(), 1, 2)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)

	_, err = request(t, svc, uuid.New(), 5, 4)
	assert.ErrorIs(t, err, ErrEquipmentNotFound, "unknown equipment is reported before the range")

	single, err := request(t, svc, eq, 9, 9)
	require.NoError(t, err)
	assert.Equal(t, day(9), single.ReservationEndDate)
}

func TestRequest_TruncatesToCalendarDay(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	res, err := svc.Request(context.Background(), RequestInput{
		EquipmentID: eq,
		UserID:      uuid.New(),
		StartDate:   day(3).Add(15 * time.Hour),
		EndDate:     day(4).Add(9 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, day(3), res.ReservationStartDate)
	assert.Equal(t, day(4), res.ReservationEndDate)
}

func TestRequest_ConcurrentOverlappingRequestsAdmitOne(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, conflicts := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := request(t, svc, eq, 1, 5)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if assert.ErrorIs(t, err, ErrReservationConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
	assert.Equal(t, workers-1, conflicts)
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	admin := uuid.New()

	t.Run("approve reserves equipment", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
		res, err := request(t, svc, eq, 1, 3)
		require.NoError(t, err)

		out, err := svc.Decide(ctx, res.ReservationID, model.ReservationApproved, admin)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationApproved, out.ReservationStatus)
		require.NotNil(t, out.ReservationDecidedBy)
		assert.Equal(t, admin, *out.ReservationDecidedBy)
		assert.Equal(t, equipmentModel.EquipmentStatusReserved, repo.equipment[eq].EquipmentStatus)
		require.NotNil(t, out.Equipment)
		assert.Equal(t, equipmentModel.EquipmentStatusReserved, out.Equipment.EquipmentStatus)
	})

	t.Run("reject leaves equipment unchanged", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
		res, err := request(t, svc, eq, 1, 3)
		require.NoError(t, err)

		out, err := svc.Decide(ctx, res.ReservationID, model.ReservationRejected, admin)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationRejected, out.ReservationStatus)
		assert.Equal(t, equipmentModel.EquipmentStatusAvailable, repo.equipment[eq].EquipmentStatus)
	})

	t.Run("invalid decision", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Decide(ctx, uuid.New(), model.ReservationCompleted, admin)
		assert.ErrorIs(t, err, ErrInvalidDecision)
		_, err = svc.Decide(ctx, uuid.New(), "MAYBE", admin)
		assert.ErrorIs(t, err, ErrInvalidDecision)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Decide(ctx, uuid.New(), model.ReservationApproved, admin)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("only pending can be decided", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
		res, err := request(t, svc, eq, 1, 3)
		require.NoError(t, err)

		_, err = svc.Decide(ctx, res.ReservationID, model.ReservationRejected, admin)
		require.NoError(t, err)
		_, err = svc.Decide(ctx, res.ReservationID, model.ReservationApproved, admin)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		assert.Equal(t, model.ReservationRejected, repo.reservations[res.ReservationID].ReservationStatus)
		assert.Equal(t, equipmentModel.EquipmentStatusAvailable, repo.equipment[eq].EquipmentStatus)
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	admin := uuid.New()

	setup := func(t *testing.T) (*memRepo, *Service, uuid.UUID, *model.ReservationModel) {
		repo := newMemRepo()
		svc := NewService(repo)
		eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
		res, err := request(t, svc, eq, 1, 3)
		require.NoError(t, err)
		return repo, svc, eq, res
	}

	t.Run("full lifecycle", func(t *testing.T) {
		repo, svc, eq, res := setup(t)
		_, err := svc.Decide(ctx, res.ReservationID, model.ReservationApproved, admin)
		require.NoError(t, err)

		_, err = svc.Transition(ctx, res.ReservationID, model.ReservationActive, admin)
		require.NoError(t, err)
		assert.Equal(t, equipmentModel.EquipmentStatusInUse, repo.equipment[eq].EquipmentStatus)

		out, err := svc.Transition(ctx, res.ReservationID, model.ReservationCompleted, admin)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationCompleted, out.ReservationStatus)
		assert.Equal(t, equipmentModel.EquipmentStatusAvailable, repo.equipment[eq].EquipmentStatus)
	})

	t.Run("illegal transition", func(t *testing.T) {
		repo, svc, _, res := setup(t)
		_, err := svc.Transition(ctx, res.ReservationID, model.ReservationActive, admin)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, model.ReservationPending, repo.reservations[res.ReservationID].ReservationStatus)

		_, err = svc.Transition(ctx, res.ReservationID, model.ReservationApproved, admin)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("cancel keeps equipment reserved while another approval holds it", func(t *testing.T) {
		repo, svc, eq, first := setup(t)
		second, err := request(t, svc, eq, 10, 12)
		require.NoError(t, err)
		for _, id := range []uuid.UUID{first.ReservationID, second.ReservationID} {
			_, err := svc.Decide(ctx, id, model.ReservationApproved, admin)
			require.NoError(t, err)
		}

		_, err = svc.Transition(ctx, first.ReservationID, model.ReservationCancelled, admin)
		require.NoError(t, err)
		assert.Equal(t, equipmentModel.EquipmentStatusReserved, repo.equipment[eq].EquipmentStatus)

		_, err = svc.Transition(ctx, second.ReservationID, model.ReservationCancelled, admin)
		require.NoError(t, err)
		assert.Equal(t, equipmentModel.EquipmentStatusAvailable, repo.equipment[eq].EquipmentStatus)
	})

	t.Run("maintenance survives cancellation", func(t *testing.T) {
		repo, svc, eq, res := setup(t)
		_, err := svc.Decide(ctx, res.ReservationID, model.ReservationApproved, admin)
		require.NoError(t, err)
		require.NoError(t, repo.SetEquipmentStatus(ctx, eq, equipmentModel.EquipmentStatusMaintenance))

		_, err = svc.Transition(ctx, res.ReservationID, model.ReservationCancelled, admin)
		require.NoError(t, err)
		assert.Equal(t, equipmentModel.EquipmentStatusMaintenance, repo.equipment[eq].EquipmentStatus)
	})

	t.Run("maintenance survives activation", func(t *testing.T) {
		repo, svc, eq, res := setup(t)
		_, err := svc.Decide(ctx, res.ReservationID, model.ReservationApproved, admin)
		require.NoError(t, err)
		require.NoError(t, repo.SetEquipmentStatus(ctx, eq, equipmentModel.EquipmentStatusMaintenance))

		out, err := svc.Transition(ctx, res.ReservationID, model.ReservationActive, admin)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationActive, out.ReservationStatus)
		assert.Equal(t, equipmentModel.EquipmentStatusMaintenance, repo.equipment[eq].EquipmentStatus)
	})

	t.Run("cancelled range becomes bookable", func(t *testing.T) {
		_, svc, eq, res := setup(t)
		_, err := svc.Transition(ctx, res.ReservationID, model.ReservationCancelled, admin)
		require.NoError(t, err)
		_, err = request(t, svc, eq, 2, 2)
		assert.NoError(t, err)
	})
}

func TestCancelOwn(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)
	eq := repo.addEquipment(equipmentModel.EquipmentStatusAvailable)
	owner := uuid.New()

	res, err := svc.Request(ctx, RequestInput{EquipmentID: eq, UserID: owner, StartDate: day(1), EndDate: day(2)})
	require.NoError(t, err)

	_, err = svc.CancelOwn(ctx, res.ReservationID, uuid.New())
	assert.ErrorIs(t, err, ErrNotOwner)

	out, err := svc.CancelOwn(ctx, res.ReservationID, owner)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, out.ReservationStatus)

	_, err = svc.CancelOwn(ctx, res.ReservationID, owner)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	mine, err := svc.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
