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

	eventModel "africrea_backend/internals/features/events/events/model"
	"africrea_backend/internals/features/events/registrations/model"
	"africrea_backend/internals/features/events/registrations/repository"
)

type memRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]eventModel.EventModel
	regs   map[uuid.UUID]model.EventRegistrationModel
}

func newMemRepo() *memRepo {
	return &memRepo{
		events: map[uuid.UUID]eventModel.EventModel{},
		regs:   map[uuid.UUID]model.EventRegistrationModel{},
	}
}

func (m *memRepo) Transaction(_ context.Context, fn func(repository.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[uuid.UUID]model.EventRegistrationModel, len(m.regs))
	for k, v := range m.regs {
		snap[k] = v
	}
	if err := fn(m); err != nil {
		m.regs = snap
		return err
	}
	return nil
}

func (m *memRepo) LockEvent(_ context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ev, nil
}

func (m *memRepo) FindRegistration(_ context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	for _, r := range m.regs {
		if r.EventRegistrationEventID == eventID && r.EventRegistrationUserID == userID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) CountByStatus(_ context.Context, eventID uuid.UUID, status model.RegistrationStatus) (int64, error) {
	var n int64
	for _, r := range m.regs {
		if r.EventRegistrationEventID == eventID && r.EventRegistrationStatus == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) Create(_ context.Context, reg *model.EventRegistrationModel) error {
	row := *reg
	row.Event = nil
	m.regs[reg.EventRegistrationID] = row
	return nil
}

func (m *memRepo) Delete(_ context.Context, eventID, userID uuid.UUID) (int64, error) {
	var n int64
	for id, r := range m.regs {
		if r.EventRegistrationEventID == eventID && r.EventRegistrationUserID == userID {
			delete(m.regs, id)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ordered(eventID uuid.UUID) []model.EventRegistrationModel {
	var out []model.EventRegistrationModel
	for _, r := range m.regs {
		if r.EventRegistrationEventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventRegistrationCreatedAt.Before(out[j].EventRegistrationCreatedAt)
	})
	return out
}

func (m *memRepo) OldestWaitlisted(_ context.Context, eventID uuid.UUID, limit int) ([]model.EventRegistrationModel, error) {
	var out []model.EventRegistrationModel
	for _, r := range m.ordered(eventID) {
		if r.EventRegistrationStatus != model.RegistrationWaitlist {
			continue
		}
		if limit >= 0 && len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) Confirm(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		r := m.regs[id]
		r.EventRegistrationStatus = model.RegistrationConfirmed
		m.regs[id] = r
	}
	return nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var out []model.EventRegistrationModel
	for _, r := range m.regs {
		if r.EventRegistrationUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	return m.ordered(eventID), nil
}

func (m *memRepo) addEvent(max *int) uuid.UUID {
	id := uuid.New()
	m.events[id] = eventModel.EventModel{
		EventID:           id,
		EventTitle:        "Masterclass étalonnage",
		EventType:         eventModel.EventMasterclass,
		EventMaxAttendees: max,
	}
	return id
}

func intPtr(n int) *int { return &n }

// newTestService ticks the clock so admission order is deterministic.
func newTestService(repo *memRepo) *Service {
	svc := NewService(repo)
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	var tick int
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestRegister_CapacityAndNoAutoPromotion(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(2))
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	for _, u := range []uuid.UUID{a, b} {
		reg, err := svc.Register(ctx, ev, u)
		require.NoError(t, err)
		assert.Equal(t, model.RegistrationConfirmed, reg.EventRegistrationStatus)
	}

	regC, err := svc.Register(ctx, ev, c)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationWaitlist, regC.EventRegistrationStatus)

	require.NoError(t, svc.Unregister(ctx, ev, a))

	regD, err := svc.Register(ctx, ev, d)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationConfirmed, regD.EventRegistrationStatus)

	stillC, err := repo.FindRegistration(ctx, ev, c)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationWaitlist, stillC.EventRegistrationStatus)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(1))
	u := uuid.New()

	first, err := svc.Register(ctx, ev, u)
	require.NoError(t, err)

	_, err = svc.Register(ctx, ev, u)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	got, err := repo.FindRegistration(ctx, ev, u)
	require.NoError(t, err)
	assert.Equal(t, first.EventRegistrationID, got.EventRegistrationID)
	assert.Equal(t, model.RegistrationConfirmed, got.EventRegistrationStatus)
	assert.Len(t, repo.regs, 1)
}

func TestRegister_Unlimited(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(nil)

	for i := 0; i < 50; i++ {
		reg, err := svc.Register(ctx, ev, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, model.RegistrationConfirmed, reg.EventRegistrationStatus)
	}
}

func TestRegister_ZeroCapacityWaitlistsEveryone(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(0))

	reg, err := svc.Register(context.Background(), ev, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationWaitlist, reg.EventRegistrationStatus)
}

func TestRegister_UnknownEvent(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.Register(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegister_ConcurrentNeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(5))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, ev, uuid.New())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	confirmed, _ := repo.CountByStatus(ctx, ev, model.RegistrationConfirmed)
	waitlist, _ := repo.CountByStatus(ctx, ev, model.RegistrationWaitlist)
	assert.Equal(t, int64(5), confirmed)
	assert.Equal(t, int64(35), waitlist)
}

func TestUnregister(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(3))
	u := uuid.New()

	assert.ErrorIs(t, svc.Unregister(ctx, ev, u), ErrRegistrationNotFound)
	assert.ErrorIs(t, svc.Unregister(ctx, uuid.New(), u), ErrEventNotFound)

	_, err := svc.Register(ctx, ev, u)
	require.NoError(t, err)
	require.NoError(t, svc.Unregister(ctx, ev, u))
	assert.Empty(t, repo.regs)
}

func TestPromoteWaitlist(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(2))

	users := make([]uuid.UUID, 5)
	for i := range users {
		users[i] = uuid.New()
		_, err := svc.Register(ctx, ev, users[i])
		require.NoError(t, err)
	}

	promoted, err := svc.PromoteWaitlist(ctx, ev)
	require.NoError(t, err)
	assert.Empty(t, promoted, "event is full")

	require.NoError(t, svc.Unregister(ctx, ev, users[0]))
	require.NoError(t, svc.Unregister(ctx, ev, users[1]))

	promoted, err = svc.PromoteWaitlist(ctx, ev)
	require.NoError(t, err)
	require.Len(t, promoted, 2)
	assert.Equal(t, users[2], promoted[0].EventRegistrationUserID)
	assert.Equal(t, users[3], promoted[1].EventRegistrationUserID)

	last, err := repo.FindRegistration(ctx, ev, users[4])
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationWaitlist, last.EventRegistrationStatus)

	_, err = svc.PromoteWaitlist(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestPromoteWaitlist_Unlimited(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ev := repo.addEvent(intPtr(1))
	for i := 0; i < 3; i++ {
		_, err := svc.Register(ctx, ev, uuid.New())
		require.NoError(t, err)
	}

	e := repo.events[ev]
	e.EventMaxAttendees = nil
	repo.events[ev] = e

	promoted, err := svc.PromoteWaitlist(ctx, ev)
	require.NoError(t, err)
	assert.Len(t, promoted, 2)
}
