package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"africrea_backend/internals/features/projects/projects/model"
	"africrea_backend/internals/features/projects/projects/repository"
)

type memRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]model.ProjectModel
	parts    []model.ParticipantModel
}

func (m *memRepo) Transaction(_ context.Context, fn func(repository.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := append([]model.ParticipantModel(nil), m.parts...)
	if err := fn(m); err != nil {
		m.parts = snap
		return err
	}
	return nil
}

func (m *memRepo) LockProject(_ context.Context, id uuid.UUID) (*model.ProjectModel, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (m *memRepo) FindParticipant(_ context.Context, projectID, userID uuid.UUID) (*model.ParticipantModel, error) {
	for i := range m.parts {
		if m.parts[i].ParticipantProjectID == projectID && m.parts[i].ParticipantUserID == userID {
			p := m.parts[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) CountParticipants(_ context.Context, projectID uuid.UUID, st model.ParticipantStatus) (int64, error) {
	var n int64
	for _, p := range m.parts {
		if p.ParticipantProjectID == projectID && p.ParticipantStatus == st {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CreateParticipant(_ context.Context, p *model.ParticipantModel) error {
	m.parts = append(m.parts, *p)
	return nil
}

func (m *memRepo) UpdateParticipantStatus(_ context.Context, p *model.ParticipantModel) error {
	for i := range m.parts {
		if m.parts[i].ParticipantID == p.ParticipantID {
			m.parts[i].ParticipantStatus = p.ParticipantStatus
		}
	}
	return nil
}

func setup(capacity *int) (*Service, *memRepo, uuid.UUID) {
	id := uuid.New()
	repo := &memRepo{projects: map[uuid.UUID]model.ProjectModel{
		id: {ProjectID: id, ProjectTitle: "Clip pour Ama", ProjectType: model.ProjectFilmShooting, ProjectMaxParticipants: capacity},
	}}
	return NewService(repo), repo, id
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc, repo, project := setup(nil)
	user := uuid.New()

	part, err := svc.Apply(ctx, project, user, "  motivé  ")
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantPending, part.ParticipantStatus)
	assert.Equal(t, model.ParticipantRoleParticipant, part.ParticipantRole)
	assert.Equal(t, "motivé", part.ParticipantMessage)
	require.NotNil(t, part.Project)

	_, err = svc.Apply(ctx, project, user, "")
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Len(t, repo.parts, 1)

	_, err = svc.Apply(ctx, uuid.New(), user, "")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestApplyConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	svc, repo, project := setup(nil)
	user := uuid.New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Apply(ctx, project, user, ""); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Len(t, repo.parts, 1)
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	one := 1
	svc, _, project := setup(&one)
	a, b := uuid.New(), uuid.New()
	for _, u := range []uuid.UUID{a, b} {
		_, err := svc.Apply(ctx, project, u, "")
		require.NoError(t, err)
	}

	_, err := svc.Decide(ctx, project, a, model.ParticipantPending)
	assert.ErrorIs(t, err, ErrInvalidDecision)

	part, err := svc.Decide(ctx, project, a, model.ParticipantAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantAccepted, part.ParticipantStatus)

	_, err = svc.Decide(ctx, project, a, model.ParticipantRejected)
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	_, err = svc.Decide(ctx, project, b, model.ParticipantAccepted)
	assert.ErrorIs(t, err, ErrProjectFull)

	part, err = svc.Decide(ctx, project, b, model.ParticipantRejected)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantRejected, part.ParticipantStatus)

	_, err = svc.Decide(ctx, project, uuid.New(), model.ParticipantAccepted)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
