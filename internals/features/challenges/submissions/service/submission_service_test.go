package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	challengeModel "africrea_backend/internals/features/challenges/challenges/model"
	"africrea_backend/internals/features/challenges/submissions/model"
	"africrea_backend/internals/features/challenges/submissions/repository"
)

type memRepo struct {
	mu           sync.Mutex
	challenges   map[uuid.UUID]challengeModel.ChallengeModel
	submissions  map[uuid.UUID]model.SubmissionModel
	feedbacks    []model.FeedbackModel
	failFeedback bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		challenges:  map[uuid.UUID]challengeModel.ChallengeModel{},
		submissions: map[uuid.UUID]model.SubmissionModel{},
	}
}

func (m *memRepo) Transaction(_ context.Context, fn func(repository.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := make(map[uuid.UUID]model.SubmissionModel, len(m.submissions))
	for k, v := range m.submissions {
		subs[k] = v
	}
	fbs := append([]model.FeedbackModel(nil), m.feedbacks...)
	if err := fn(m); err != nil {
		m.submissions, m.feedbacks = subs, fbs
		return err
	}
	return nil
}

func (m *memRepo) FindChallenge(_ context.Context, id uuid.UUID) (*challengeModel.ChallengeModel, error) {
	ch, ok := m.challenges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ch, nil
}

func (m *memRepo) Create(_ context.Context, s *model.SubmissionModel) error {
	m.submissions[s.SubmissionID] = *s
	return nil
}

func (m *memRepo) LockSubmission(_ context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memRepo) UpdateReview(_ context.Context, s *model.SubmissionModel) error {
	row := m.submissions[s.SubmissionID]
	row.SubmissionStatus = s.SubmissionStatus
	row.SubmissionGrade = s.SubmissionGrade
	row.SubmissionReviewedAt = s.SubmissionReviewedAt
	m.submissions[s.SubmissionID] = row
	return nil
}

func (m *memRepo) AddFeedback(_ context.Context, f *model.FeedbackModel) error {
	if m.failFeedback {
		return errors.New("insert feedback: connection reset")
	}
	m.feedbacks = append(m.feedbacks, *f)
	return nil
}

func (m *memRepo) detailed(s model.SubmissionModel) model.SubmissionModel {
	if ch, ok := m.challenges[s.SubmissionChallengeID]; ok {
		s.Challenge = &ch
	}
	s.Feedbacks = nil
	for _, f := range m.feedbacks {
		if f.FeedbackSubmissionID == s.SubmissionID {
			s.Feedbacks = append([]model.FeedbackModel{f}, s.Feedbacks...)
		}
	}
	return s
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d := m.detailed(s)
	return &d, nil
}

func (m *memRepo) ListByStudent(_ context.Context, studentID uuid.UUID, status *model.SubmissionStatus) ([]model.SubmissionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SubmissionModel
	for _, s := range m.submissions {
		if s.SubmissionStudentID != studentID || (status != nil && s.SubmissionStatus != *status) {
			continue
		}
		out = append(out, m.detailed(s))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmissionCreatedAt.After(out[j].SubmissionCreatedAt)
	})
	return out, nil
}

func (m *memRepo) List(context.Context, repository.Filter) ([]model.SubmissionModel, int64, error) {
	return nil, 0, nil
}

var clock = time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *memRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return clock }
	return svc
}

func (m *memRepo) addChallenge(deadline *time.Time) uuid.UUID {
	id := uuid.New()
	m.challenges[id] = challengeModel.ChallengeModel{
		ChallengeID:          id,
		ChallengeTitle:       "Logo pour une radio",
		ChallengeDescription: "Identité visuelle",
		ChallengePole:        "GRAPHISME",
		ChallengeDeadline:    deadline,
	}
	return id
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	future := clock.Add(48 * time.Hour)
	past := clock.Add(-time.Hour)
	open := repo.addChallenge(&future)
	closed := repo.addChallenge(&past)
	student := uuid.New()

	t.Run("defaults file url", func(t *testing.T) {
		sub, err := svc.Submit(ctx, SubmitInput{ChallengeID: open, StudentID: student, Description: " v1 "})
		require.NoError(t, err)
		assert.Equal(t, model.SubmissionPending, sub.SubmissionStatus)
		assert.Equal(t, model.PlaceholderFileURL, sub.SubmissionFileURL)
		assert.Equal(t, "v1", sub.SubmissionDescription)
		require.NotNil(t, sub.Challenge)
		assert.Equal(t, open, sub.Challenge.ChallengeID)
	})

	t.Run("keeps file url", func(t *testing.T) {
		sub, err := svc.Submit(ctx, SubmitInput{ChallengeID: open, StudentID: student, FileURL: "https://cdn.example/a.zip"})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/a.zip", sub.SubmissionFileURL)
	})

	t.Run("deadline passed", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitInput{ChallengeID: closed, StudentID: student})
		assert.ErrorIs(t, err, ErrDeadlinePassed)
	})

	t.Run("no deadline stays open", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitInput{ChallengeID: repo.addChallenge(nil), StudentID: student})
		assert.NoError(t, err)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitInput{ChallengeID: uuid.New(), StudentID: student})
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})
}

func TestReview(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ch := repo.addChallenge(nil)
	sub, err := svc.Submit(ctx, SubmitInput{ChallengeID: ch, StudentID: uuid.New()})
	require.NoError(t, err)
	trainer := uuid.New()
	grade := 85

	got, err := svc.Review(ctx, sub.SubmissionID, ReviewInput{
		Status: model.SubmissionApproved, Grade: &grade, Feedback: " Belle composition ", ReviewerID: trainer,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, got.SubmissionStatus)
	require.NotNil(t, got.SubmissionGrade)
	assert.Equal(t, 85, *got.SubmissionGrade)
	require.NotNil(t, got.SubmissionReviewedAt)
	require.Len(t, got.Feedbacks, 1)
	assert.Equal(t, "Belle composition", got.Feedbacks[0].FeedbackContent)
	assert.Equal(t, trainer, got.Feedbacks[0].FeedbackAuthorID)

	t.Run("re-review keeps grade when omitted", func(t *testing.T) {
		got, err := svc.Review(ctx, sub.SubmissionID, ReviewInput{Status: model.SubmissionRejected, ReviewerID: trainer})
		require.NoError(t, err)
		assert.Equal(t, model.SubmissionRejected, got.SubmissionStatus)
		assert.Equal(t, 85, *got.SubmissionGrade)
		assert.Len(t, got.Feedbacks, 1, "empty feedback adds no entry")
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Review(ctx, sub.SubmissionID, ReviewInput{Status: model.SubmissionPending})
		assert.ErrorIs(t, err, ErrInvalidReview)
	})

	t.Run("grade out of range", func(t *testing.T) {
		bad := 101
		_, err := svc.Review(ctx, sub.SubmissionID, ReviewInput{Status: model.SubmissionApproved, Grade: &bad})
		assert.ErrorIs(t, err, ErrInvalidGrade)
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, err := svc.Review(ctx, uuid.New(), ReviewInput{Status: model.SubmissionApproved})
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("feedback failure rolls back the decision", func(t *testing.T) {
		repo.failFeedback = true
		defer func() { repo.failFeedback = false }()

		_, err := svc.Review(ctx, sub.SubmissionID, ReviewInput{
			Status: model.SubmissionApproved, Feedback: "ok", ReviewerID: trainer,
		})
		require.Error(t, err)
		row, err := repo.FindByID(ctx, sub.SubmissionID)
		require.NoError(t, err)
		assert.Equal(t, model.SubmissionRejected, row.SubmissionStatus)
	})
}

func TestListApproved(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)
	ch := repo.addChallenge(nil)
	student := uuid.New()

	a, err := svc.Submit(ctx, SubmitInput{ChallengeID: ch, StudentID: student})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, SubmitInput{ChallengeID: ch, StudentID: student})
	require.NoError(t, err)
	_, err = svc.Review(ctx, a.SubmissionID, ReviewInput{Status: model.SubmissionApproved})
	require.NoError(t, err)

	approved, err := svc.ListApproved(ctx, student)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, a.SubmissionID, approved[0].SubmissionID)

	all, err := svc.ListMine(ctx, student)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
