package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"africrea_backend/internals/features/challenges/challenges/model"
	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/helpers/dbtime"
)

type CreateChallengeRequest struct {
	Title       string  `json:"challenge_title"       validate:"required,max=255"`
	Description string  `json:"challenge_description" validate:"required"`
	Brief       *string `json:"challenge_brief"`
	Pole        string  `json:"challenge_pole"        validate:"required,oneof=GRAPHISME AUDIOVISUEL ANIMATION_3D"`
	Difficulty  string  `json:"challenge_difficulty"  validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	Deadline    *string `json:"challenge_deadline"`
	Thumbnail   *string `json:"challenge_thumbnail"   validate:"omitempty,max=255"`
}

func (r *CreateChallengeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Pole = strings.ToUpper(strings.TrimSpace(r.Pole))
	r.Difficulty = strings.ToUpper(strings.TrimSpace(r.Difficulty))
}

// ToModel fills the defaults: brief falls back to the description and the
// deadline to now + defaultDays.
func (r CreateChallengeRequest) ToModel(createdBy uuid.UUID, now time.Time, defaultDays int) (*model.ChallengeModel, map[string][]string) {
	deadline := now.Add(time.Duration(defaultDays) * 24 * time.Hour)
	if r.Deadline != nil && strings.TrimSpace(*r.Deadline) != "" {
		t, err := dbtime.ParseTimestamp(*r.Deadline)
		if err != nil {
			return nil, map[string][]string{"challenge_deadline": {"must be an RFC3339 timestamp or a date"}}
		}
		deadline = t
	}

	brief := r.Description
	if r.Brief != nil && strings.TrimSpace(*r.Brief) != "" {
		brief = strings.TrimSpace(*r.Brief)
	}

	var thumb *string
	if r.Thumbnail != nil && strings.TrimSpace(*r.Thumbnail) != "" {
		t := strings.TrimSpace(*r.Thumbnail)
		thumb = &t
	}

	return &model.ChallengeModel{
		ChallengeID:          uuid.New(),
		ChallengeTitle:       r.Title,
		ChallengeDescription: r.Description,
		ChallengeBrief:       brief,
		ChallengePole:        r.Pole,
		ChallengeDifficulty:  model.Difficulty(r.Difficulty),
		ChallengeDeadline:    &deadline,
		ChallengeThumbnail:   thumb,
		ChallengeCreatedBy:   createdBy,
	}, nil
}

// Counts per challenge, filled from submissions.
type Counts struct {
	ChallengeID uuid.UUID `gorm:"column:challenge_id"`
	Total       int64     `gorm:"column:total"`
	Pending     int64     `gorm:"column:pending"`
	Approved    int64     `gorm:"column:approved"`
}

type ChallengeResponse struct {
	ID          uuid.UUID            `json:"challenge_id"`
	Title       string               `json:"challenge_title"`
	Description string               `json:"challenge_description"`
	Brief       string               `json:"challenge_brief"`
	Pole        string               `json:"challenge_pole"`
	Difficulty  model.Difficulty     `json:"challenge_difficulty"`
	Deadline    *time.Time           `json:"challenge_deadline"`
	Thumbnail   *string              `json:"challenge_thumbnail,omitempty"`
	CreatedAt   time.Time            `json:"challenge_created_at"`
	Creator     *userModel.UserBrief `json:"creator,omitempty"`

	SubmissionsCount int64 `json:"submissions_count"`
	PendingCount     int64 `json:"pending_count"`
	ApprovedCount    int64 `json:"approved_count"`
}

func FromModel(m *model.ChallengeModel, c Counts) ChallengeResponse {
	resp := ChallengeResponse{
		ID:               m.ChallengeID,
		Title:            m.ChallengeTitle,
		Description:      m.ChallengeDescription,
		Brief:            m.ChallengeBrief,
		Pole:             m.ChallengePole,
		Difficulty:       m.ChallengeDifficulty,
		Deadline:         m.ChallengeDeadline,
		Thumbnail:        m.ChallengeThumbnail,
		CreatedAt:        m.ChallengeCreatedAt,
		SubmissionsCount: c.Total,
		PendingCount:     c.Pending,
		ApprovedCount:    c.Approved,
	}
	if m.Creator != nil {
		b := m.Creator.Brief()
		resp.Creator = &b
	}
	return resp
}
