package model

import (
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
	DifficultyExpert       Difficulty = "EXPERT"
)

type ChallengeModel struct {
	ChallengeID          uuid.UUID  `gorm:"column:challenge_id;type:uuid;default:gen_random_uuid();primaryKey" json:"challenge_id"`
	ChallengeTitle       string     `gorm:"column:challenge_title;type:varchar(255);not null"                  json:"challenge_title"`
	ChallengeDescription string     `gorm:"column:challenge_description;type:text;not null"                    json:"challenge_description"`
	ChallengeBrief       string     `gorm:"column:challenge_brief;type:text;not null;default:''"               json:"challenge_brief"`
	ChallengePole        string     `gorm:"column:challenge_pole;type:varchar(20);not null;index"              json:"challenge_pole"`
	ChallengeDifficulty  Difficulty `gorm:"column:challenge_difficulty;type:varchar(20);not null"              json:"challenge_difficulty"`
	ChallengeDeadline    *time.Time `gorm:"column:challenge_deadline;type:timestamptz;index"                   json:"challenge_deadline"`
	ChallengeThumbnail   *string    `gorm:"column:challenge_thumbnail;type:varchar(255)"                       json:"challenge_thumbnail,omitempty"`

	ChallengeCreatedBy uuid.UUID `gorm:"column:challenge_created_by;type:uuid;not null;index"      json:"challenge_created_by"`
	ChallengeCreatedAt time.Time `gorm:"column:challenge_created_at;type:timestamptz;autoCreateTime" json:"challenge_created_at"`
	ChallengeUpdatedAt time.Time `gorm:"column:challenge_updated_at;type:timestamptz;autoUpdateTime" json:"challenge_updated_at"`

	Creator *userModel.UserModel `gorm:"foreignKey:ChallengeCreatedBy;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (ChallengeModel) TableName() string {
	return "challenges"
}

// Closed reports whether the deadline has passed at now. No deadline never closes.
func (c ChallengeModel) Closed(now time.Time) bool {
	return c.ChallengeDeadline != nil && c.ChallengeDeadline.Before(now)
}
