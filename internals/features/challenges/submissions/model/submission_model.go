package model

import (
	"time"

	"github.com/google/uuid"

	challengeModel "africrea_backend/internals/features/challenges/challenges/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "PENDING"
	SubmissionApproved SubmissionStatus = "APPROVED"
	SubmissionRejected SubmissionStatus = "REJECTED"
)

const PlaceholderFileURL = "/uploads/placeholder.zip"

const (
	MinGrade = 0
	MaxGrade = 100
)

type SubmissionModel struct {
	SubmissionID          uuid.UUID        `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`
	SubmissionChallengeID uuid.UUID        `gorm:"column:submission_challenge_id;type:uuid;not null;index"              json:"submission_challenge_id"`
	SubmissionStudentID   uuid.UUID        `gorm:"column:submission_student_id;type:uuid;not null;index"                json:"submission_student_id"`
	SubmissionFileURL     string           `gorm:"column:submission_file_url;type:varchar(500);not null"                json:"submission_file_url"`
	SubmissionDescription string           `gorm:"column:submission_description;type:text;not null;default:''"          json:"submission_description"`
	SubmissionStatus      SubmissionStatus `gorm:"column:submission_status;type:varchar(20);not null;default:'PENDING';index" json:"submission_status"`
	SubmissionGrade       *int             `gorm:"column:submission_grade"                                              json:"submission_grade"`
	SubmissionReviewedAt  *time.Time       `gorm:"column:submission_reviewed_at;type:timestamptz"                      json:"submission_reviewed_at,omitempty"`
	SubmissionCreatedAt   time.Time        `gorm:"column:submission_created_at;type:timestamptz;autoCreateTime"         json:"submission_created_at"`
	SubmissionUpdatedAt   time.Time        `gorm:"column:submission_updated_at;type:timestamptz;autoUpdateTime"         json:"submission_updated_at"`

	Challenge *challengeModel.ChallengeModel `gorm:"foreignKey:SubmissionChallengeID;references:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
	Student   *userModel.UserModel           `gorm:"foreignKey:SubmissionStudentID;references:ID;constraint:OnDelete:CASCADE"            json:"-"`
	Feedbacks []FeedbackModel                `gorm:"foreignKey:FeedbackSubmissionID;references:SubmissionID"                             json:"-"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}

// Reviewable reports whether s is a decision a reviewer may record.
func (s SubmissionStatus) Reviewable() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

func (s SubmissionStatus) Valid() bool {
	return s == SubmissionPending || s.Reviewable()
}

func ValidGrade(g int) bool {
	return g >= MinGrade && g <= MaxGrade
}
