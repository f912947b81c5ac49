package model

import (
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
)

type FeedbackModel struct {
	FeedbackID           uuid.UUID `gorm:"column:feedback_id;type:uuid;default:gen_random_uuid();primaryKey" json:"feedback_id"`
	FeedbackSubmissionID uuid.UUID `gorm:"column:feedback_submission_id;type:uuid;not null;index"              json:"feedback_submission_id"`
	FeedbackAuthorID     uuid.UUID `gorm:"column:feedback_author_id;type:uuid;not null"                       json:"feedback_author_id"`
	FeedbackContent      string    `gorm:"column:feedback_content;type:text;not null"                          json:"feedback_content"`
	FeedbackCreatedAt    time.Time `gorm:"column:feedback_created_at;type:timestamptz;autoCreateTime"          json:"feedback_created_at"`

	Author *userModel.UserModel `gorm:"foreignKey:FeedbackAuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FeedbackModel) TableName() string {
	return "submission_feedbacks"
}
