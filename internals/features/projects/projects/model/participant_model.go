package model

import (
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
)

type ParticipantRole string

const (
	ParticipantRoleParticipant ParticipantRole = "PARTICIPANT"
	ParticipantRoleLead        ParticipantRole = "LEAD"
)

type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantRejected ParticipantStatus = "REJECTED"
)

func (s ParticipantStatus) Decision() bool {
	return s == ParticipantAccepted || s == ParticipantRejected
}

type ParticipantModel struct {
	ParticipantID        uuid.UUID         `gorm:"column:participant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"participant_id"`
	ParticipantProjectID uuid.UUID         `gorm:"column:participant_project_id;type:uuid;not null;uniqueIndex:ux_project_participants_project_user" json:"participant_project_id"`
	ParticipantUserID    uuid.UUID         `gorm:"column:participant_user_id;type:uuid;not null;uniqueIndex:ux_project_participants_project_user;index" json:"participant_user_id"`
	ParticipantRole      ParticipantRole   `gorm:"column:participant_role;type:varchar(20);not null;default:'PARTICIPANT'" json:"participant_role"`
	ParticipantStatus    ParticipantStatus `gorm:"column:participant_status;type:varchar(20);not null;default:'PENDING'"   json:"participant_status"`
	ParticipantMessage   string            `gorm:"column:participant_message;type:text;not null;default:''"               json:"participant_message"`
	ParticipantCreatedAt time.Time         `gorm:"column:participant_created_at;type:timestamptz;autoCreateTime"          json:"participant_created_at"`
	ParticipantUpdatedAt time.Time         `gorm:"column:participant_updated_at;type:timestamptz;autoUpdateTime"          json:"participant_updated_at"`

	Project *ProjectModel        `gorm:"foreignKey:ParticipantProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	User    *userModel.UserModel `gorm:"foreignKey:ParticipantUserID;references:ID;constraint:OnDelete:CASCADE"           json:"-"`
}

func (ParticipantModel) TableName() string {
	return "project_participants"
}
