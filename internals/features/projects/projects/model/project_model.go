package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "africrea_backend/internals/features/users/user/model"
)

type ProjectType string

const (
	ProjectCommercial   ProjectType = "COMMERCIAL"
	ProjectFilmShooting ProjectType = "FILM_SHOOTING"
)

type ProjectStatus string

const (
	ProjectUpcoming   ProjectStatus = "UPCOMING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

type ProjectModel struct {
	ProjectID           uuid.UUID                   `gorm:"column:project_id;type:uuid;default:gen_random_uuid();primaryKey" json:"project_id"`
	ProjectTitle        string                      `gorm:"column:project_title;type:varchar(255);not null"                  json:"project_title"`
	ProjectDescription  string                      `gorm:"column:project_description;type:text;not null"                    json:"project_description"`
	ProjectType         ProjectType                 `gorm:"column:project_type;type:varchar(20);not null"                    json:"project_type"`
	ProjectStatus       ProjectStatus               `gorm:"column:project_status;type:varchar(20);not null;default:'UPCOMING'" json:"project_status"`
	ProjectStartDate    time.Time                   `gorm:"column:project_start_date;type:timestamptz;not null"              json:"project_start_date"`
	ProjectEndDate      *time.Time                  `gorm:"column:project_end_date;type:timestamptz"                         json:"project_end_date,omitempty"`
	ProjectLocation     *string                     `gorm:"column:project_location;type:varchar(255)"                        json:"project_location,omitempty"`
	ProjectThumbnail    *string                     `gorm:"column:project_thumbnail;type:varchar(255)"                       json:"project_thumbnail,omitempty"`
	ProjectRequirements datatypes.JSONSlice[string] `gorm:"column:project_requirements;type:jsonb;not null;default:'[]'"  json:"project_requirements"`

	// nil = unlimited
	ProjectMaxParticipants *int `gorm:"column:project_max_participants" json:"project_max_participants"`

	ProjectCreatedBy uuid.UUID `gorm:"column:project_created_by;type:uuid;not null;index"      json:"project_created_by"`
	ProjectCreatedAt time.Time `gorm:"column:project_created_at;type:timestamptz;autoCreateTime" json:"project_created_at"`
	ProjectUpdatedAt time.Time `gorm:"column:project_updated_at;type:timestamptz;autoUpdateTime" json:"project_updated_at"`

	Creator      *userModel.UserModel `gorm:"foreignKey:ProjectCreatedBy;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Participants []ParticipantModel   `gorm:"foreignKey:ParticipantProjectID;references:ProjectID"                  json:"-"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

// HasRoom reports whether one more ACCEPTED participant fits.
func (p ProjectModel) HasRoom(accepted int64) bool {
	return p.ProjectMaxParticipants == nil || accepted < int64(*p.ProjectMaxParticipants)
}
