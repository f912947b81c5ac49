package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"africrea_backend/internals/features/projects/projects/model"
	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/helpers/dbtime"
)

type CreateProjectRequest struct {
	Title           string   `json:"project_title"            validate:"required,max=255"`
	Description     string   `json:"project_description"      validate:"required"`
	Type            string   `json:"project_type"             validate:"required,oneof=COMMERCIAL FILM_SHOOTING"`
	StartDate       string   `json:"project_start_date"       validate:"required"`
	EndDate         *string  `json:"project_end_date"`
	Location        *string  `json:"project_location"         validate:"omitempty,max=255"`
	Thumbnail       *string  `json:"project_thumbnail"        validate:"omitempty,max=255"`
	MaxParticipants *int     `json:"project_max_participants" validate:"omitempty,gte=1"`
	Requirements    []string `json:"project_requirements"     validate:"omitempty,dive,max=255"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

// ToModel parses the dates and drops blank requirement lines.
func (r CreateProjectRequest) ToModel(createdBy uuid.UUID) (*model.ProjectModel, map[string][]string) {
	errs := map[string][]string{}
	start, err := dbtime.ParseTimestamp(r.StartDate)
	if err != nil {
		errs["project_start_date"] = append(errs["project_start_date"], "must be an RFC3339 timestamp or a date")
	}
	var end *time.Time
	if r.EndDate != nil && strings.TrimSpace(*r.EndDate) != "" {
		t, err := dbtime.ParseTimestamp(*r.EndDate)
		switch {
		case err != nil:
			errs["project_end_date"] = append(errs["project_end_date"], "must be an RFC3339 timestamp or a date")
		case t.Before(start):
			errs["project_end_date"] = append(errs["project_end_date"], "must not precede project_start_date")
		default:
			end = &t
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	reqs := make([]string, 0, len(r.Requirements))
	for _, s := range r.Requirements {
		if s = strings.TrimSpace(s); s != "" {
			reqs = append(reqs, s)
		}
	}

	return &model.ProjectModel{
		ProjectID:              uuid.New(),
		ProjectTitle:           r.Title,
		ProjectDescription:     r.Description,
		ProjectType:            model.ProjectType(r.Type),
		ProjectStatus:          model.ProjectUpcoming,
		ProjectStartDate:       start,
		ProjectEndDate:         end,
		ProjectLocation:        r.Location,
		ProjectThumbnail:       r.Thumbnail,
		ProjectMaxParticipants: r.MaxParticipants,
		ProjectRequirements:    datatypes.NewJSONSlice(reqs),
		ProjectCreatedBy:       createdBy,
	}, nil
}

type ApplyRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Message   string `json:"message"    validate:"max=2000"`
}

type DecisionRequest struct {
	Status string `json:"status" validate:"required"`
}

type ParticipantResponse struct {
	ID        uuid.UUID               `json:"participant_id"`
	ProjectID uuid.UUID               `json:"participant_project_id"`
	UserID    uuid.UUID               `json:"participant_user_id"`
	Role      model.ParticipantRole   `json:"participant_role"`
	Status    model.ParticipantStatus `json:"participant_status"`
	Message   string                  `json:"participant_message"`
	CreatedAt time.Time               `json:"participant_created_at"`
	User      *userModel.UserBrief    `json:"user,omitempty"`
}

func ParticipantFromModel(p *model.ParticipantModel) ParticipantResponse {
	resp := ParticipantResponse{
		ID:        p.ParticipantID,
		ProjectID: p.ParticipantProjectID,
		UserID:    p.ParticipantUserID,
		Role:      p.ParticipantRole,
		Status:    p.ParticipantStatus,
		Message:   p.ParticipantMessage,
		CreatedAt: p.ParticipantCreatedAt,
	}
	if p.User != nil {
		b := p.User.Brief()
		resp.User = &b
	}
	return resp
}

type ProjectResponse struct {
	ID              uuid.UUID             `json:"project_id"`
	Title           string                `json:"project_title"`
	Description     string                `json:"project_description"`
	Type            model.ProjectType     `json:"project_type"`
	Status          model.ProjectStatus   `json:"project_status"`
	StartDate       time.Time             `json:"project_start_date"`
	EndDate         *time.Time            `json:"project_end_date,omitempty"`
	Location        *string               `json:"project_location,omitempty"`
	Thumbnail       *string               `json:"project_thumbnail,omitempty"`
	MaxParticipants *int                  `json:"project_max_participants"`
	Requirements    []string              `json:"project_requirements"`
	CreatedAt       time.Time             `json:"project_created_at"`
	Creator         *userModel.UserBrief  `json:"creator,omitempty"`
	Participants    []ParticipantResponse `json:"participants"`
}

func FromModel(m *model.ProjectModel) ProjectResponse {
	reqs := []string(m.ProjectRequirements)
	if reqs == nil {
		reqs = []string{}
	}
	resp := ProjectResponse{
		ID:              m.ProjectID,
		Title:           m.ProjectTitle,
		Description:     m.ProjectDescription,
		Type:            m.ProjectType,
		Status:          m.ProjectStatus,
		StartDate:       m.ProjectStartDate,
		EndDate:         m.ProjectEndDate,
		Location:        m.ProjectLocation,
		Thumbnail:       m.ProjectThumbnail,
		MaxParticipants: m.ProjectMaxParticipants,
		Requirements:    reqs,
		CreatedAt:       m.ProjectCreatedAt,
		Participants:    make([]ParticipantResponse, 0, len(m.Participants)),
	}
	if m.Creator != nil {
		b := m.Creator.Brief()
		resp.Creator = &b
	}
	for i := range m.Participants {
		resp.Participants = append(resp.Participants, ParticipantFromModel(&m.Participants[i]))
	}
	return resp
}
