package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
	"africrea_backend/internals/features/videos/videos/model"
)

type CreateVideoRequest struct {
	Title         string  `json:"video_title"          validate:"required,max=255"`
	Description   string  `json:"video_description"    validate:"required"`
	URL           string  `json:"video_url"            validate:"required,url,max=500"`
	Thumbnail     *string `json:"video_thumbnail"      validate:"omitempty,max=255"`
	Duration      *int    `json:"video_duration"       validate:"omitempty,gte=0"`
	Category      string  `json:"video_category"       validate:"required,oneof=FILM_ANALYSIS TECHNIQUE TUTORIAL"`
	AnalysisGuide *string `json:"video_analysis_guide"`
	Pole          *string `json:"video_pole"           validate:"omitempty,oneof=GRAPHISME AUDIOVISUEL ANIMATION_3D"`
}

func (r *CreateVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.URL = strings.TrimSpace(r.URL)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if r.Pole != nil {
		p := strings.ToUpper(strings.TrimSpace(*r.Pole))
		if p == "" {
			r.Pole = nil
		} else {
			r.Pole = &p
		}
	}
}

func (r CreateVideoRequest) ToModel(uploadedBy uuid.UUID) *model.VideoModel {
	return &model.VideoModel{
		VideoID:            uuid.New(),
		VideoTitle:         r.Title,
		VideoDescription:   r.Description,
		VideoURL:           r.URL,
		VideoThumbnail:     r.Thumbnail,
		VideoDuration:      r.Duration,
		VideoCategory:      model.VideoCategory(r.Category),
		VideoAnalysisGuide: r.AnalysisGuide,
		VideoPole:          r.Pole,
		VideoUploadedBy:    uploadedBy,
	}
}

type VideoResponse struct {
	ID            uuid.UUID            `json:"video_id"`
	Title         string               `json:"video_title"`
	Description   string               `json:"video_description"`
	URL           string               `json:"video_url"`
	Thumbnail     *string              `json:"video_thumbnail,omitempty"`
	Duration      *int                 `json:"video_duration"`
	Category      model.VideoCategory  `json:"video_category"`
	AnalysisGuide *string              `json:"video_analysis_guide,omitempty"`
	Pole          *string              `json:"video_pole,omitempty"`
	CreatedAt     time.Time            `json:"video_created_at"`
	Uploader      *userModel.UserBrief `json:"uploaded_by,omitempty"`
}

func FromModel(m *model.VideoModel) VideoResponse {
	resp := VideoResponse{
		ID:            m.VideoID,
		Title:         m.VideoTitle,
		Description:   m.VideoDescription,
		URL:           m.VideoURL,
		Thumbnail:     m.VideoThumbnail,
		Duration:      m.VideoDuration,
		Category:      m.VideoCategory,
		AnalysisGuide: m.VideoAnalysisGuide,
		Pole:          m.VideoPole,
		CreatedAt:     m.VideoCreatedAt,
	}
	if m.Uploader != nil {
		b := m.Uploader.Brief()
		resp.Uploader = &b
	}
	return resp
}
