package model

import (
	"time"

	"github.com/google/uuid"

	userModel "africrea_backend/internals/features/users/user/model"
)

type VideoCategory string

const (
	VideoFilmAnalysis VideoCategory = "FILM_ANALYSIS"
	VideoTechnique    VideoCategory = "TECHNIQUE"
	VideoTutorial     VideoCategory = "TUTORIAL"
)

type VideoModel struct {
	VideoID            uuid.UUID     `gorm:"column:video_id;type:uuid;default:gen_random_uuid();primaryKey" json:"video_id"`
	VideoTitle         string        `gorm:"column:video_title;type:varchar(255);not null"                  json:"video_title"`
	VideoDescription   string        `gorm:"column:video_description;type:text;not null"                    json:"video_description"`
	VideoURL           string        `gorm:"column:video_url;type:varchar(500);not null"                    json:"video_url"`
	VideoThumbnail     *string       `gorm:"column:video_thumbnail;type:varchar(255)"                       json:"video_thumbnail,omitempty"`
	VideoDuration      *int          `gorm:"column:video_duration"                                          json:"video_duration"`
	VideoCategory      VideoCategory `gorm:"column:video_category;type:varchar(20);not null;index"          json:"video_category"`
	VideoAnalysisGuide *string       `gorm:"column:video_analysis_guide;type:text"                          json:"video_analysis_guide,omitempty"`
	VideoPole          *string       `gorm:"column:video_pole;type:varchar(20);index"                       json:"video_pole,omitempty"`

	VideoUploadedBy uuid.UUID `gorm:"column:video_uploaded_by;type:uuid;not null;index"       json:"video_uploaded_by"`
	VideoCreatedAt  time.Time `gorm:"column:video_created_at;type:timestamptz;autoCreateTime" json:"video_created_at"`
	VideoUpdatedAt  time.Time `gorm:"column:video_updated_at;type:timestamptz;autoUpdateTime" json:"video_updated_at"`

	Uploader *userModel.UserModel `gorm:"foreignKey:VideoUploadedBy;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (VideoModel) TableName() string {
	return "videos"
}
