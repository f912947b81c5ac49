package dto

import (
	"time"

	"github.com/google/uuid"

	challengeModel "africrea_backend/internals/features/challenges/challenges/model"
	"africrea_backend/internals/features/challenges/submissions/model"
	userModel "africrea_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type SubmitRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required,uuid"`
	FileURL     string `json:"file_url"     validate:"max=500"`
	Description string `json:"description"  validate:"max=5000"`
}

// ReviewRequest: status is checked by the service so a bad value answers 400.
type ReviewRequest struct {
	Status   string `json:"status"   validate:"required"`
	Grade    *int   `json:"grade"`
	Feedback string `json:"feedback" validate:"max=5000"`
}

/* ===================== RESPONSES ===================== */

type ChallengeBrief struct {
	ID          uuid.UUID                 `json:"challenge_id"`
	Title       string                    `json:"challenge_title"`
	Description string                    `json:"challenge_description"`
	Pole        string                    `json:"challenge_pole"`
	Difficulty  challengeModel.Difficulty `json:"challenge_difficulty"`
	Deadline    *time.Time                `json:"challenge_deadline"`
	Thumbnail   *string                   `json:"challenge_thumbnail,omitempty"`
}

func BriefOf(ch *challengeModel.ChallengeModel) *ChallengeBrief {
	if ch == nil {
		return nil
	}
	return &ChallengeBrief{
		ID:          ch.ChallengeID,
		Title:       ch.ChallengeTitle,
		Description: ch.ChallengeDescription,
		Pole:        ch.ChallengePole,
		Difficulty:  ch.ChallengeDifficulty,
		Deadline:    ch.ChallengeDeadline,
		Thumbnail:   ch.ChallengeThumbnail,
	}
}

type FeedbackResponse struct {
	ID        uuid.UUID            `json:"feedback_id"`
	Content   string               `json:"feedback_content"`
	CreatedAt time.Time            `json:"feedback_created_at"`
	Author    *userModel.UserBrief `json:"author,omitempty"`
}

type SubmissionResponse struct {
	ID          uuid.UUID              `json:"submission_id"`
	ChallengeID uuid.UUID              `json:"submission_challenge_id"`
	StudentID   uuid.UUID              `json:"submission_student_id"`
	FileURL     string                 `json:"submission_file_url"`
	Description string                 `json:"submission_description"`
	Status      model.SubmissionStatus `json:"submission_status"`
	Grade       *int                   `json:"submission_grade"`
	ReviewedAt  *time.Time             `json:"submission_reviewed_at,omitempty"`
	CreatedAt   time.Time              `json:"submission_created_at"`

	Challenge *ChallengeBrief      `json:"challenge,omitempty"`
	Student   *userModel.UserBrief `json:"student,omitempty"`
	Feedbacks []FeedbackResponse   `json:"feedbacks"`
}

func FromModel(m *model.SubmissionModel) SubmissionResponse {
	resp := SubmissionResponse{
		ID:          m.SubmissionID,
		ChallengeID: m.SubmissionChallengeID,
		StudentID:   m.SubmissionStudentID,
		FileURL:     m.SubmissionFileURL,
		Description: m.SubmissionDescription,
		Status:      m.SubmissionStatus,
		Grade:       m.SubmissionGrade,
		ReviewedAt:  m.SubmissionReviewedAt,
		CreatedAt:   m.SubmissionCreatedAt,
		Challenge:   BriefOf(m.Challenge),
		Feedbacks:   make([]FeedbackResponse, 0, len(m.Feedbacks)),
	}
	if m.Student != nil {
		b := m.Student.Brief()
		resp.Student = &b
	}
	for _, f := range m.Feedbacks {
		fr := FeedbackResponse{ID: f.FeedbackID, Content: f.FeedbackContent, CreatedAt: f.FeedbackCreatedAt}
		if f.Author != nil {
			b := f.Author.Brief()
			fr.Author = &b
		}
		resp.Feedbacks = append(resp.Feedbacks, fr)
	}
	return resp
}

func FromModels(rows []model.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
