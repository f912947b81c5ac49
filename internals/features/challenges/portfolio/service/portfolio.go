package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	"africrea_backend/internals/features/challenges/submissions/model"
)

type Item struct {
	ID          uuid.UUID `json:"id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	Grade       *int      `json:"grade"`
	FileURL     string    `json:"file_url"`
	Feedback    *string   `json:"feedback"`
	CreatedAt   time.Time `json:"created_at"`
}

type Stats struct {
	TotalProjects int `json:"total_projects"`
	AverageGrade  int `json:"average_grade"`
}

type Portfolio struct {
	Items []Item `json:"items"`
	Stats Stats  `json:"stats"`
}

// Build turns approved submissions (feedbacks newest first) into portfolio
// items. Ungraded items count as 0 in the average.
func Build(rows []model.SubmissionModel) Portfolio {
	items := make([]Item, 0, len(rows))
	sum := 0
	for _, s := range rows {
		it := Item{
			ID:          s.SubmissionID,
			ChallengeID: s.SubmissionChallengeID,
			Description: s.SubmissionDescription,
			Grade:       s.SubmissionGrade,
			FileURL:     s.SubmissionFileURL,
			CreatedAt:   s.SubmissionCreatedAt,
		}
		if ch := s.Challenge; ch != nil {
			it.Title = ch.ChallengeTitle
			it.Category = ch.ChallengePole
			it.Thumbnail = ch.ChallengeThumbnail
			if it.Description == "" {
				it.Description = ch.ChallengeDescription
			}
		}
		if len(s.Feedbacks) > 0 {
			fb := s.Feedbacks[0].FeedbackContent
			it.Feedback = &fb
		}
		if s.SubmissionGrade != nil {
			sum += *s.SubmissionGrade
		}
		items = append(items, it)
	}

	stats := Stats{TotalProjects: len(items)}
	if len(items) > 0 {
		stats.AverageGrade = int(math.Round(float64(sum) / float64(len(items))))
	}
	return Portfolio{Items: items, Stats: stats}
}
