package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName    string            `gorm:"type:text;index" json:"candidate_name"`
	Text             string            `gorm:"type:text" json:"-"`
	Skills           []string          `gorm:"type:jsonb;serializer:json" json:"skills"`
	Experience       []ExperienceEntry `gorm:"type:jsonb;serializer:json" json:"experience"`
	Email            string            `gorm:"type:text" json:"email"`
	Phone            string            `gorm:"type:text" json:"phone"`
	Embedding        []float32         `gorm:"type:jsonb;serializer:json" json:"-"`
	ContentHash      string            `gorm:"type:text;uniqueIndex" json:"-"`
	Filename         string            `gorm:"type:text" json:"-"`
	OriginalFileName string            `gorm:"type:text" json:"original_filename"`
	CreatedAt        time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

type ExperienceEntry struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

// Excerpt returns the leading slice of the resume text shown in listings.
func (r *Resume) Excerpt(n int) string {
	runes := []rune(r.Text)
	if len(runes) <= n {
		return r.Text
	}
	return string(runes[:n])
}
