package models

import (
	"time"

	"github.com/google/uuid"
)

type JobDescription struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string    `gorm:"type:text;index" json:"title"`
	Text             string    `gorm:"type:text" json:"text,omitempty"`
	RequiredSkills   []string  `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	NiceToHaveSkills []string  `gorm:"type:jsonb;serializer:json" json:"nice_to_have_skills"`
	Embedding        []float32 `gorm:"type:jsonb;serializer:json" json:"-"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (jd *JobDescription) TableName() string {
	return "job_descriptions"
}
