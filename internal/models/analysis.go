package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisTier string

const (
	TierPreliminary AnalysisTier = "preliminary"
	TierVerified    AnalysisTier = "verified"
)

type MatchRating string

const (
	RatingPreliminary MatchRating = "Preliminary"
	RatingWeak        MatchRating = "Weak"
	RatingGood        MatchRating = "Good"
	RatingStrong      MatchRating = "Strong"
)

// Analysis is the cached scoring result for one (job description, resume)
// pair. Preliminary entries come from the heuristic scorer; verified entries
// come from the oracle and additionally carry a rationale and similarity.
type Analysis struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	JDID          uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_analyses_jd_resume" json:"jd_id"`
	ResumeID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_analyses_jd_resume" json:"resume_id"`
	Score         float64      `gorm:"type:decimal(5,2)" json:"score"`
	MatchRating   MatchRating  `gorm:"type:text;not null" json:"match_rating"`
	Tier          AnalysisTier `gorm:"type:text;not null" json:"tier"`
	MatchedSkills []string     `gorm:"type:jsonb;serializer:json" json:"matched_skills"`
	MissingSkills []string     `gorm:"type:jsonb;serializer:json" json:"missing_skills"`
	Rationale     string       `gorm:"type:text" json:"rationale,omitempty"`
	Similarity    *float64     `gorm:"type:decimal(5,4)" json:"similarity,omitempty"`
	AnalyzedAt    time.Time    `gorm:"type:timestamp" json:"analyzed_at"`
}

func (a *Analysis) TableName() string {
	return "analyses"
}

// Supersedes reports whether the incoming analysis may replace the existing
// cached entry. A verified result always wins; a preliminary result never
// displaces a verified one unless force is set; between two preliminary
// results the latest recompute wins.
func (incoming *Analysis) Supersedes(existing *Analysis, force bool) bool {
	if existing == nil {
		return true
	}
	if incoming.Tier == TierVerified {
		return true
	}
	if existing.Tier == TierVerified {
		return force
	}
	return true
}
