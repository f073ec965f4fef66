package models

import (
	"time"

	"github.com/google/uuid"
)

type CandidateStage string

const (
	StageNew         CandidateStage = "New"
	StageReviewed    CandidateStage = "Reviewed"
	StageShortlisted CandidateStage = "Shortlisted"
	StageInterview   CandidateStage = "Interview"
	StageContacted   CandidateStage = "Contacted"
	StageRejected    CandidateStage = "Rejected"
)

// IsValid reports whether s is one of the recruiter workflow stages. Any
// stage may follow any other; there is no forward-only ordering.
func (s CandidateStage) IsValid() bool {
	switch s {
	case StageNew, StageReviewed, StageShortlisted, StageInterview, StageContacted, StageRejected:
		return true
	}
	return false
}

// CandidateStatus records the recruiter workflow stage for one (job
// description, resume) pair. Unset pairs read back as StageNew.
type CandidateStatus struct {
	JDID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"jd_id"`
	ResumeID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"resume_id"`
	Status    CandidateStage `gorm:"type:text;not null;default:'New'" json:"status"`
	Note      string         `gorm:"type:text" json:"note,omitempty"`
	UpdatedAt time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (s *CandidateStatus) TableName() string {
	return "candidate_statuses"
}
