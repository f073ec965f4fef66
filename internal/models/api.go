package models

import (
	"time"

	"github.com/google/uuid"
)

type BulkUploadResponse struct {
	JobID      string   `json:"job_id"`
	Message    string   `json:"message"`
	Duplicates []string `json:"duplicates"`
}

type BulkJobStatusResponse struct {
	JobID    string       `json:"job_id"`
	Status   BulkJobState `json:"status"`
	Progress int          `json:"progress"`
	Total    int          `json:"total"`
	Files    []FileResult `json:"files,omitempty"`
}

// CandidateMatch is one row of the ranked roster: a resume summary merged
// with its current analysis (cached or heuristic-on-the-fly).
type CandidateMatch struct {
	ResumeID      uuid.UUID    `json:"resume_id"`
	CandidateName string       `json:"candidate_name"`
	Score         float64      `json:"score"`
	MatchRating   MatchRating  `json:"match_rating"`
	Tier          AnalysisTier `json:"tier"`
	MatchedSkills []string     `json:"matched_skills"`
	MissingSkills []string     `json:"missing_skills"`
	Rationale     string       `json:"rationale,omitempty"`
	Similarity    *float64     `json:"similarity,omitempty"`
	AnalyzedAt    *time.Time   `json:"analyzed_at,omitempty"`
	ResumeExcerpt string       `json:"resume_excerpt"`
}

type BulkStatusUpdateRequest struct {
	JDID      uuid.UUID      `json:"jd_id"`
	ResumeIDs []uuid.UUID    `json:"resume_ids"`
	Status    CandidateStage `json:"status"`
	Note      string         `json:"note,omitempty"`
}

type StatusRecord struct {
	ResumeID  uuid.UUID      `json:"resume_id"`
	Status    CandidateStage `json:"status"`
	Note      string         `json:"note,omitempty"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type StatusListResponse struct {
	JDID     uuid.UUID      `json:"jd_id"`
	Statuses []StatusRecord `json:"statuses"`
}

// AnalysisProgress summarizes how many resumes for a job description carry a
// verified entry versus a heuristic-only one.
type AnalysisProgress struct {
	JDID           uuid.UUID `json:"jd_id"`
	TotalResumes   int       `json:"total_resumes"`
	Verified       int       `json:"verified"`
	Preliminary    int       `json:"preliminary"`
	VerifiedPct    float64   `json:"verified_pct"`
	PreliminaryPct float64   `json:"preliminary_pct"`
}
