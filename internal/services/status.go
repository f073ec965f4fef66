package services

import (
	"time"

	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

// StatusService tracks the recruiter workflow stage per (job description,
// resume). Any stage may follow any other, and scoring operations never
// touch this store.
type StatusService interface {
	SetOne(jdID, resumeID uuid.UUID, stage models.CandidateStage, note string) error
	SetBulk(jdID uuid.UUID, resumeIDs []uuid.UUID, stage models.CandidateStage, note string) error
	GetAll(jdID uuid.UUID) (*models.StatusListResponse, error)
}

type statusService struct {
	statusRepo repositories.CandidateStatusRepository
	resumeRepo repositories.ResumeRepository
	jdRepo     repositories.JobDescriptionRepository
}

func NewStatusService(
	statusRepo repositories.CandidateStatusRepository,
	resumeRepo repositories.ResumeRepository,
	jdRepo repositories.JobDescriptionRepository,
) StatusService {
	return &statusService{
		statusRepo: statusRepo,
		resumeRepo: resumeRepo,
		jdRepo:     jdRepo,
	}
}

// SetOne implements StatusService.
func (s *statusService) SetOne(jdID, resumeID uuid.UUID, stage models.CandidateStage, note string) error {
	if !stage.IsValid() {
		return NewValidationError("invalid candidate status: %s", stage)
	}
	if _, err := s.jdRepo.FindByID(jdID); err != nil {
		return err
	}
	if _, err := s.resumeRepo.FindByID(resumeID); err != nil {
		return err
	}

	return s.statusRepo.Upsert(&models.CandidateStatus{
		JDID:      jdID,
		ResumeID:  resumeID,
		Status:    stage,
		Note:      note,
		UpdatedAt: time.Now(),
	})
}

// SetBulk implements StatusService. The underlying write is transactional:
// a failure on any id rolls back the whole batch rather than silently
// skipping it.
func (s *statusService) SetBulk(jdID uuid.UUID, resumeIDs []uuid.UUID, stage models.CandidateStage, note string) error {
	if len(resumeIDs) == 0 {
		return NewValidationError("resume_ids must not be empty")
	}
	if !stage.IsValid() {
		return NewValidationError("invalid candidate status: %s", stage)
	}
	if _, err := s.jdRepo.FindByID(jdID); err != nil {
		return err
	}

	now := time.Now()
	statuses := make([]models.CandidateStatus, 0, len(resumeIDs))
	for _, resumeID := range resumeIDs {
		statuses = append(statuses, models.CandidateStatus{
			JDID:      jdID,
			ResumeID:  resumeID,
			Status:    stage,
			Note:      note,
			UpdatedAt: now,
		})
	}

	return s.statusRepo.UpsertBulk(statuses)
}

// GetAll implements StatusService. Every resume appears in the response;
// pairs without a stored record read back as New.
func (s *statusService) GetAll(jdID uuid.UUID) (*models.StatusListResponse, error) {
	if _, err := s.jdRepo.FindByID(jdID); err != nil {
		return nil, err
	}

	resumes, err := s.resumeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stored, err := s.statusRepo.FindByJD(jdID)
	if err != nil {
		return nil, err
	}

	records := make([]models.StatusRecord, 0, len(resumes))
	for _, resume := range resumes {
		if status, ok := stored[resume.ID]; ok {
			at := status.UpdatedAt
			records = append(records, models.StatusRecord{
				ResumeID:  resume.ID,
				Status:    status.Status,
				Note:      status.Note,
				UpdatedAt: &at,
			})
			continue
		}
		records = append(records, models.StatusRecord{
			ResumeID: resume.ID,
			Status:   models.StageNew,
		})
	}

	return &models.StatusListResponse{JDID: jdID, Statuses: records}, nil
}
