package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruitkit/resume-matcher/internal/models"
)

type CandidateStatusRepository interface {
	Upsert(status *models.CandidateStatus) error
	UpsertBulk(statuses []models.CandidateStatus) error
	FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.CandidateStatus, error)
	DeleteAll() error
}

type candidateStatusRepository struct {
	db *gorm.DB
}

func NewCandidateStatusRepository(db *gorm.DB) CandidateStatusRepository {
	return &candidateStatusRepository{db: db}
}

// Upsert implements CandidateStatusRepository.
func (r *candidateStatusRepository) Upsert(status *models.CandidateStatus) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "jd_id"}, {Name: "resume_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
	}).Create(status).Error
	if err != nil {
		return fmt.Errorf("failed to upsert candidate status: %w", err)
	}
	return nil
}

// UpsertBulk writes all statuses in one transaction so a failure on any id
// rolls the whole batch back instead of silently skipping it.
func (r *candidateStatusRepository) UpsertBulk(statuses []models.CandidateStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range statuses {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "jd_id"}, {Name: "resume_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
			}).Create(&statuses[i]).Error
			if err != nil {
				return fmt.Errorf("failed to upsert status for resume %s: %w", statuses[i].ResumeID, err)
			}
		}
		return nil
	})
}

// FindByJD implements CandidateStatusRepository.
func (r *candidateStatusRepository) FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.CandidateStatus, error) {
	var statuses []models.CandidateStatus
	if err := r.db.Where("jd_id = ?", jdID).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidate statuses: %w", err)
	}

	byResume := make(map[uuid.UUID]models.CandidateStatus, len(statuses))
	for _, s := range statuses {
		byResume[s.ResumeID] = s
	}
	return byResume, nil
}

// DeleteAll implements CandidateStatusRepository.
func (r *candidateStatusRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.CandidateStatus{}).Error; err != nil {
		return fmt.Errorf("failed to delete candidate statuses: %w", err)
	}
	return nil
}
