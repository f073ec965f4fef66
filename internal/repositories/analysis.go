package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruitkit/resume-matcher/internal/models"
)

// AnalysisRepository persists cached analysis entries keyed by
// (job description, resume). Merge semantics live in the cache service;
// this layer only stores and loads.
type AnalysisRepository interface {
	Save(analysis *models.Analysis) error
	Find(jdID, resumeID uuid.UUID) (*models.Analysis, error)
	FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.Analysis, error)
	DeleteAll() error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save implements AnalysisRepository. Upserts on the (jd_id, resume_id) key.
func (r *analysisRepository) Save(analysis *models.Analysis) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "jd_id"}, {Name: "resume_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "match_rating", "tier", "matched_skills",
			"missing_skills", "rationale", "similarity", "analyzed_at",
		}),
	}).Create(analysis).Error
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// Find implements AnalysisRepository.
func (r *analysisRepository) Find(jdID, resumeID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.Where("jd_id = ? AND resume_id = ?", jdID, resumeID).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis for jd %s resume %s: %w", jdID, resumeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// FindByJD implements AnalysisRepository.
func (r *analysisRepository) FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.Analysis, error) {
	var analyses []models.Analysis
	if err := r.db.Where("jd_id = ?", jdID).Find(&analyses).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	byResume := make(map[uuid.UUID]models.Analysis, len(analyses))
	for _, a := range analyses {
		byResume[a.ResumeID] = a
	}
	return byResume, nil
}

// DeleteAll implements AnalysisRepository.
func (r *analysisRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.Analysis{}).Error; err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}
	return nil
}
