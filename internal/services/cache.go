package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

// AnalysisCache is the authoritative store of scoring results per
// (job description, resume) pair. Writes for one key are serialized and go
// through the merge rule: a verified entry is only displaced by another
// verified entry, or by anything when force is set.
type AnalysisCache interface {
	Put(analysis *models.Analysis, force bool) (*models.Analysis, error)
	Get(jdID, resumeID uuid.UUID) (*models.Analysis, error)
	GetForJob(jdID uuid.UUID) (map[uuid.UUID]models.Analysis, error)
}

type analysisCache struct {
	repo  repositories.AnalysisRepository
	locks *keyedMutex
}

func NewAnalysisCache(repo repositories.AnalysisRepository) AnalysisCache {
	return &analysisCache{
		repo:  repo,
		locks: newKeyedMutex(),
	}
}

// Put implements AnalysisCache. Returns the entry that is cached after the
// merge: the incoming one when it wins, the existing one when it is kept.
func (c *analysisCache) Put(analysis *models.Analysis, force bool) (*models.Analysis, error) {
	unlock := c.locks.lock(analysis.JDID.String() + "/" + analysis.ResumeID.String())
	defer unlock()

	existing, err := c.repo.Find(analysis.JDID, analysis.ResumeID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to read cached analysis: %w", err)
	}

	if !analysis.Supersedes(existing, force) {
		return existing, nil
	}

	if analysis.AnalyzedAt.IsZero() {
		analysis.AnalyzedAt = time.Now().UTC()
	}
	if existing != nil {
		analysis.ID = existing.ID
	}

	if err := c.repo.Save(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// Get implements AnalysisCache. A missing entry means the pair has not been
// scored yet; that is reported as repositories.ErrNotFound.
func (c *analysisCache) Get(jdID, resumeID uuid.UUID) (*models.Analysis, error) {
	return c.repo.Find(jdID, resumeID)
}

// GetForJob implements AnalysisCache.
func (c *analysisCache) GetForJob(jdID uuid.UUID) (map[uuid.UUID]models.Analysis, error) {
	return c.repo.FindByJD(jdID)
}
