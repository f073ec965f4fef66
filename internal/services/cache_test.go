package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitkit/resume-matcher/internal/models"
)

func prelimEntry(jdID, resumeID uuid.UUID, score float64) *models.Analysis {
	return &models.Analysis{
		JDID:        jdID,
		ResumeID:    resumeID,
		Score:       score,
		MatchRating: models.RatingPreliminary,
		Tier:        models.TierPreliminary,
	}
}

func verifiedEntry(jdID, resumeID uuid.UUID, score float64) *models.Analysis {
	return &models.Analysis{
		JDID:        jdID,
		ResumeID:    resumeID,
		Score:       score,
		MatchRating: models.RatingStrong,
		Tier:        models.TierVerified,
		Rationale:   "solid overlap",
		AnalyzedAt:  time.Now().UTC(),
	}
}

func TestCachePutStampsAnalyzedAt(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID, resumeID := uuid.New(), uuid.New()

	stored, err := cache.Put(prelimEntry(jdID, resumeID, 40), false)
	require.NoError(t, err)
	assert.False(t, stored.AnalyzedAt.IsZero())
}

func TestCacheLatestPreliminaryWins(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID, resumeID := uuid.New(), uuid.New()

	_, err := cache.Put(prelimEntry(jdID, resumeID, 40), false)
	require.NoError(t, err)

	stored, err := cache.Put(prelimEntry(jdID, resumeID, 55), false)
	require.NoError(t, err)
	assert.Equal(t, 55.0, stored.Score)

	got, err := cache.Get(jdID, resumeID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.Score)
}

func TestCacheVerifiedNotDowngradedByPreliminary(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID, resumeID := uuid.New(), uuid.New()

	_, err := cache.Put(verifiedEntry(jdID, resumeID, 80), false)
	require.NoError(t, err)

	stored, err := cache.Put(prelimEntry(jdID, resumeID, 20), false)
	require.NoError(t, err)

	// The verified entry is kept and returned as the winner.
	assert.Equal(t, models.TierVerified, stored.Tier)
	assert.Equal(t, 80.0, stored.Score)

	got, err := cache.Get(jdID, resumeID)
	require.NoError(t, err)
	assert.Equal(t, models.TierVerified, got.Tier)
	assert.Equal(t, "solid overlap", got.Rationale)
}

func TestCacheForceAllowsDowngrade(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID, resumeID := uuid.New(), uuid.New()

	_, err := cache.Put(verifiedEntry(jdID, resumeID, 80), false)
	require.NoError(t, err)

	stored, err := cache.Put(prelimEntry(jdID, resumeID, 20), true)
	require.NoError(t, err)
	assert.Equal(t, models.TierPreliminary, stored.Tier)
	assert.Equal(t, 20.0, stored.Score)
}

func TestCacheVerifiedOverwritesVerified(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID, resumeID := uuid.New(), uuid.New()

	_, err := cache.Put(verifiedEntry(jdID, resumeID, 80), false)
	require.NoError(t, err)

	_, err = cache.Put(verifiedEntry(jdID, resumeID, 62), false)
	require.NoError(t, err)

	got, err := cache.Get(jdID, resumeID)
	require.NoError(t, err)
	assert.Equal(t, 62.0, got.Score)
}

func TestCacheEntriesAreIndependentPerPair(t *testing.T) {
	repo := newFakeAnalysisRepo()
	cache := NewAnalysisCache(repo)
	jdID := uuid.New()
	first, second := uuid.New(), uuid.New()

	_, err := cache.Put(verifiedEntry(jdID, first, 80), false)
	require.NoError(t, err)
	_, err = cache.Put(prelimEntry(jdID, second, 30), false)
	require.NoError(t, err)

	entries, err := cache.GetForJob(jdID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TierVerified, entries[first].Tier)
	assert.Equal(t, models.TierPreliminary, entries[second].Tier)
}
