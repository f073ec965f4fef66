package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

type ingestFixture struct {
	ingest     IngestService
	resumeRepo *fakeResumeRepo
	jdRepo     *fakeJDRepo
	cache      AnalysisCache
	analyses   *fakeAnalysisRepo
}

func newIngestFixture(t *testing.T, maxResumes int, retention time.Duration) *ingestFixture {
	t.Helper()

	resumeRepo := &fakeResumeRepo{}
	jdRepo := &fakeJDRepo{}
	analyses := newFakeAnalysisRepo()
	cache := NewAnalysisCache(analyses)

	ingest := NewIngestService(
		resumeRepo,
		jdRepo,
		&fakeExtractor{},
		&fakeEnrichment{},
		&fakeStorage{},
		newFakeVectorIndex(),
		NewHeuristicScorer(testScoringConfig()),
		cache,
		maxResumes,
		retention,
		2,
	)
	ingest.Start(context.Background())
	t.Cleanup(ingest.Stop)

	return &ingestFixture{
		ingest:     ingest,
		resumeRepo: resumeRepo,
		jdRepo:     jdRepo,
		cache:      cache,
		analyses:   analyses,
	}
}

func (f *ingestFixture) waitForJob(t *testing.T, jobID uuid.UUID) *models.BulkJobStatusResponse {
	t.Helper()

	var status *models.BulkJobStatusResponse
	require.Eventually(t, func() bool {
		var err error
		status, err = f.ingest.Status(jobID)
		if err != nil {
			return false
		}
		return status.Status != models.BulkJobProcessing
	}, 5*time.Second, 10*time.Millisecond)
	return status
}

func TestIngestProcessesFiles(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, duplicates, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
		{Filename: "grace.txt", Content: []byte("grace resume")},
	})
	require.NoError(t, err)
	assert.Empty(t, duplicates)

	status := f.waitForJob(t, jobID)
	assert.Equal(t, models.BulkJobCompleted, status.Status)
	assert.Equal(t, 2, status.Progress)
	assert.Equal(t, 2, status.Total)
	for _, file := range status.Files {
		assert.Equal(t, models.FileSucceeded, file.Outcome)
	}

	count, err := f.resumeRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIngestNormalizesExtractedText(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("  Ada Lovelace  \n\n   \nBackend Engineer\n")},
	})
	require.NoError(t, err)
	f.waitForJob(t, jobID)

	resumes, err := f.resumeRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, "Ada Lovelace\nBackend Engineer", resumes[0].Text)
}

func TestIngestEmptySubmission(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	_, _, err := f.ingest.Submit(nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestIngestQuotaExceeded(t *testing.T) {
	f := newIngestFixture(t, 2, time.Hour)

	require.NoError(t, f.resumeRepo.Create(&models.Resume{ID: uuid.New(), ContentHash: "h1"}))
	require.NoError(t, f.resumeRepo.Create(&models.Resume{ID: uuid.New(), ContentHash: "h2"}))

	_, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestIngestDetectsDuplicatesWithinBatch(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, duplicates, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("same content")},
		{Filename: "ada_copy.txt", Content: []byte("same content")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ada_copy.txt"}, duplicates)

	status := f.waitForJob(t, jobID)
	assert.Equal(t, models.BulkJobCompleted, status.Status)
	assert.Equal(t, models.FileSucceeded, status.Files[0].Outcome)
	assert.Equal(t, models.FileDuplicate, status.Files[1].Outcome)

	count, err := f.resumeRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestDetectsDuplicatesAgainstStore(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)
	f.waitForJob(t, jobID)

	jobID, duplicates, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada_again.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ada_again.txt"}, duplicates)

	status := f.waitForJob(t, jobID)
	assert.Equal(t, models.BulkJobCompleted, status.Status)
	assert.Equal(t, models.FileDuplicate, status.Files[0].Outcome)
}

func TestIngestCompletesDespiteFailures(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "good.txt", Content: []byte("good resume")},
		{Filename: "bad.txt", Content: []byte("FAIL")},
	})
	require.NoError(t, err)

	status := f.waitForJob(t, jobID)
	assert.Equal(t, models.BulkJobCompleted, status.Status)
	assert.Equal(t, 2, status.Progress)
	assert.Equal(t, models.FileSucceeded, status.Files[0].Outcome)
	assert.Equal(t, models.FileFailed, status.Files[1].Outcome)
	assert.NotEmpty(t, status.Files[1].Error)

	count, err := f.resumeRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestFailedHashCanBeResubmitted(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "bad.txt", Content: []byte("FAIL")},
	})
	require.NoError(t, err)
	f.waitForJob(t, jobID)

	// The failed file's hash is released so a corrected upload of the same
	// content is not treated as a duplicate.
	jobID, duplicates, err := f.ingest.Submit([]IngestFile{
		{Filename: "bad.txt", Content: []byte("FAIL")},
	})
	require.NoError(t, err)
	assert.Empty(t, duplicates)
	f.waitForJob(t, jobID)
}

func TestIngestSucceededHashReleasedAfterDeleteAll(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)
	f.waitForJob(t, jobID)

	require.NoError(t, f.resumeRepo.DeleteAll())

	// With the stored row gone there is no hash left to collide with, so the
	// same content ingests fresh instead of reading as a duplicate.
	jobID, duplicates, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)
	assert.Empty(t, duplicates)

	status := f.waitForJob(t, jobID)
	assert.Equal(t, models.BulkJobCompleted, status.Status)
	assert.Equal(t, models.FileSucceeded, status.Files[0].Outcome)

	count, err := f.resumeRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIngestPreScoresAgainstExistingJDs(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	jd := models.JobDescription{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go"},
	}
	require.NoError(t, f.jdRepo.Create(&jd))

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)
	f.waitForJob(t, jobID)

	resumes, err := f.resumeRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, resumes, 1)

	cached, err := f.cache.Get(jd.ID, resumes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierPreliminary, cached.Tier)
	assert.Equal(t, models.RatingPreliminary, cached.MatchRating)
	assert.Equal(t, 90.0, cached.Score)
}

func TestIngestUnknownJob(t *testing.T) {
	f := newIngestFixture(t, 20, time.Hour)

	_, err := f.ingest.Status(uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestIngestPrunesFinishedJobs(t *testing.T) {
	f := newIngestFixture(t, 20, time.Millisecond)

	jobID, _, err := f.ingest.Submit([]IngestFile{
		{Filename: "ada.txt", Content: []byte("ada resume")},
	})
	require.NoError(t, err)

	// Once finished and past the retention window the job reads as unknown.
	assert.Eventually(t, func() bool {
		_, err := f.ingest.Status(jobID)
		return errors.Is(err, repositories.ErrNotFound)
	}, 5*time.Second, 10*time.Millisecond)
}
