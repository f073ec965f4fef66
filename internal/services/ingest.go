package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

// IngestFile is one uploaded resume file, already read into memory by the
// handler.
type IngestFile struct {
	Filename string
	Content  []byte
}

// IngestService runs bulk resume uploads asynchronously: the submission call
// returns a job id immediately and the caller polls Status for progress.
// Each file resolves independently to succeeded, duplicate or failed;
// per-file failures never fail the job. On every successful parse the resume
// is pre-scored against all existing job descriptions so it shows up ranked
// without an extra round trip.
type IngestService interface {
	Start(ctx context.Context)
	Stop()
	Submit(files []IngestFile) (uuid.UUID, []string, error)
	Status(jobID uuid.UUID) (*models.BulkJobStatusResponse, error)
}

type bulkJob struct {
	id         uuid.UUID
	total      int
	progress   int
	status     models.BulkJobState
	results    []models.FileResult
	finishedAt time.Time
}

type fileTask struct {
	jobID uuid.UUID
	index int
	file  IngestFile
	hash  string
}

type ingestService struct {
	resumeRepo repositories.ResumeRepository
	jdRepo     repositories.JobDescriptionRepository
	extractor  TextExtractor
	enrichment EnrichmentService
	storage    StorageService
	vectors    VectorIndexService
	scorer     *HeuristicScorer
	cache      AnalysisCache

	maxResumes  int
	retention   time.Duration
	concurrency int

	taskQueue chan fileTask
	stopChan  chan struct{}
	wg        sync.WaitGroup

	mu             sync.Mutex
	jobs           map[uuid.UUID]*bulkJob
	inFlightHashes map[string]struct{}
}

func NewIngestService(
	resumeRepo repositories.ResumeRepository,
	jdRepo repositories.JobDescriptionRepository,
	extractor TextExtractor,
	enrichment EnrichmentService,
	storage StorageService,
	vectors VectorIndexService,
	scorer *HeuristicScorer,
	cache AnalysisCache,
	maxResumes int,
	retention time.Duration,
	concurrency int,
) IngestService {
	return &ingestService{
		resumeRepo:     resumeRepo,
		jdRepo:         jdRepo,
		extractor:      extractor,
		enrichment:     enrichment,
		storage:        storage,
		vectors:        vectors,
		scorer:         scorer,
		cache:          cache,
		maxResumes:     maxResumes,
		retention:      retention,
		concurrency:    concurrency,
		taskQueue:      make(chan fileTask, 100),
		stopChan:       make(chan struct{}),
		jobs:           make(map[uuid.UUID]*bulkJob),
		inFlightHashes: make(map[string]struct{}),
	}
}

// Start implements IngestService.
func (s *ingestService) Start(ctx context.Context) {
	log.Printf("🚀 Starting ingest with %d concurrent workers\n", s.concurrency)

	for i := 0; i < s.concurrency; i++ {
		s.wg.Add(1)
		go s.processTasks(ctx, i+1)
	}
}

// Stop implements IngestService.
func (s *ingestService) Stop() {
	log.Println("🛑 Stopping ingest workers...")
	close(s.stopChan)
	s.wg.Wait()
	log.Println("✅ Ingest workers stopped")
}

// Submit implements IngestService. Duplicates are resolved synchronously so
// the response can name them; everything else is queued for the workers.
func (s *ingestService) Submit(files []IngestFile) (uuid.UUID, []string, error) {
	if len(files) == 0 {
		return uuid.Nil, nil, NewValidationError("no files to process")
	}

	existing, err := s.resumeRepo.Count()
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to check resume quota: %w", err)
	}
	if int(existing)+len(files) > s.maxResumes {
		return uuid.Nil, nil, NewValidationError(
			"resume quota exceeded: %d stored + %d uploaded > max %d",
			existing, len(files), s.maxResumes)
	}

	storedHashes, err := s.resumeRepo.ContentHashes()
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to load content hashes: %w", err)
	}

	job := &bulkJob{
		id:      uuid.New(),
		total:   len(files),
		status:  models.BulkJobProcessing,
		results: make([]models.FileResult, len(files)),
	}

	var duplicates []string
	var tasks []fileTask

	s.mu.Lock()
	for i, file := range files {
		sum := sha256.Sum256(file.Content)
		hash := hex.EncodeToString(sum[:])
		job.results[i] = models.FileResult{Filename: file.Filename, Outcome: models.FilePending}

		_, stored := storedHashes[hash]
		_, inFlight := s.inFlightHashes[hash]
		if stored || inFlight {
			job.results[i].Outcome = models.FileDuplicate
			job.progress++
			duplicates = append(duplicates, file.Filename)
			continue
		}

		s.inFlightHashes[hash] = struct{}{}
		tasks = append(tasks, fileTask{jobID: job.id, index: i, file: file, hash: hash})
	}
	if job.progress == job.total {
		job.status = models.BulkJobCompleted
		job.finishedAt = time.Now()
	}
	s.jobs[job.id] = job
	s.pruneLocked()
	s.mu.Unlock()

	for _, task := range tasks {
		select {
		case s.taskQueue <- task:
		case <-s.stopChan:
			// Ingest subsystem is down; this is the one catastrophic case
			// that fails the whole job.
			s.mu.Lock()
			delete(s.inFlightHashes, task.hash)
			job.status = models.BulkJobFailed
			job.finishedAt = time.Now()
			s.mu.Unlock()
			return job.id, duplicates, nil
		}
	}

	return job.id, duplicates, nil
}

// Status implements IngestService. Finished jobs are pruned past the
// retention window, after which polling reports not found.
func (s *ingestService) Status(jobID uuid.UUID) (*models.BulkJobStatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("bulk job %s: %w", jobID, repositories.ErrNotFound)
	}

	resp := &models.BulkJobStatusResponse{
		JobID:    job.id.String(),
		Status:   job.status,
		Progress: job.progress,
		Total:    job.total,
		Files:    make([]models.FileResult, len(job.results)),
	}
	copy(resp.Files, job.results)
	return resp, nil
}

func (s *ingestService) pruneLocked() {
	cutoff := time.Now().Add(-s.retention)
	for id, job := range s.jobs {
		if job.status != models.BulkJobProcessing && job.finishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}

func (s *ingestService) processTasks(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			log.Printf("👷 Ingest worker #%d stopped\n", workerID)
			return
		case task := <-s.taskQueue:
			s.processFile(ctx, task)
		}
	}
}

func (s *ingestService) processFile(ctx context.Context, task fileTask) {
	text, err := s.extractor.ExtractText(task.file.Filename, task.file.Content)
	if err != nil || strings.TrimSpace(text) == "" {
		s.failFile(task, fmt.Sprintf("unreadable file: %v", err))
		return
	}
	text = CleanText(text)

	parsed, err := s.enrichment.ParseResume(ctx, text)
	if err != nil {
		s.failFile(task, fmt.Sprintf("failed to parse resume: %v", err))
		return
	}

	// Embedding failures degrade similarity to zero later; they do not fail
	// the file.
	embedding, err := s.enrichment.Embed(ctx, text)
	if err != nil {
		log.Printf("⚠️  Failed to embed %s: %v\n", task.file.Filename, err)
		embedding = nil
	}

	filename, _, err := s.storage.SaveBytes(task.file.Filename, task.file.Content)
	if err != nil {
		s.failFile(task, fmt.Sprintf("failed to store file: %v", err))
		return
	}

	candidateName := strings.TrimSpace(parsed.Name)
	if candidateName == "" || candidateName == "N/A" {
		candidateName = task.file.Filename
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		CandidateName:    candidateName,
		Text:             text,
		Skills:           parsed.Skills,
		Experience:       parsed.Experience,
		Email:            parsed.Email,
		Phone:            parsed.Phone,
		Embedding:        embedding,
		ContentHash:      task.hash,
		Filename:         filename,
		OriginalFileName: task.file.Filename,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		if delErr := s.storage.DeleteFile(filename); delErr != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", filename, delErr)
		}
		s.failFile(task, fmt.Sprintf("failed to save resume: %v", err))
		return
	}

	if embedding != nil {
		if err := s.vectors.UpsertDocument(ctx, resume.ID.String(), DocTypeResume, embedding); err != nil {
			log.Printf("⚠️  Failed to index %s: %v\n", task.file.Filename, err)
		}
	}

	s.preScore(resume)

	// The stored row now carries the content hash, so submit-time dedup is
	// covered by ContentHashes and the in-flight entry can go. Keeping it
	// would outlive the row itself on a later delete-all.
	s.mu.Lock()
	delete(s.inFlightHashes, task.hash)
	s.mu.Unlock()

	s.resolveFile(task.jobID, task.index, models.FileSucceeded, "")
}

// preScore upserts a preliminary analysis for the new resume against every
// existing job description so the roster is ranked immediately.
func (s *ingestService) preScore(resume *models.Resume) {
	jds, err := s.jdRepo.FindAll()
	if err != nil {
		log.Printf("⚠️  Failed to list job descriptions for pre-scoring: %v\n", err)
		return
	}

	for i := range jds {
		prelim := s.scorer.Score(&jds[i], resume)
		if _, err := s.cache.Put(prelim, false); err != nil {
			log.Printf("⚠️  Failed to cache preliminary score for jd %s: %v\n", jds[i].ID, err)
		}
	}
}

func (s *ingestService) failFile(task fileTask, message string) {
	log.Printf("❌ Ingest failed for %s: %s\n", task.file.Filename, message)

	s.mu.Lock()
	delete(s.inFlightHashes, task.hash)
	s.mu.Unlock()

	s.resolveFile(task.jobID, task.index, models.FileFailed, message)
}

func (s *ingestService) resolveFile(jobID uuid.UUID, index int, outcome models.FileOutcome, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}

	job.results[index].Outcome = outcome
	job.results[index].Error = errMsg
	job.progress++

	if job.progress == job.total && job.status == models.BulkJobProcessing {
		job.status = models.BulkJobCompleted
		job.finishedAt = time.Now()
		log.Printf("✅ Bulk job %s completed (%d files)\n", jobID, job.total)
	}
}
