package services

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

const excerptLength = 300

// AnalyzerService is the coordinating surface of the scoring pipeline:
// single-candidate verification, batch verification of the unverified,
// full-batch verification, and the ranked roster.
type AnalyzerService interface {
	AnalyzeOne(ctx context.Context, jdID, resumeID uuid.UUID, force bool) (*models.Analysis, error)
	AnalyzePreliminaryOnly(ctx context.Context, jdID uuid.UUID) ([]models.Analysis, error)
	AnalyzeAll(ctx context.Context, jdID uuid.UUID, force bool) ([]models.Analysis, error)
	Ranked(jdID uuid.UUID) ([]models.CandidateMatch, error)
	Progress(jdID uuid.UUID) (*models.AnalysisProgress, error)
}

type analyzerService struct {
	jdRepo      repositories.JobDescriptionRepository
	resumeRepo  repositories.ResumeRepository
	cache       AnalysisCache
	oracle      OracleClient
	scorer      *HeuristicScorer
	vectors     VectorIndexService
	concurrency int
	keys        *keyedMutex
}

func NewAnalyzerService(
	jdRepo repositories.JobDescriptionRepository,
	resumeRepo repositories.ResumeRepository,
	cache AnalysisCache,
	oracle OracleClient,
	scorer *HeuristicScorer,
	vectors VectorIndexService,
	concurrency int,
) AnalyzerService {
	return &analyzerService{
		jdRepo:      jdRepo,
		resumeRepo:  resumeRepo,
		cache:       cache,
		oracle:      oracle,
		scorer:      scorer,
		vectors:     vectors,
		concurrency: concurrency,
		keys:        newKeyedMutex(),
	}
}

// AnalyzeOne implements AnalyzerService. A cached verified entry is returned
// as-is unless force is set, so repeated calls cost one oracle call total.
// An oracle failure surfaces as ErrOracleUnavailable and leaves the cache
// untouched.
func (a *analyzerService) AnalyzeOne(ctx context.Context, jdID, resumeID uuid.UUID, force bool) (*models.Analysis, error) {
	jd, err := a.jdRepo.FindByID(jdID)
	if err != nil {
		return nil, err
	}
	resume, err := a.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, err
	}

	// Concurrent calls on the same pair collapse to a single oracle call:
	// the second caller finds the verified entry under the lock.
	unlock := a.keys.lock(jdID.String() + "/" + resumeID.String())
	defer unlock()

	if !force {
		cached, err := a.cache.Get(jdID, resumeID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if cached != nil && cached.Tier == models.TierVerified {
			return cached, nil
		}
	}

	verdict, err := a.oracle.Evaluate(ctx, jd, resume)
	if err != nil {
		return nil, err
	}

	score, matched, missing := a.scorer.ScoreSkillMatches(jd, verdict.MatchedSkills)

	rationale := strings.TrimSpace(verdict.Rationale)
	if rationale == "" {
		rationale = "No rationale provided."
	}

	analysis := &models.Analysis{
		JDID:          jdID,
		ResumeID:      resumeID,
		Score:         score,
		MatchRating:   a.scorer.Rate(score),
		Tier:          models.TierVerified,
		MatchedSkills: matched,
		MissingSkills: missing,
		Rationale:     rationale,
		Similarity:    a.similarity(ctx, jd, resume),
		AnalyzedAt:    time.Now().UTC(),
	}

	return a.cache.Put(analysis, force)
}

// AnalyzePreliminaryOnly implements AnalyzerService: verifies every resume
// that has no verified entry for the job, skipping already-verified ones
// entirely. Returns only the newly verified results.
func (a *analyzerService) AnalyzePreliminaryOnly(ctx context.Context, jdID uuid.UUID) ([]models.Analysis, error) {
	if _, err := a.jdRepo.FindByID(jdID); err != nil {
		return nil, err
	}

	resumes, err := a.resumeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	cached, err := a.cache.GetForJob(jdID)
	if err != nil {
		return nil, err
	}

	var targets []uuid.UUID
	for _, resume := range resumes {
		if entry, ok := cached[resume.ID]; ok && entry.Tier == models.TierVerified {
			continue
		}
		targets = append(targets, resume.ID)
	}

	return a.verifyBatch(ctx, jdID, targets, false), nil
}

// AnalyzeAll implements AnalyzerService: oracle verification for every resume
// associated with the job. A per-resume failure is logged and skipped; the
// returned list being shorter than the roster signals partial completion.
func (a *analyzerService) AnalyzeAll(ctx context.Context, jdID uuid.UUID, force bool) ([]models.Analysis, error) {
	if _, err := a.jdRepo.FindByID(jdID); err != nil {
		return nil, err
	}

	resumes, err := a.resumeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	targets := make([]uuid.UUID, 0, len(resumes))
	for _, resume := range resumes {
		targets = append(targets, resume.ID)
	}

	return a.verifyBatch(ctx, jdID, targets, force), nil
}

// verifyBatch fans AnalyzeOne out over the targets with bounded concurrency
// and collects the successes sorted by score.
func (a *analyzerService) verifyBatch(ctx context.Context, jdID uuid.UUID, targets []uuid.UUID, force bool) []models.Analysis {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	var mu sync.Mutex
	var results []models.Analysis

	for _, resumeID := range targets {
		g.Go(func() error {
			analysis, err := a.AnalyzeOne(gctx, jdID, resumeID, force)
			if err != nil {
				log.Printf("⚠️  Analysis failed for resume %s: %v\n", resumeID, err)
				return nil
			}
			mu.Lock()
			results = append(results, *analysis)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Ranked implements AnalyzerService. Cached entries are used where present;
// everything else gets a heuristic score computed on the fly (and not
// persisted), so the roster is always complete and ranked.
func (a *analyzerService) Ranked(jdID uuid.UUID) ([]models.CandidateMatch, error) {
	jd, err := a.jdRepo.FindByID(jdID)
	if err != nil {
		return nil, err
	}

	resumes, err := a.resumeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	cached, err := a.cache.GetForJob(jdID)
	if err != nil {
		return nil, err
	}

	matches := make([]models.CandidateMatch, 0, len(resumes))
	for i := range resumes {
		resume := &resumes[i]

		var analysis models.Analysis
		if entry, ok := cached[resume.ID]; ok {
			analysis = entry
		} else {
			analysis = *a.scorer.Score(jd, resume)
		}
		matches = append(matches, buildCandidateMatch(resume, &analysis))
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CandidateName < matches[j].CandidateName
	})
	return matches, nil
}

// Progress implements AnalyzerService.
func (a *analyzerService) Progress(jdID uuid.UUID) (*models.AnalysisProgress, error) {
	if _, err := a.jdRepo.FindByID(jdID); err != nil {
		return nil, err
	}

	resumes, err := a.resumeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	cached, err := a.cache.GetForJob(jdID)
	if err != nil {
		return nil, err
	}

	verified := 0
	for _, resume := range resumes {
		if entry, ok := cached[resume.ID]; ok && entry.Tier == models.TierVerified {
			verified++
		}
	}

	total := len(resumes)
	denom := total
	if denom == 0 {
		denom = 1
	}

	return &models.AnalysisProgress{
		JDID:           jdID,
		TotalResumes:   total,
		Verified:       verified,
		Preliminary:    total - verified,
		VerifiedPct:    math.Round(float64(verified)*10000/float64(denom)) / 100,
		PreliminaryPct: math.Round(float64(total-verified)*10000/float64(denom)) / 100,
	}, nil
}

func (a *analyzerService) similarity(ctx context.Context, jd *models.JobDescription, resume *models.Resume) *float64 {
	sim := 0.0
	if len(jd.Embedding) > 0 && len(resume.Embedding) > 0 {
		value, err := a.vectors.Similarity(ctx, jd.Embedding, resume.ID.String())
		if err != nil {
			log.Printf("⚠️  Similarity lookup failed for resume %s: %v\n", resume.ID, err)
		} else {
			sim = value
		}
	}
	sim = math.Round(sim*10000) / 10000
	return &sim
}

func buildCandidateMatch(resume *models.Resume, analysis *models.Analysis) models.CandidateMatch {
	match := models.CandidateMatch{
		ResumeID:      resume.ID,
		CandidateName: resume.CandidateName,
		Score:         analysis.Score,
		MatchRating:   analysis.MatchRating,
		Tier:          analysis.Tier,
		MatchedSkills: analysis.MatchedSkills,
		MissingSkills: analysis.MissingSkills,
		Rationale:     analysis.Rationale,
		Similarity:    analysis.Similarity,
		ResumeExcerpt: resume.Excerpt(excerptLength),
	}
	if !analysis.AnalyzedAt.IsZero() {
		at := analysis.AnalyzedAt
		match.AnalyzedAt = &at
	}
	return match
}
