package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/config"
	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
)

// In-memory repository and client doubles shared by the service tests.

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes []models.Resume
}

func (r *fakeResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes = append(r.resumes, *resume)
	return nil
}

func (r *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.resumes {
		if r.resumes[i].ID == id {
			resume := r.resumes[i]
			return &resume, nil
		}
	}
	return nil, fmt.Errorf("resume %s: %w", id, repositories.ErrNotFound)
}

func (r *fakeResumeRepo) FindAll() ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Resume, len(r.resumes))
	copy(out, r.resumes)
	return out, nil
}

func (r *fakeResumeRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.resumes)), nil
}

func (r *fakeResumeRepo) ContentHashes() (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hashes := make(map[string]struct{}, len(r.resumes))
	for _, resume := range r.resumes {
		if resume.ContentHash != "" {
			hashes[resume.ContentHash] = struct{}{}
		}
	}
	return hashes, nil
}

func (r *fakeResumeRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes = nil
	return nil
}

type fakeJDRepo struct {
	mu  sync.Mutex
	jds []models.JobDescription
}

func (r *fakeJDRepo) Create(jd *models.JobDescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jds = append(r.jds, *jd)
	return nil
}

func (r *fakeJDRepo) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jds {
		if r.jds[i].ID == id {
			jd := r.jds[i]
			return &jd, nil
		}
	}
	return nil, fmt.Errorf("job description %s: %w", id, repositories.ErrNotFound)
}

func (r *fakeJDRepo) FindAll() ([]models.JobDescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.JobDescription, len(r.jds))
	copy(out, r.jds)
	return out, nil
}

func (r *fakeJDRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jds)), nil
}

func (r *fakeJDRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jds {
		if r.jds[i].ID == id {
			r.jds = append(r.jds[:i], r.jds[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("job description %s: %w", id, repositories.ErrNotFound)
}

type pairKey struct {
	jdID     uuid.UUID
	resumeID uuid.UUID
}

type fakeAnalysisRepo struct {
	mu      sync.Mutex
	entries map[pairKey]models.Analysis
	saves   int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{entries: make(map[pairKey]models.Analysis)}
}

func (r *fakeAnalysisRepo) Save(analysis *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.entries[pairKey{analysis.JDID, analysis.ResumeID}] = *analysis
	return nil
}

func (r *fakeAnalysisRepo) Find(jdID, resumeID uuid.UUID) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[pairKey{jdID, resumeID}]; ok {
		return &entry, nil
	}
	return nil, fmt.Errorf("analysis: %w", repositories.ErrNotFound)
}

func (r *fakeAnalysisRepo) FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]models.Analysis)
	for key, entry := range r.entries {
		if key.jdID == jdID {
			out[key.resumeID] = entry
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[pairKey]models.Analysis)
	return nil
}

type fakeStatusRepo struct {
	mu      sync.Mutex
	entries map[pairKey]models.CandidateStatus
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{entries: make(map[pairKey]models.CandidateStatus)}
}

func (r *fakeStatusRepo) Upsert(status *models.CandidateStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[pairKey{status.JDID, status.ResumeID}] = *status
	return nil
}

func (r *fakeStatusRepo) UpsertBulk(statuses []models.CandidateStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, status := range statuses {
		r.entries[pairKey{status.JDID, status.ResumeID}] = status
	}
	return nil
}

func (r *fakeStatusRepo) FindByJD(jdID uuid.UUID) (map[uuid.UUID]models.CandidateStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]models.CandidateStatus)
	for key, entry := range r.entries {
		if key.jdID == jdID {
			out[key.resumeID] = entry
		}
	}
	return out, nil
}

func (r *fakeStatusRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[pairKey]models.CandidateStatus)
	return nil
}

// fakeOracle returns a canned verdict per resume id, or errs for ids listed
// in failFor. Calls are counted per resume.
type fakeOracle struct {
	mu       sync.Mutex
	verdicts map[uuid.UUID]*OracleVerdict
	failFor  map[uuid.UUID]error
	calls    map[uuid.UUID]int
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		verdicts: make(map[uuid.UUID]*OracleVerdict),
		failFor:  make(map[uuid.UUID]error),
		calls:    make(map[uuid.UUID]int),
	}
}

func (o *fakeOracle) Evaluate(ctx context.Context, jd *models.JobDescription, resume *models.Resume) (*OracleVerdict, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls[resume.ID]++
	if err, ok := o.failFor[resume.ID]; ok {
		return nil, err
	}
	if verdict, ok := o.verdicts[resume.ID]; ok {
		return verdict, nil
	}
	return &OracleVerdict{MatchedSkills: resume.Skills, Rationale: "looks fine"}, nil
}

func (o *fakeOracle) callCount(resumeID uuid.UUID) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls[resumeID]
}

type fakeVectorIndex struct {
	mu         sync.Mutex
	similarity float64
	upserts    map[string][]float32
}

func newFakeVectorIndex() *fakeVectorIndex {
	return &fakeVectorIndex{upserts: make(map[string][]float32)}
}

func (v *fakeVectorIndex) InitCollection() error { return nil }

func (v *fakeVectorIndex) UpsertDocument(ctx context.Context, docID string, docType string, embedding []float32) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.upserts[docID] = embedding
	return nil
}

func (v *fakeVectorIndex) Similarity(ctx context.Context, queryEmbedding []float32, docID string) (float64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.similarity, nil
}

func (v *fakeVectorIndex) DeleteDocument(ctx context.Context, docID string) error { return nil }

func (v *fakeVectorIndex) DeleteByType(ctx context.Context, docType string) error { return nil }

// fakeExtractor treats all content as plain text; content equal to "FAIL"
// errors so ingest failure paths can be exercised.
type fakeExtractor struct{}

func (e *fakeExtractor) ExtractText(filename string, content []byte) (string, error) {
	if string(content) == "FAIL" {
		return "", fmt.Errorf("corrupt file")
	}
	return string(content), nil
}

type fakeEnrichment struct {
	parsed *ParsedResume
}

func (e *fakeEnrichment) ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error) {
	if e.parsed != nil {
		return e.parsed, nil
	}
	return &ParsedResume{Name: "Candidate", Skills: []string{"Go"}}, nil
}

func (e *fakeEnrichment) ExtractJDSkills(ctx context.Context, jdText string) (*JDSkills, error) {
	return &JDSkills{RequiredSkills: []string{"Go"}}, nil
}

func (e *fakeEnrichment) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

type fakeStorage struct{}

func (s *fakeStorage) SaveBytes(originalName string, content []byte) (string, string, error) {
	return "stored_" + originalName, "/tmp/" + originalName, nil
}

func (s *fakeStorage) GetFilePath(filename string) string { return "/tmp/" + filename }
func (s *fakeStorage) DeleteFile(filename string) error   { return nil }
func (s *fakeStorage) EnsureUploadDir() error             { return nil }
func (s *fakeStorage) PurgeAll() error                    { return nil }

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		RequiredWeight:   90,
		NiceToHaveWeight: 10,
		StrongThreshold:  70,
		GoodThreshold:    35,
	}
}
