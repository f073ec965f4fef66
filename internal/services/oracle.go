package services

import (
	"context"
	"fmt"
	"time"

	"recruitkit/resume-matcher/internal/models"
)

// OracleVerdict is the raw outcome of one oracle evaluation, before the
// orchestrator projects it onto the job's canonical skill lists.
type OracleVerdict struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Rationale     string   `json:"rationale"`
}

// OracleClient evaluates a resume against a job description through the
// external LLM. Calls may be slow and may fail; every failure is wrapped in
// ErrOracleUnavailable so callers can fall back to the cached preliminary
// result. The client makes exactly one attempt per call — retry policy
// belongs to the orchestrator.
type OracleClient interface {
	Evaluate(ctx context.Context, jd *models.JobDescription, resume *models.Resume) (*OracleVerdict, error)
}

type geminiOracle struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewGeminiOracle(gemini GeminiService, timeout time.Duration) OracleClient {
	return &geminiOracle{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// Evaluate implements OracleClient.
func (o *geminiOracle) Evaluate(ctx context.Context, jd *models.JobDescription, resume *models.Resume) (*OracleVerdict, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	prompt := o.promptBuilder.BuildEvaluationPrompt(jd.Text, jd.RequiredSkills, jd.NiceToHaveSkills, resume.Text)

	response, err := o.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	var verdict OracleVerdict
	if err := parseJSONResponse(response, &verdict); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrOracleUnavailable, err)
	}

	return &verdict, nil
}
