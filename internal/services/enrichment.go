package services

import (
	"context"
	"fmt"

	"recruitkit/resume-matcher/internal/models"
)

// ParsedResume is the structured data the LLM extracts from raw resume text.
type ParsedResume struct {
	Name       string                   `json:"name"`
	Email      string                   `json:"email"`
	Phone      string                   `json:"phone"`
	Skills     []string                 `json:"skills"`
	Experience []models.ExperienceEntry `json:"experience"`
}

// JDSkills is the skill split the LLM extracts from a job description.
type JDSkills struct {
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
}

// EnrichmentService turns raw uploaded text into structured records:
// parsed resumes, job description skill lists, and embeddings.
type EnrichmentService interface {
	ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error)
	ExtractJDSkills(ctx context.Context, jdText string) (*JDSkills, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

type enrichmentService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewEnrichmentService(gemini GeminiService) EnrichmentService {
	return &enrichmentService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// ParseResume implements EnrichmentService.
func (e *enrichmentService) ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error) {
	prompt := e.promptBuilder.BuildResumeParsePrompt(resumeText)

	response, err := e.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	var parsed ParsedResume
	if err := parseJSONResponse(response, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse resume response: %w", err)
	}

	return &parsed, nil
}

// ExtractJDSkills implements EnrichmentService.
func (e *enrichmentService) ExtractJDSkills(ctx context.Context, jdText string) (*JDSkills, error) {
	prompt := e.promptBuilder.BuildSkillExtractionPrompt(jdText)

	response, err := e.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skills: %w", err)
	}

	var skills JDSkills
	if err := parseJSONResponse(response, &skills); err != nil {
		return nil, fmt.Errorf("failed to parse skill extraction response: %w", err)
	}

	return &skills, nil
}

// Embed implements EnrichmentService.
func (e *enrichmentService) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.gemini.GenerateEmbedding(ctx, text)
}
