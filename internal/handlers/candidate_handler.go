package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/services"
)

type CandidateHandler struct {
	analyzer services.AnalyzerService
}

func NewCandidateHandler(analyzer services.AnalyzerService) *CandidateHandler {
	return &CandidateHandler{
		analyzer: analyzer,
	}
}

// HandleRanked handles GET /candidates/:jd_id — the ranked match list for a
// job, cached analyses first and heuristic fallbacks for the rest.
func (h *CandidateHandler) HandleRanked(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Params("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}

	matches, err := h.analyzer.Ranked(jdID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(matches)
}

// HandleAnalyzeOne handles POST /candidates/analyze. Runs the full pipeline
// for one (job, resume) pair; pass force=true to redo a verified analysis.
func (h *CandidateHandler) HandleAnalyzeOne(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Query("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid or missing jd_id"))
	}
	resumeID, err := uuid.Parse(c.Query("resume_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid or missing resume_id"))
	}
	force := c.QueryBool("force", false)

	analysis, err := h.analyzer.AnalyzeOne(c.Context(), jdID, resumeID, force)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analysis)
}

// HandleAnalyzeAll handles GET /candidates/full-analysis/:jd_id — verifies
// every resume against the job. Failures for individual resumes are skipped,
// so the response may cover fewer candidates than exist.
func (h *CandidateHandler) HandleAnalyzeAll(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Params("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}
	force := c.QueryBool("force", false)

	analyses, err := h.analyzer.AnalyzeAll(c.Context(), jdID, force)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analyses)
}

// HandleAnalyzePreliminary handles POST /candidates/analyze/preliminary/:jd_id
// — verifies only the resumes that don't have a verified analysis yet.
func (h *CandidateHandler) HandleAnalyzePreliminary(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Params("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}

	analyses, err := h.analyzer.AnalyzePreliminaryOnly(c.Context(), jdID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analyses)
}

// HandleProgress handles GET /candidates/analysis-progress/:jd_id.
func (h *CandidateHandler) HandleProgress(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Params("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}

	progress, err := h.analyzer.Progress(jdID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(progress)
}
