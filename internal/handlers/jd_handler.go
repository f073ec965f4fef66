package handlers

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

type JDHandler struct {
	jdRepo      repositories.JobDescriptionRepository
	extractor   services.TextExtractor
	enrichment  services.EnrichmentService
	vectors     services.VectorIndexService
	maxJDs      int
	maxFileSize int64
}

func NewJDHandler(
	jdRepo repositories.JobDescriptionRepository,
	extractor services.TextExtractor,
	enrichment services.EnrichmentService,
	vectors services.VectorIndexService,
	maxJDs int,
	maxFileSize int64,
) *JDHandler {
	return &JDHandler{
		jdRepo:      jdRepo,
		extractor:   extractor,
		enrichment:  enrichment,
		vectors:     vectors,
		maxJDs:      maxJDs,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /jd/upload: extracts the text, asks the LLM for
// the skill split, embeds it, and stores the record.
func (h *JDHandler) HandleUpload(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return respondError(c, services.NewValidationError("title is required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, services.NewValidationError("file is required"))
	}
	if fileHeader.Size > h.maxFileSize {
		return respondError(c, services.NewValidationError(
			"file too large. Max size: %d bytes", h.maxFileSize))
	}

	count, err := h.jdRepo.Count()
	if err != nil {
		return respondError(c, err)
	}
	if int(count) >= h.maxJDs {
		return respondError(c, services.NewValidationError(
			"job description limit reached (max %d). Delete one to add another.", h.maxJDs))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, fmt.Errorf("failed to read uploaded file: %w", err))
	}

	text, err := h.extractor.ExtractText(fileHeader.Filename, content)
	if err != nil || strings.TrimSpace(text) == "" {
		return respondError(c, services.NewValidationError("job description file is empty or unreadable"))
	}
	text = services.CleanText(text)

	skills, err := h.enrichment.ExtractJDSkills(c.Context(), text)
	if err != nil {
		return respondError(c, fmt.Errorf("failed to extract skills: %w", err))
	}

	// Embedding is best-effort; without it similarity just reads zero.
	embedding, embedErr := h.enrichment.Embed(c.Context(), text)
	if embedErr != nil {
		embedding = nil
	}

	jd := &models.JobDescription{
		ID:               uuid.New(),
		Title:            title,
		Text:             text,
		RequiredSkills:   skills.RequiredSkills,
		NiceToHaveSkills: skills.NiceToHaveSkills,
		Embedding:        embedding,
	}

	if err := h.jdRepo.Create(jd); err != nil {
		return respondError(c, err)
	}

	if embedding != nil {
		if err := h.vectors.UpsertDocument(c.Context(), jd.ID.String(), services.DocTypeJobDescription, embedding); err != nil {
			// Index lag is tolerable; the record is authoritative.
			log.Printf("⚠️ Failed to index job description %s: %v", jd.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(jd)
}

// HandleList handles GET /jd.
func (h *JDHandler) HandleList(c *fiber.Ctx) error {
	jds, err := h.jdRepo.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jds)
}

// HandleDelete handles DELETE /jd/:id. Cached analyses and candidate
// statuses for the job go with it.
func (h *JDHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}

	if err := h.jdRepo.Delete(id); err != nil {
		return respondError(c, err)
	}

	if err := h.vectors.DeleteDocument(c.Context(), id.String()); err != nil {
		log.Printf("⚠️ Failed to drop vector for job description %s: %v", id, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
