package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

type ResumeHandler struct {
	ingest       services.IngestService
	resumeRepo   repositories.ResumeRepository
	analysisRepo repositories.AnalysisRepository
	statusRepo   repositories.CandidateStatusRepository
	storage      services.StorageService
	vectors      services.VectorIndexService
	maxFileSize  int64
}

func NewResumeHandler(
	ingest services.IngestService,
	resumeRepo repositories.ResumeRepository,
	analysisRepo repositories.AnalysisRepository,
	statusRepo repositories.CandidateStatusRepository,
	storage services.StorageService,
	vectors services.VectorIndexService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		ingest:       ingest,
		resumeRepo:   resumeRepo,
		analysisRepo: analysisRepo,
		statusRepo:   statusRepo,
		storage:      storage,
		vectors:      vectors,
		maxFileSize:  maxFileSize,
	}
}

// HandleBulkUpload handles POST /resume/bulk-upload. Files are read into
// memory here so the multipart form can be released before the workers run.
func (h *ResumeHandler) HandleBulkUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, services.NewValidationError("failed to parse multipart form"))
	}

	fileHeaders, exists := form.File["files"]
	if !exists || len(fileHeaders) == 0 {
		return respondError(c, services.NewValidationError(
			"no files uploaded. Send one or more resumes in the 'files' field."))
	}

	files := make([]services.IngestFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > h.maxFileSize {
			return respondError(c, services.NewValidationError(
				"%s is too large. Max size: %d bytes", fh.Filename, h.maxFileSize))
		}

		f, err := fh.Open()
		if err != nil {
			return respondError(c, fmt.Errorf("failed to open %s: %w", fh.Filename, err))
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, fmt.Errorf("failed to read %s: %w", fh.Filename, err))
		}

		files = append(files, services.IngestFile{
			Filename: fh.Filename,
			Content:  content,
		})
	}

	jobID, duplicates, err := h.ingest.Submit(files)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.BulkUploadResponse{
		JobID:      jobID.String(),
		Message:    fmt.Sprintf("Processing %d file(s)", len(files)-len(duplicates)),
		Duplicates: duplicates,
	})
}

// HandleBulkStatus handles GET /resume/bulk-upload/status/:job_id.
func (h *ResumeHandler) HandleBulkStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job ID format"))
	}

	status, err := h.ingest.Status(jobID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// HandleList handles GET /resume.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resumes)
}

// HandleDeleteAll handles DELETE /resume/all. Clears resumes together with
// everything derived from them: analyses, candidate statuses, stored files
// and the vector index.
func (h *ResumeHandler) HandleDeleteAll(c *fiber.Ctx) error {
	if err := h.analysisRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}
	if err := h.statusRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}
	if err := h.resumeRepo.DeleteAll(); err != nil {
		return respondError(c, err)
	}

	if err := h.storage.PurgeAll(); err != nil {
		log.Printf("⚠️ Failed to purge stored resume files: %v", err)
	}
	if err := h.vectors.DeleteByType(c.Context(), services.DocTypeResume); err != nil {
		log.Printf("⚠️ Failed to clear resume vectors: %v", err)
	}

	return c.JSON(fiber.Map{
		"message": "All resumes and their analyses have been deleted",
	})
}
