package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/resume-matcher/internal/models"
	"recruitkit/resume-matcher/internal/services"
)

type StatusHandler struct {
	statuses services.StatusService
}

func NewStatusHandler(statuses services.StatusService) *StatusHandler {
	return &StatusHandler{
		statuses: statuses,
	}
}

// HandleGetStatuses handles GET /candidates/status/:jd_id. Every resume is
// listed; ones never touched come back as "New".
func (h *StatusHandler) HandleGetStatuses(c *fiber.Ctx) error {
	jdID, err := uuid.Parse(c.Params("jd_id"))
	if err != nil {
		return respondError(c, services.NewValidationError("invalid job description ID format"))
	}

	statuses, err := h.statuses.GetAll(jdID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(statuses)
}

// HandleBulkUpdate handles PATCH /candidates/status/bulk.
func (h *StatusHandler) HandleBulkUpdate(c *fiber.Ctx) error {
	var req models.BulkStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.NewValidationError("invalid request payload"))
	}

	if req.JDID == uuid.Nil {
		return respondError(c, services.NewValidationError("jd_id is required"))
	}
	if len(req.ResumeIDs) == 0 {
		return respondError(c, services.NewValidationError("resume_ids must not be empty"))
	}

	if err := h.statuses.SetBulk(req.JDID, req.ResumeIDs, req.Status, req.Note); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Status updated",
		"updated": len(req.ResumeIDs),
	})
}
