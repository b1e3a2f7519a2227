package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type CandidateHandler struct {
	candidateService   service.CandidateService
	applicationService service.ApplicationService
	log                *logger.Logger
}

func NewCandidateHandler(candidateService service.CandidateService, applicationService service.ApplicationService, log *logger.Logger) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService, applicationService: applicationService, log: log}
}

// Apply handles a public job application.
// POST /api/applications
func (h *CandidateHandler) Apply(c *fiber.Ctx) error {
	var req service.ApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.applicationService.Apply(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(res)
}

// List GET /api/candidates?page=&limit=&status=&search=
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	page, err := h.candidateService.List(c.UserContext(), middleware.Principal(c), service.ListCandidatesQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(page)
}

// Create POST /api/candidates
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var req service.CreateCandidateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	candidate, err := h.candidateService.Create(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": candidate})
}

// Get GET /api/candidates/:id
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	candidate, err := h.candidateService.Get(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": candidate})
}

// UpdateStatus PUT /api/candidates/:id/status
func (h *CandidateHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	candidate, err := h.candidateService.UpdateStatus(c.UserContext(), middleware.Principal(c), id, req.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": candidate})
}

// BulkStatus PUT /api/candidates/bulk-status
func (h *CandidateHandler) BulkStatus(c *fiber.Ctx) error {
	var req service.BulkStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	n, err := h.candidateService.BulkUpdateStatus(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}

// BulkDate PUT /api/candidates/bulk-date
func (h *CandidateHandler) BulkDate(c *fiber.Ctx) error {
	var req service.BulkDateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	n, err := h.candidateService.BulkUpdateInterviewDate(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}

// Snapshots serves both GET /api/candidates/bulk-status and GET /api/candidates/bulk-date.
func (h *CandidateHandler) Snapshots(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ids must be a comma separated list of UUIDs")
	}

	snaps, err := h.candidateService.Snapshots(c.UserContext(), middleware.Principal(c), ids)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": snaps})
}

// CreateCVLink POST /api/candidates/:id/cv-link
func (h *CandidateHandler) CreateCVLink(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	link, err := h.candidateService.CreateCVLink(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(link)
}

// SharedCV is the public side of a CV link.
// GET /api/cv/:token
func (h *CandidateHandler) SharedCV(c *fiber.Ctx) error {
	cv, err := h.candidateService.ResolveCVLink(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cv)
}
