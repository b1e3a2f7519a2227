package handler

import (
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type CandidateStatusHandler struct {
	statusService service.CandidateStatusService
	log           *logger.Logger
}

func NewCandidateStatusHandler(statusService service.CandidateStatusService, log *logger.Logger) *CandidateStatusHandler {
	return &CandidateStatusHandler{statusService: statusService, log: log}
}

// GET /api/candidate-statuses
func (h *CandidateStatusHandler) List(c *fiber.Ctx) error {
	statuses, err := h.statusService.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": statuses})
}

// POST /api/candidate-statuses
func (h *CandidateStatusHandler) Create(c *fiber.Ctx) error {
	var req service.CreateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status, err := h.statusService.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": status})
}

// PUT /api/candidate-statuses/:id
func (h *CandidateStatusHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status, err := h.statusService.Update(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": status})
}

// DELETE /api/candidate-statuses/:id
func (h *CandidateStatusHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.statusService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Status deleted successfully"})
}
