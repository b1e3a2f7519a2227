package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/model"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// VendorHandler serves the vendor back-office: HR staff, incentives and menu permissions.
type VendorHandler struct {
	hrService        service.HrService
	incentiveService service.IncentiveService
	menuService      service.MenuPermissionService
	log              *logger.Logger
}

func NewVendorHandler(hrService service.HrService, incentiveService service.IncentiveService, menuService service.MenuPermissionService, log *logger.Logger) *VendorHandler {
	return &VendorHandler{hrService: hrService, incentiveService: incentiveService, menuService: menuService, log: log}
}

// ListHrs GET /api/vendor/hrs
func (h *VendorHandler) ListHrs(c *fiber.Ctx) error {
	hrs, err := h.hrService.List(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": hrs})
}

// CreateHr POST /api/vendor/hrs
func (h *VendorHandler) CreateHr(c *fiber.Ctx) error {
	var req service.HrRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	hr, err := h.hrService.Create(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": hr})
}

// UpdateHr PUT /api/vendor/hrs/:id
func (h *VendorHandler) UpdateHr(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.HrRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	hr, err := h.hrService.Update(c.UserContext(), middleware.Principal(c), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": hr})
}

// DeleteHr DELETE /api/vendor/hrs/:id
func (h *VendorHandler) DeleteHr(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.hrService.Delete(c.UserContext(), middleware.Principal(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "HR deleted successfully"})
}

// Incentives returns the leaderboard of a vendor's HR staff.
// Admin callers get their own board (super admins may pass ?vendorId=); user sessions must pass ?vendorId=.
// GET /api/vendor/incentives
func (h *VendorHandler) Incentives(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var vendorID uuid.UUID
	raw := c.Query("vendorId")
	switch {
	case p.Role == model.RoleVendor:
		vendorID = p.ID()
	case raw != "":
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid vendorId")
		}
		vendorID = id
	case p.Kind == service.PrincipalAdmin:
		vendorID = p.ID()
	default:
		return fiber.NewError(fiber.StatusBadRequest, "vendorId is required")
	}

	board, err := h.incentiveService.ComputeLeaderboard(c.UserContext(), vendorID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(board)
}

// MyMenu GET /api/vendor/menu-permissions
func (h *VendorHandler) MyMenu(c *fiber.Ctx) error {
	menu, err := h.menuService.AdminMenu(c.UserContext(), middleware.Principal(c).ID())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}

type adminMenuRequest struct {
	AdminUserID uuid.UUID       `json:"adminUserId"`
	Permissions map[string]bool `json:"permissions"`
}

// AdminMenu GET /api/super-admin/menu-permissions?adminUserId=
func (h *VendorHandler) AdminMenu(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("adminUserId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "adminUserId is required")
	}
	menu, err := h.menuService.AdminMenu(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}

// UpdateAdminMenu serves PUT on /api/super-admin/menu-permissions and /api/vendor/menu-permissions.
// Only super admins may write; adminUserId defaults to the caller.
func (h *VendorHandler) UpdateAdminMenu(c *fiber.Ctx) error {
	var req adminMenuRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p := middleware.Principal(c)
	target := req.AdminUserID
	if target == uuid.Nil {
		target = p.ID()
	}

	menu, err := h.menuService.UpdateAdminMenu(c.UserContext(), p, target, req.Permissions)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}

type hrMenuRequest struct {
	HrID        uuid.UUID       `json:"hrId" validate:"uuid_required"`
	Permissions map[string]bool `json:"permissions"`
}

// HrMenu GET /api/vendor/hr-permissions?hrId=
func (h *VendorHandler) HrMenu(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("hrId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "hrId is required")
	}
	menu, err := h.menuService.HrMenu(c.UserContext(), middleware.Principal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}

// UpdateHrMenu PUT /api/vendor/hr-permissions
func (h *VendorHandler) UpdateHrMenu(c *fiber.Ctx) error {
	var req hrMenuRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	menu, err := h.menuService.UpdateHrMenu(c.UserContext(), middleware.Principal(c), req.HrID, req.Permissions)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}
