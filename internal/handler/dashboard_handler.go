package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(s service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetApplicationTrend returns daily candidate inflow for charts
// Query params: days (default 7, max 90)
func (h *DashboardHandler) GetApplicationTrend(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	data, err := h.service.GetApplicationTrend(c.UserContext(), middleware.Principal(c), days)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stats)
}
