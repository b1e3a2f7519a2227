package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler serves Razorpay payments and the super admin platform views.
type BillingHandler struct {
	paymentService service.PaymentService
	vendorService  service.VendorService
	log            *logger.Logger
}

func NewBillingHandler(paymentService service.PaymentService, vendorService service.VendorService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{paymentService: paymentService, vendorService: vendorService, log: log}
}

// CreateOrder POST /api/payments/create-order
func (h *BillingHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.paymentService.CreateOrder(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(res)
}

// Verify POST /api/payments/verify
func (h *BillingHandler) Verify(c *fiber.Ctx) error {
	var req service.VerifyPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.Verify(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// MyPayments GET /api/payments
func (h *BillingHandler) MyPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListMine(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": payments})
}

// AllPayments GET /api/super-admin/payments
func (h *BillingHandler) AllPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListAll(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": payments})
}

// CreateVendor POST /api/super-admin/vendors
func (h *BillingHandler) CreateVendor(c *fiber.Ctx) error {
	var req service.CreateVendorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	vendor, err := h.vendorService.CreateVendor(c.UserContext(), middleware.Principal(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": vendor})
}

// ListVendors GET /api/super-admin/vendors
func (h *BillingHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.vendorService.ListVendors(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": vendors})
}

// Stats GET /api/super-admin/stats
func (h *BillingHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.vendorService.Stats(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stats)
}
