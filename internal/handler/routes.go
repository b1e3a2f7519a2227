package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/model"
	"uhs-recruit/internal/service"
	"uhs-recruit/internal/ws"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Routes holds everything Register mounts.
type Routes struct {
	ServiceName string
	InternalKey string
	AuthService service.AuthService
	Hub         *ws.Hub
	Log         *logger.Logger

	Auth        *AuthHandler
	Statuses    *CandidateStatusHandler
	Candidates  *CandidateHandler
	Vendor      *VendorHandler
	Billing     *BillingHandler
	Uploads     *UploadHandler
	Dashboard   *DashboardHandler
	Locations   *LookupHandler[model.CustomLocation, *model.CustomLocation]
	OutletTypes *LookupHandler[model.OutletType, *model.OutletType]
	Positions   *LookupHandler[model.VendorPosition, *model.VendorPosition]
}

// Register mounts the HTTP API under /api plus the /ws dashboard feed.
func Register(app *fiber.App, r Routes) {
	session := middleware.RequireSession(r.AuthService, r.Log)
	admins := middleware.RequireRole(model.AdminRoles...)
	superAdmin := middleware.RequireRole(model.RoleSuperAdmin)

	health := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": r.ServiceName})
	}
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signup", r.Auth.Signup)
	auth.Post("/login", r.Auth.Login)
	auth.Post("/admin/login", r.Auth.AdminLogin)
	auth.Post("/session", middleware.RequireInternalKey(r.InternalKey), r.Auth.CreateSession)
	auth.Get("/session", r.Auth.GetSession)

	api.Post("/applications", r.Candidates.Apply)
	api.Post("/uploads", r.Uploads.Upload)
	api.Get("/cv/:token", r.Candidates.SharedCV)

	// ============ AUTHENTICATED ROUTES ============
	protected := api.Group("", session)

	protected.Get("/candidate-statuses", r.Statuses.List)
	protected.Post("/candidate-statuses", admins, r.Statuses.Create)
	protected.Put("/candidate-statuses/:id", admins, r.Statuses.Update)
	protected.Delete("/candidate-statuses/:id", admins, r.Statuses.Delete)

	// Open to user sessions too, so it sits ahead of the admin-only /vendor group.
	protected.Get("/vendor/incentives", r.Vendor.Incentives)

	// Candidates; the bulk paths must be registered before /:id.
	candidates := protected.Group("/candidates", admins)
	candidates.Get("/bulk-status", r.Candidates.Snapshots)
	candidates.Put("/bulk-status", r.Candidates.BulkStatus)
	candidates.Get("/bulk-date", r.Candidates.Snapshots)
	candidates.Put("/bulk-date", r.Candidates.BulkDate)
	candidates.Get("", r.Candidates.List)
	candidates.Post("", r.Candidates.Create)
	candidates.Get("/:id", r.Candidates.Get)
	candidates.Put("/:id/status", r.Candidates.UpdateStatus)
	candidates.Post("/:id/cv-link", r.Candidates.CreateCVLink)

	protected.Get("/dashboard/stats", admins, r.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/applications", admins, r.Dashboard.GetApplicationTrend)

	vendor := protected.Group("/vendor", admins)
	vendor.Get("/hrs", r.Vendor.ListHrs)
	vendor.Post("/hrs", r.Vendor.CreateHr)
	vendor.Put("/hrs/:id", r.Vendor.UpdateHr)
	vendor.Delete("/hrs/:id", r.Vendor.DeleteHr)
	vendor.Get("/hr-permissions", r.Vendor.HrMenu)
	vendor.Put("/hr-permissions", r.Vendor.UpdateHrMenu)
	vendor.Get("/menu-permissions", r.Vendor.MyMenu)
	vendor.Put("/menu-permissions", r.Vendor.UpdateAdminMenu)
	r.Locations.Mount(vendor, "/locations")
	r.OutletTypes.Mount(vendor, "/outlet-types")
	r.Positions.Mount(vendor, "/positions")

	payments := protected.Group("/payments", admins)
	payments.Get("", r.Billing.MyPayments)
	payments.Post("/create-order", r.Billing.CreateOrder)
	payments.Post("/verify", r.Billing.Verify)

	super := protected.Group("/super-admin", superAdmin)
	super.Get("/vendors", r.Billing.ListVendors)
	super.Post("/vendors", r.Billing.CreateVendor)
	super.Get("/stats", r.Billing.Stats)
	super.Get("/payments", r.Billing.AllPayments)
	super.Get("/menu-permissions", r.Vendor.AdminMenu)
	super.Put("/menu-permissions", r.Vendor.UpdateAdminMenu)

	// WebSocket dashboard feed; browsers pass the session as ?token=
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", session, admins, websocket.New(func(c *websocket.Conn) {
		if !r.Hub.Attach(c) {
			return
		}
		defer r.Hub.Detach(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
