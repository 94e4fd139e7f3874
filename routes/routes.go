package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/config"
	"hotel-ops/controllers"
	"hotel-ops/middleware"
	"hotel-ops/models"
)

// Handlers bundles the controllers the router dispatches to.
type Handlers struct {
	Auth         *controllers.AuthController
	Rooms        *controllers.RoomController
	Bookings     *controllers.BookingController
	Availability *controllers.AvailabilityController
	Cleaning     *controllers.CleaningController
	Owners       *controllers.OwnerController
	Expenses     *controllers.ExpenseController
	Users        *controllers.UserController
	Roles        *controllers.RoleController
	Settings     *controllers.SettingsController
	Dashboard    *controllers.DashboardController
	OwnerPortal  *controllers.OwnerPortalController
	Audit        *controllers.AuditController
}

func SetupRouter(cfg config.Config, log *zap.Logger, auth middleware.Authenticator, h Handlers) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(log), middleware.Recovery(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: cfg.AllowCredentials(),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/owner/login", h.Auth.OwnerLogin)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", middleware.Auth(auth), h.Auth.Me)
	}

	secured := api.Group("", middleware.Auth(auth))
	perm := middleware.RequirePermission

	rooms := secured.Group("/rooms")
	{
		rooms.GET("", perm(models.PermViewRooms, models.PermManageRooms), h.Rooms.List)
		rooms.GET("/:id", perm(models.PermViewRooms, models.PermManageRooms), h.Rooms.Get)
		rooms.POST("", perm(models.PermManageRooms), h.Rooms.Create)
		rooms.PUT("/:id", perm(models.PermManageRooms), h.Rooms.Update)
		rooms.PATCH("/:id/status", perm(models.PermManageRooms, models.PermUpdateCleaningStatus), h.Rooms.UpdateStatus)
		rooms.DELETE("/:id", perm(models.PermManageRooms), h.Rooms.Delete)
	}
	secured.GET("/properties", perm(models.PermViewProperties, models.PermManageProperties, models.PermViewRooms), h.Rooms.Properties)

	bookings := secured.Group("/bookings")
	{
		view := perm(models.PermViewBookings, models.PermManageBookings)
		manage := perm(models.PermManageBookings)

		// static paths ahead of /:id
		bookings.GET("/today/checkins", view, h.Bookings.TodayCheckIns)
		bookings.GET("/today/checkouts", view, h.Bookings.TodayCheckOuts)
		bookings.GET("/recent", view, h.Bookings.Recent)
		bookings.GET("/export", perm(models.PermViewReports, models.PermManageBookings), h.Bookings.Export)

		bookings.GET("", view, h.Bookings.List)
		bookings.GET("/:id", view, h.Bookings.Get)
		bookings.POST("", manage, h.Bookings.Create)
		bookings.PUT("/:id", manage, h.Bookings.Update)
		bookings.PATCH("/:id/status", manage, h.Bookings.UpdateStatus)
		bookings.DELETE("/:id", manage, h.Bookings.Delete)
	}

	avail := secured.Group("/availability", perm(models.PermViewRooms, models.PermViewBookings, models.PermManageBookings))
	{
		avail.GET("", h.Availability.Query)
		avail.GET("/day", h.Availability.Day)
		avail.GET("/rooms/:id", h.Availability.Room)
	}

	cleaning := secured.Group("/cleaning")
	{
		cleaning.GET("", perm(models.PermViewCleaningStatus, models.PermUpdateCleaningStatus), h.Cleaning.List)
		cleaning.PATCH("/:roomId", perm(models.PermUpdateCleaningStatus), h.Cleaning.Update)
	}

	owners := secured.Group("/owners")
	{
		view := perm(models.PermViewOwners, models.PermManageOwners)
		manage := perm(models.PermManageOwners)

		owners.GET("", view, h.Owners.List)
		owners.GET("/:id", view, h.Owners.Get)
		owners.GET("/:id/rooms", view, h.Owners.Rooms)
		owners.POST("", manage, h.Owners.Create)
		owners.POST("/:id/rooms", manage, h.Owners.AssignRoom)
		owners.PUT("/:id", manage, h.Owners.Update)
		owners.DELETE("/:id", manage, h.Owners.Delete)
	}

	expenses := secured.Group("/expenses")
	{
		view := perm(models.PermViewExpenses, models.PermManageExpenses)
		manage := perm(models.PermManageExpenses)

		expenses.GET("/export", perm(models.PermViewReports, models.PermManageExpenses), h.Expenses.Export)
		expenses.GET("", view, h.Expenses.List)
		expenses.GET("/:id", view, h.Expenses.Get)
		expenses.GET("/:id/related", view, h.Expenses.Related)
		expenses.POST("", manage, h.Expenses.Create)
		expenses.PUT("/:id", manage, h.Expenses.Update)
		expenses.DELETE("/:id", manage, h.Expenses.Delete)
	}

	users := secured.Group("/users")
	{
		view := perm(models.PermViewUsers, models.PermManageUsers, models.PermManageStaff)
		manage := perm(models.PermManageUsers, models.PermManageStaff)

		users.GET("", view, h.Users.List)
		users.GET("/:id", view, h.Users.Get)
		users.POST("", manage, h.Users.Create)
		users.PUT("/:id", manage, h.Users.Update)
		users.DELETE("/:id", manage, h.Users.Delete)
	}

	roles := secured.Group("/roles")
	{
		roles.GET("", perm(models.PermManageRoles, models.PermViewUsers), h.Roles.List)
		roles.POST("", perm(models.PermManageRoles), h.Roles.Create)
		roles.PUT("/:id/permissions", perm(models.PermManageRoles), h.Roles.UpdatePermissions)
	}
	secured.GET("/permissions", perm(models.PermManageRoles), h.Roles.Permissions)

	dashboard := secured.Group("/dashboard", perm(models.PermViewReports, models.PermViewBookings, models.PermManageBookings))
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/occupancy", h.Dashboard.Occupancy)
	}

	settings := secured.Group("/settings")
	{
		settings.GET("/hotel", perm(models.PermViewSettings, models.PermManageSettings), h.Settings.GetHotel)
		settings.PUT("/hotel", perm(models.PermManageSettings), h.Settings.UpdateHotel)
	}

	secured.GET("/audit-logs", perm(models.PermViewAuditLogs), h.Audit.List)

	owner := secured.Group("/owner", middleware.OwnerOnly())
	{
		owner.GET("/dashboard", h.OwnerPortal.DashboardView)
		owner.GET("/rooms", h.OwnerPortal.Rooms)
		owner.GET("/availability", h.OwnerPortal.AvailabilityView)
		owner.GET("/availability/day", h.OwnerPortal.Day)
		owner.GET("/cleaning", h.OwnerPortal.CleaningView)
		owner.GET("/bookings", h.OwnerPortal.BookingsView)
	}

	return r
}
