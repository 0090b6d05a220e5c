package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucDiscount "github.com/BruksfildServices01/barber-booking/internal/usecase/discount"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Deps are the process-wide singletons the routes are built on.
type Deps struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache cache.Cache
	Audit *audit.Dispatcher
	Clock timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORSMiddleware(d.Cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	discountRepo := infraRepo.NewDiscountGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)

	catalog := ucDiscount.NewCatalog(discountRepo, d.Cache, d.Cfg.DiscountCacheTTL)
	ledger := ucDiscount.NewLedger(d.Cfg.CurrencyPrecision)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewCreateBooking(bookingRepo, catalog, ledger, d.Audit, d.Clock, d.Cfg.MinAdvance),
		ucBooking.NewTransitionBooking(bookingRepo, d.Audit, d.Clock),
		ucBooking.NewGetBooking(bookingRepo),
		ucBooking.NewListBookingsByDate(bookingRepo, d.Clock),
		ucBooking.NewListBookingsByMonth(bookingRepo, d.Clock),
		d.Clock,
	)

	// ======================================================
	// USE CASES — SCHEDULES
	// ======================================================
	scheduleHandler := handlers.NewScheduleHandler(
		ucSchedule.NewSetWeeklySchedule(scheduleRepo, d.Audit),
		ucSchedule.NewListWeeklySchedule(scheduleRepo),
		ucSchedule.NewCreateTimeOff(scheduleRepo, d.Audit),
		ucSchedule.NewDeleteTimeOff(scheduleRepo, d.Audit),
		ucSchedule.NewListTimeOff(scheduleRepo),
		ucSchedule.NewCheckAvailability(scheduleRepo, d.Clock),
		ucSchedule.NewGetAvailability(scheduleRepo, bookingRepo, d.Clock),
	)

	// ======================================================
	// USE CASES — DISCOUNTS
	// ======================================================
	discountHandler := handlers.NewDiscountHandler(handlers.DiscountUseCases{
		Create: ucDiscount.NewCreateDiscount(discountRepo, catalog, d.Audit),
		Update: ucDiscount.NewUpdateDiscount(discountRepo, catalog, d.Audit),
		Toggle: ucDiscount.NewToggleDiscount(discountRepo, catalog, d.Audit),
		Delete: ucDiscount.NewDeleteDiscount(discountRepo, catalog, d.Audit),
		Assign: ucDiscount.NewAssignToCustomer(discountRepo, d.Audit),
		List:   ucDiscount.NewListDiscounts(discountRepo),
		Get:    ucDiscount.NewGetDiscount(discountRepo),
		Usages: ucDiscount.NewListUsages(discountRepo),
		Check:  ucDiscount.NewCheckDiscount(discountRepo, catalog, bookingRepo, d.Clock, d.Cfg.CurrencyPrecision),
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg.JWTSecret, d.Audit)
	meHandler := handlers.NewMeHandler(d.DB)
	userHandler := handlers.NewUserHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)

	auth := middleware.AuthMiddleware(d.Cfg.JWTSecret)
	staff := middleware.RequireRole(models.RoleBarber, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	barberOnly := middleware.RequireRole(models.RoleBarber)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/categories", serviceHandler.ListCategories)
		api.GET("/barbers", userHandler.ListBarbers)
		api.GET("/barbers/:barberID/availability", scheduleHandler.Slots)
		api.GET("/barbers/:barberID/availability/check", scheduleHandler.Check)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListByDate)
			secured.GET("/bookings/month", bookingHandler.ListByMonth)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id/status", bookingHandler.Transition)

			secured.POST("/discounts/check", discountHandler.Check)

			secured.GET("/customers", staff, userHandler.ListCustomers)
		}

		// ------------------------------
		// BARBER (own schedule)
		// ------------------------------
		me := api.Group("/me")
		me.Use(auth, barberOnly)
		{
			me.GET("/schedule", scheduleHandler.GetWeek)
			me.PUT("/schedule", scheduleHandler.SetWeek)
			me.GET("/time-off", scheduleHandler.ListTimeOff)
			me.POST("/time-off", scheduleHandler.CreateTimeOff)
			me.DELETE("/time-off/:id", scheduleHandler.DeleteTimeOff)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(auth, adminOnly)
		{
			admin.POST("/users", authHandler.CreateUser)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.POST("/categories", serviceHandler.CreateCategory)

			admin.GET("/barbers/:barberID/schedule", scheduleHandler.GetWeek)
			admin.PUT("/barbers/:barberID/schedule", scheduleHandler.SetWeek)
			admin.GET("/barbers/:barberID/time-off", scheduleHandler.ListTimeOff)
			admin.POST("/barbers/:barberID/time-off", scheduleHandler.CreateTimeOff)
			admin.DELETE("/barbers/:barberID/time-off/:id", scheduleHandler.DeleteTimeOff)

			admin.GET("/discounts", discountHandler.List)
			admin.POST("/discounts", discountHandler.Create)
			admin.GET("/discounts/:id", discountHandler.Get)
			admin.PUT("/discounts/:id", discountHandler.Update)
			admin.PATCH("/discounts/:id/toggle", discountHandler.Toggle)
			admin.DELETE("/discounts/:id", discountHandler.Delete)
			admin.POST("/discounts/:id/assign", discountHandler.Assign)
			admin.GET("/discounts/:id/usages", discountHandler.Usages)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
