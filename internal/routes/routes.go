package routes

import (
	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/handlers"
	"clinic-booking-server/internal/mailer"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	mail := mailer.New(cfg.SMTP)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, mail)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, mail)
	rosterHandler := handlers.NewRosterHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	dropdownHandler := handlers.NewDropdownHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
			authRoutes.GET("/verify-email", authHandler.VerifyEmail)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("/doctors", userHandler.GetDoctors)
			userRoutes.GET("/patients", userHandler.GetPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSuperAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Booking routes, on the route names the front-end consumes
		{
			private.POST("/create-app", appointmentHandler.CreateAppointment)
			private.POST("/cancel-app", appointmentHandler.CancelAppointment)
			private.POST("/resche-app", appointmentHandler.RescheduleAppointment)
			private.PUT("/updateStatus", appointmentHandler.UpdateAppointmentStatus)
			private.POST("/delete-app",
				middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSuperAdmin),
				appointmentHandler.DeleteAppointment)
			private.POST("/bookedSlot", appointmentHandler.GetBookedTimeSlot)
			private.GET("/appointment", appointmentHandler.GetAllAppointments)

			private.POST("/scheduledPtns", rosterHandler.GetScheduledPatients)
			private.POST("/nonSchPtns", rosterHandler.GetNonScheduledPatients)
			private.POST("/searchBooking", rosterHandler.SearchBookingDetails)
		}

		// Patient record-keeping routes
		{
			private.GET("/patient/:userId", patientHandler.GetPatientDetails)
			private.POST("/savedCaseHistory",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin),
				patientHandler.SaveCaseHistory)
			private.POST("/caseHistories", patientHandler.GetCaseHistories)
			private.POST("/patientInfo",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin),
				patientHandler.UpsertPatientInfo)
		}

		// Dropdown lookup routes
		dropdownRoutes := private.Group("/dropdown")
		{
			dropdownRoutes.GET("/countries", dropdownHandler.GetCountries)
			dropdownRoutes.GET("/medicines", dropdownHandler.GetMedicines)

			adminDropdown := dropdownRoutes.Group("")
			adminDropdown.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSuperAdmin))
			{
				adminDropdown.POST("/countries", dropdownHandler.CreateCountry)
				adminDropdown.POST("/medicines", dropdownHandler.CreateMedicine)
			}
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
