package api

import (
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/domain" // Needed for RoleMiddleware
	"alcyxob/training-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger *zap.Logger,
	clk clock.Clock,
	checkInAward int,
	authService service.AuthService,
	traineeService service.TraineeService,
	ledgerService service.LedgerService,
	pointsService service.PointsService,
	certificateService service.CertificateService,
) {

	authHandler := NewAuthHandler(authService)
	traineeHandler := NewTraineeHandler(traineeService, pointsService, clk, checkInAward)
	ledgerHandler := NewLedgerHandler(ledgerService, clk)
	certificateHandler := NewCertificateHandler(certificateService)

	authMiddleware := AuthMiddleware(jwtSecret)
	router.Use(RequestLogger(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// The category enum consumed by the enrollment form.
		protected.GET("/categories", ledgerHandler.ListCategories)

		// --- Trainee Registry Routes ---
		traineeGroup := protected.Group("/trainees")
		{
			// Reads are open to both roles; a trainee account sees its own
			// records through the same endpoints.
			traineeGroup.GET("/:id", traineeHandler.GetTrainee)
			traineeGroup.GET("/:id/courses", traineeHandler.ListCourses)
			traineeGroup.GET("/:id/sessions", traineeHandler.ListSessions)
			traineeGroup.GET("/:id/checkins", traineeHandler.ListCheckIns)

			// Mutating intents require the staff role.
			traineeGroup.POST("", RoleMiddleware(domain.RoleStaff), traineeHandler.CreateTrainee)
			traineeGroup.GET("", RoleMiddleware(domain.RoleStaff), traineeHandler.ListTrainees)
			traineeGroup.POST("/:id/flags", RoleMiddleware(domain.RoleStaff), traineeHandler.FlagTrainee)
			traineeGroup.POST("/:id/checkins", RoleMiddleware(domain.RoleStaff), traineeHandler.CheckIn)
			traineeGroup.POST("/:id/courses", RoleMiddleware(domain.RoleStaff), ledgerHandler.CreateCourse)
			traineeGroup.POST("/:id/sessions", RoleMiddleware(domain.RoleStaff), ledgerHandler.CreateSession)
		}

		// --- Course Routes ---
		courseGroup := protected.Group("/courses")
		{
			courseGroup.PUT("/:id", RoleMiddleware(domain.RoleStaff), ledgerHandler.UpdateCourse)
			courseGroup.DELETE("/:id", RoleMiddleware(domain.RoleStaff), ledgerHandler.DeleteCourse)
			courseGroup.POST("/:id/complete", RoleMiddleware(domain.RoleStaff), ledgerHandler.CompleteCourse)

			// Completion certificates (presigned S3 uploads)
			courseGroup.POST("/:id/certificate/upload-url", RoleMiddleware(domain.RoleStaff), certificateHandler.RequestUploadURL)
			courseGroup.POST("/:id/certificate", RoleMiddleware(domain.RoleStaff), certificateHandler.ConfirmUpload)
			courseGroup.GET("/:id/certificate/download-url", certificateHandler.GetDownloadURL)
		}

		// --- Training Session Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.PUT("/:id", RoleMiddleware(domain.RoleStaff), ledgerHandler.UpdateSession)
			sessionGroup.DELETE("/:id", RoleMiddleware(domain.RoleStaff), ledgerHandler.DeleteSession)
			sessionGroup.POST("/:id/complete", RoleMiddleware(domain.RoleStaff), ledgerHandler.CompleteSession)
		}
	}
}
