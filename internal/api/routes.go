package api

import (
	"net/http"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Auth           service.AuthService
	Exercise       service.ExerciseService
	Routine        service.RoutineService
	Progress       service.ProgressService
	Recommendation service.RecommendationService
	Admin          service.AdminService
	Stats          service.StatsService
}

// RouterOptions carries the optional parts of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics enables request metrics. MetricsHandler, when set, is served on /metrics.
	Metrics        *metrics.Manager
	MetricsHandler http.Handler
	// LoginLimiter guards POST /api/auth/login when set.
	LoginLimiter gin.HandlerFunc
	// VideoUploads registers the presigned upload route.
	VideoUploads bool
}

// Role allow-lists shared by the routes below.
var (
	members    = []domain.Role{domain.RoleStudent, domain.RoleColaborador}
	staff      = []domain.Role{domain.RoleTrainer, domain.RoleAdmin}
	everyone   = []domain.Role{domain.RoleStudent, domain.RoleColaborador, domain.RoleTrainer, domain.RoleAdmin}
	adminsOnly = []domain.Role{domain.RoleAdmin}
)

func SetupRoutes(router *gin.Engine, services Services, opts RouterOptions) {
	router.Use(RequestLogger(), Recovery())
	if opts.Metrics != nil {
		router.Use(RequestMetrics(opts.Metrics))
	}
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(routeNotFound)
	router.NoMethod(methodNotAllowed)

	authHandler := NewAuthHandler(services.Auth, opts.Metrics)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	routineHandler := NewRoutineHandler(services.Routine, opts.Metrics)
	progressHandler := NewProgressHandler(services.Progress)
	recHandler := NewRecommendationHandler(services.Recommendation)
	adminHandler := NewAdminHandler(services.Admin, opts.Metrics)
	statsHandler := NewStatsHandler(services.Stats)

	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginChain := []gin.HandlerFunc{}
	if opts.LoginLimiter != nil {
		loginChain = append(loginChain, opts.LoginLimiter)
	}
	loginChain = append(loginChain, authHandler.Login)
	api.POST("/auth/login", loginChain...)

	protected := api.Group("")
	protected.Use(AuthMiddleware(services.Auth))
	{
		protected.GET("/me", authHandler.Me)

		exercises := protected.Group("/exercises")
		{
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.POST("", RoleMiddleware(staff...), exerciseHandler.CreateExercise)
			exercises.PUT("/:id", RoleMiddleware(staff...), exerciseHandler.UpdateExercise)
			exercises.DELETE("/:id", RoleMiddleware(staff...), exerciseHandler.DeleteExercise)
			if opts.VideoUploads {
				exercises.POST("/:id/video-upload", RoleMiddleware(staff...), exerciseHandler.RequestVideoUpload)
			}
		}

		routines := protected.Group("/routines")
		{
			routines.GET("", routineHandler.ListRoutines)
			routines.POST("", RoleMiddleware(everyone...), routineHandler.CreateRoutine)
			routines.POST("/:id/adopt", RoleMiddleware(members...), routineHandler.AdoptRoutine)
		}

		progress := protected.Group("/progress")
		{
			progress.GET("", progressHandler.ListProgress)
			progress.POST("", RoleMiddleware(members...), progressHandler.CreateProgress)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/users/:userId", statsHandler.UserStats)
			stats.GET("/instructors/:instructorId", RoleMiddleware(staff...), statsHandler.InstructorStats)
		}

		recs := protected.Group("/recommendations")
		{
			recs.GET("", RoleMiddleware(everyone...), recHandler.ListRecommendations)
			recs.POST("", RoleMiddleware(staff...), recHandler.CreateRecommendation)
		}

		admin := protected.Group("/admin")
		admin.Use(RoleMiddleware(adminsOnly...))
		{
			admin.POST("/assign", adminHandler.AssignTrainer)
			admin.GET("/assignments", adminHandler.ListAssignments)
		}

		protected.GET("/trainer/trainees", RoleMiddleware(staff...), adminHandler.ListTrainees)
	}
}
