package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/config"
	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/middleware"
	"pkfit.com.br/pkfitsystem/pkg/storage"
	"pkfit.com.br/pkfitsystem/pkg/token"

	authHttp "pkfit.com.br/pkfitsystem/internal/modules/auth/delivery/http"
	authService "pkfit.com.br/pkfitsystem/internal/modules/auth/service"

	academyHttp "pkfit.com.br/pkfitsystem/internal/modules/academy/delivery/http"
	academyRepo "pkfit.com.br/pkfitsystem/internal/modules/academy/repository"
	academyService "pkfit.com.br/pkfitsystem/internal/modules/academy/service"

	userHttp "pkfit.com.br/pkfitsystem/internal/modules/user/delivery/http"
	userRepo "pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	userService "pkfit.com.br/pkfitsystem/internal/modules/user/service"

	dashboardHttp "pkfit.com.br/pkfitsystem/internal/modules/dashboard/delivery/http"
	dashboardService "pkfit.com.br/pkfitsystem/internal/modules/dashboard/service"

	requestRepo "pkfit.com.br/pkfitsystem/internal/modules/request/repository"
	workoutRepo "pkfit.com.br/pkfitsystem/internal/modules/workout/repository"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logoStorage storage.ImageStorage) *Server {
	users := userRepo.NewUserRepository(db)
	academies := academyRepo.NewAcademyRepository(db)
	workouts := workoutRepo.NewWorkoutRepository(db)
	requests := requestRepo.NewRequestRepository(db)

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTTTL)

	authSvc := authService.NewAuthService(users, tokens)
	authHandler := authHttp.NewAuthHandler(authSvc)

	academySvc := academyService.NewAcademyService(academies, users)
	academyHandler := academyHttp.NewAcademyHandler(academySvc)

	userSvc := userService.NewUserService(users, academies)
	userHandler := userHttp.NewUserHandler(userSvc)

	dashboardSvc := dashboardService.NewDashboardService(users, academies, workouts, requests, redisClient, logoStorage)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	authMiddleware := middleware.NewAuthMiddleware(users, tokens)
	authLimiter := middleware.AuthRateLimit(redisClient, cfg.AuthRateLimit, cfg.AuthRateWindow)

	api := router.Group("/api")
	api.Use(middleware.RateLimit(redisClient, "api", cfg.APIRateLimit, cfg.APIRateWindow))

	auth := api.Group("/auth")
	{
		auth.POST("/check-email", authLimiter, authHandler.CheckEmail)
		auth.POST("/create-password", authLimiter, authHandler.CreatePassword)
		auth.POST("/login", authLimiter, authHandler.Login)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		auth.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
	}

	academiesGroup := api.Group("/academies")
	academiesGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(entity.RoleAdminGlobal))
	{
		academiesGroup.GET("", academyHandler.List)
		academiesGroup.GET("/:id", academyHandler.Get)
		academiesGroup.POST("", academyHandler.Create)
		academiesGroup.PUT("/:id", academyHandler.Update)
		academiesGroup.DELETE("/:id", academyHandler.Delete)
	}

	usersGroup := api.Group("/users")
	usersGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(entity.RoleAdminGlobal))
	{
		usersGroup.GET("", userHandler.List)
		usersGroup.POST("", userHandler.Create)
		usersGroup.PUT("/:id", userHandler.Update)
		usersGroup.DELETE("/:id", userHandler.Delete)
	}

	dashboard := api.Group("/academy-dashboard")
	dashboard.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(entity.RoleAdminAcademia))
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/activity", dashboardHandler.Activity)

		dashboard.GET("/users", dashboardHandler.ListMembers)
		dashboard.POST("/users", dashboardHandler.CreateMember)
		dashboard.PUT("/users/:id", dashboardHandler.UpdateMember)
		dashboard.DELETE("/users/:id", dashboardHandler.DeleteMember)
		dashboard.GET("/professors", dashboardHandler.ListProfessors)

		dashboard.GET("/workouts", dashboardHandler.ListWorkouts)
		dashboard.POST("/workouts", dashboardHandler.CreateWorkout)
		dashboard.PUT("/workouts/:id", dashboardHandler.UpdateWorkout)
		dashboard.DELETE("/workouts/:id", dashboardHandler.DeleteWorkout)

		dashboard.GET("/requests", dashboardHandler.ListRequests)
		dashboard.PUT("/requests/:id", dashboardHandler.ProcessRequest)

		dashboard.GET("/academy", dashboardHandler.GetAcademy)
		dashboard.PUT("/academy", dashboardHandler.UpdateAcademy)
		dashboard.POST("/academy/logo", dashboardHandler.UploadLogo)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
