package main

import (
	"errors"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/auth"
	"github.com/avencia/company-cms-api/internal/config"
	"github.com/avencia/company-cms-api/internal/database"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/handlers"
	"github.com/avencia/company-cms-api/internal/logger"
	"github.com/avencia/company-cms-api/internal/middleware"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apierrors.SetProduction(cfg.IsProduction())

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		zapLogger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	jobRepo := repository.NewJobRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	contentRepo := repository.NewContentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Services
	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenManager, cfg.EffectiveBcryptCost())
	blogService := services.NewBlogService(blogRepo)
	jobService := services.NewJobService(jobRepo)
	newsletterService := services.NewNewsletterService(newsletterRepo)
	contentService := services.NewContentService(contentRepo)

	if err := seedAdminUser(db, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	blogHandler := handlers.NewBlogHandler(blogService)
	jobHandler := handlers.NewJobHandler(jobService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	contentHandler := handlers.NewContentHandler(contentService)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	limiter := middleware.NewMemoryRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Company CMS API is running",
		})
	})

	// Uploaded files are served back statically under a predictable prefix.
	r.Static("/uploads", cfg.UploadDir)

	audit := func(action, entityType, idParam string) gin.HandlerFunc {
		return middleware.Audit(activityRepo, zapLogger, action, entityType, idParam)
	}

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", middleware.RequireAuth(tokenManager), authHandler.GetCurrentUser)

			users := authGroup.Group("/users", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleAdmin))
			{
				users.GET("", authHandler.ListUsers)
				users.POST("", audit("user.create", "user", ""), authHandler.CreateUser)
				users.PUT("/:id", audit("user.update", "user", "id"), authHandler.UpdateUser)
				users.DELETE("/:id", audit("user.deactivate", "user", "id"), authHandler.DeactivateUser)
			}
		}

		// Blog routes
		blog := api.Group("/blog")
		{
			blog.GET("", blogHandler.ListPublished)

			admin := blog.Group("/admin", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleEditor))
			{
				admin.GET("", blogHandler.ListAll)
				admin.GET("/stats", blogHandler.Stats)
				admin.GET("/:id", blogHandler.Get)
			}

			blog.POST("", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleEditor),
				audit("blog.create", "blog_post", ""), blogHandler.Create)
			blog.PUT("/:id", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleEditor),
				audit("blog.update", "blog_post", "id"), blogHandler.Update)
			blog.DELETE("/:id", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleEditor),
				audit("blog.delete", "blog_post", "id"), blogHandler.Delete)

			blog.GET("/:slug", middleware.OptionalAuth(tokenManager), blogHandler.GetBySlug)
		}

		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListOpen)

			admin := jobs.Group("/admin", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleHR))
			{
				admin.GET("", jobHandler.ListAll)
				admin.GET("/stats", jobHandler.Stats)
			}

			apps := jobs.Group("/applications", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleHR))
			{
				apps.GET("", jobHandler.ListApplications)
				apps.PATCH("/:id/status", audit("application.status", "job_application", "id"), jobHandler.UpdateApplicationStatus)
			}

			jobs.POST("", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleHR),
				audit("job.create", "job_offer", ""), jobHandler.CreateOffer)
			jobs.PUT("/:id", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleHR),
				audit("job.update", "job_offer", "id"), jobHandler.UpdateOffer)
			jobs.DELETE("/:id", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleHR),
				audit("job.delete", "job_offer", "id"), jobHandler.DeleteOffer)

			jobs.GET("/:id", jobHandler.GetOffer)
			jobs.POST("/:id/apply", middleware.RateLimit(limiter), jobHandler.Apply)
		}

		// Newsletter routes
		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", middleware.RateLimit(limiter), newsletterHandler.Subscribe)
			newsletter.GET("/confirm/:token", newsletterHandler.Confirm)
			newsletter.GET("/unsubscribe/:token", newsletterHandler.Unsubscribe)
			newsletter.GET("/subscribers", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleAdmin),
				newsletterHandler.ListSubscribers)
		}

		// Site content routes
		content := api.Group("/content")
		{
			content.GET("/:section", contentHandler.GetSection)
			content.PUT("", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleEditor),
				audit("content.upsert", "site_content", ""), contentHandler.Upsert)
		}

		// Audit trail
		api.GET("/activity", middleware.RequireAuth(tokenManager), middleware.RequireRoles(models.RoleAdmin),
			activityHandler.List)

		// File uploads
		api.POST("/uploads", middleware.RequireAuth(tokenManager), uploadHandler.Upload)
	}

	// Start server
	zapLogger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedAdminUser creates the initial admin account when the users table is
// empty, so a fresh deployment can be logged into. Credentials come from
// ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdminUser(db *gorm.DB, cfg *config.Config, zapLogger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		if cfg.IsProduction() {
			return errors.New("ADMIN_PASSWORD must be set for the initial admin user")
		}
		password = "ChangeMe123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.EffectiveBcryptCost())
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     envOr("ADMIN_USERNAME", "admin"),
		Email:        envOr("ADMIN_EMAIL", "admin@example.com"),
		PasswordHash: string(hash),
		Roles:        models.StringList{string(models.RoleAdmin)},
		Active:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	zapLogger.Info("Seeded initial admin user", zap.String("username", admin.Username))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
