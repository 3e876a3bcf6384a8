package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ngocminh-dev/tcms-api/api/swagger"
	"github.com/ngocminh-dev/tcms-api/internal/handler"
	"github.com/ngocminh-dev/tcms-api/internal/middleware"
	"github.com/ngocminh-dev/tcms-api/internal/repository"
	"github.com/ngocminh-dev/tcms-api/internal/service"
	"github.com/ngocminh-dev/tcms-api/pkg/cache"
	"github.com/ngocminh-dev/tcms-api/pkg/config"
	"github.com/ngocminh-dev/tcms-api/pkg/database"
	"github.com/ngocminh-dev/tcms-api/pkg/logger"
	corsmiddleware "github.com/ngocminh-dev/tcms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ngocminh-dev/tcms-api/pkg/middleware/requestid"
)

// @title Training Center Management API
// @version 1.0.0
// @description REST API for managing students, courses, enrollments and certificates
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Statistics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, statistics cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Statistics.CacheTTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, nil, logr)
	statsSvc := service.NewStatisticsService(statsRepo, cacheSvc, cfg.Statistics.CacheTTL, logr)
	certificateSvc := service.NewCertificateService(enrollmentRepo, courseRepo, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, statsSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, statsSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, certificateSvc, statsSvc)
	statsHandler := handler.NewStatisticsHandler(statsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/auth/me", authHandler.Me)

	staff := authed.Group("")
	staff.Use(middleware.RequireAdminOrStaff())
	{
		staff.GET("/students", studentHandler.List)
		staff.GET("/students/export", studentHandler.Export)
		staff.GET("/students/:id", studentHandler.Get)
		staff.POST("/students", studentHandler.Create)
		staff.PUT("/students/:id", studentHandler.Update)
		staff.GET("/students/:id/enrollments", enrollmentHandler.History)

		staff.GET("/courses", courseHandler.List)
		staff.GET("/courses/:id", courseHandler.Get)
		staff.POST("/courses", courseHandler.Create)
		staff.PUT("/courses/:id", courseHandler.Update)
		staff.DELETE("/courses/:id", courseHandler.Delete)

		staff.GET("/enrollments", enrollmentHandler.List)
		staff.POST("/enrollments", enrollmentHandler.Enroll)
		staff.GET("/enrollments/:id/certificate.pdf", enrollmentHandler.Certificate)

		staff.GET("/statistics/dashboard", statsHandler.Dashboard)
		staff.GET("/statistics/courses", statsHandler.Courses)
		staff.GET("/statistics/students-by-province", statsHandler.Provinces)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.DELETE("/students/:id", studentHandler.Delete)
		admin.PUT("/enrollments/:id/certificate", enrollmentHandler.IssueCertificate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
