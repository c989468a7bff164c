package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/eduflow-api/api/swagger"
	"github.com/noah-isme/eduflow-api/internal/handler"
	"github.com/noah-isme/eduflow-api/internal/middleware"
	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/repository"
	"github.com/noah-isme/eduflow-api/internal/service"
	"github.com/noah-isme/eduflow-api/pkg/cache"
	"github.com/noah-isme/eduflow-api/pkg/config"
	"github.com/noah-isme/eduflow-api/pkg/database"
	"github.com/noah-isme/eduflow-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/eduflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/eduflow-api/pkg/middleware/requestid"
)

// @title EduFlow API
// @version 1.0.0
// @description Role-scoped academic information system
// @BasePath /api/v1
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	legendRepo := repository.NewLegendRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "eduflow-api",
	})
	departmentService := service.NewDepartmentService(departmentRepo, legendRepo, logr)
	studentService := service.NewStudentService(studentRepo, validate, logr)
	teacherService := service.NewTeacherService(teacherRepo, validate, logr)
	timetableService := service.NewTimetableService(timetableRepo, logr)
	activityService := service.NewActivityService(activityRepo, validate, logr)
	attendanceService := service.NewAttendanceService(attendanceRepo, logr)
	dashboardService := service.NewDashboardService(studentRepo, teacherRepo, departmentRepo, attendanceRepo, cacheService, cfg.Dashboard.CacheTTL, logr)
	reportService := service.NewReportService(activityService, teacherService, cfg.Reports.MaxRows, logr)

	authHandler := handler.NewAuthHandler(authService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	studentHandler := handler.NewStudentHandler(studentService, dashboardService)
	teacherHandler := handler.NewTeacherHandler(teacherService, dashboardService)
	timetableHandler := handler.NewTimetableHandler(timetableService)
	activityHandler := handler.NewActivityHandler(activityService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, metricsService)
	reportHandler := handler.NewReportHandler(reportService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

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

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authService), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))
	{
		protected.GET("/departments", departmentHandler.List)
		protected.GET("/departments/:code", departmentHandler.Get)
		protected.GET("/subject-legends", departmentHandler.Legends)

		protected.GET("/students", studentHandler.List)
		protected.GET("/students/:id", studentHandler.Get)
		protected.GET("/teachers", teacherHandler.List)
		protected.GET("/teachers/:id", teacherHandler.Get)

		protected.GET("/timetable", timetableHandler.List)
		protected.GET("/class-activities", activityHandler.List)
		protected.GET("/class-activities/instructors", activityHandler.Instructors)
		protected.GET("/department-attendance", attendanceHandler.List)

		protected.GET("/dashboard/stats", dashboardHandler.Stats)

		protected.GET("/reports/activities", reportHandler.Activities)
		protected.GET("/reports/staff-coverage", reportHandler.StaffCoverage)
	}

	directoryAdmin := api.Group("")
	directoryAdmin.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin, models.RoleHOD))
	{
		directoryAdmin.POST("/students", studentHandler.Create)
		directoryAdmin.PUT("/students/:id", studentHandler.Update)
		directoryAdmin.DELETE("/students/:id", studentHandler.Delete)
		directoryAdmin.POST("/teachers", teacherHandler.Create)
		directoryAdmin.PUT("/teachers/:id", teacherHandler.Update)
		directoryAdmin.DELETE("/teachers/:id", teacherHandler.Delete)
	}

	activityWriters := api.Group("")
	activityWriters.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin, models.RoleClassCoordinator, models.RoleSubjectIncharge))
	{
		activityWriters.POST("/class-activities", activityHandler.Create)
		activityWriters.DELETE("/class-activities/:id", activityHandler.Delete)
	}

	adminOnly := api.Group("")
	adminOnly.Use(middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	{
		adminOnly.GET("/dashboard/system-metrics", dashboardHandler.SystemMetrics)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
