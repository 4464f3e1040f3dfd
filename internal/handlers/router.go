package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

const serviceName = "testing-service"

type HandlerManager struct {
	serviceManager   services.ServiceManager
	authHandler      *AuthHandler
	adminHandler     *AdminHandler
	teacherHandler   *TeacherHandler
	studentHandler   *StudentHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *AuthMiddleware
	logger           utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:   serviceManager,
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		adminHandler:     NewAdminHandler(serviceManager.Admin(), logger),
		teacherHandler:   NewTeacherHandler(serviceManager.Teacher(), serviceManager.Export(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewAuthMiddleware(serviceManager.Auth()),
		logger:           logger,
	}
}

// SetupRoutes mounts every API group under prefix plus the unprefixed health check
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, prefix string) {
	api := router.Group(prefix)
	requireAuth := hm.authMiddleware.Authenticate()

	// Auth routes - registration of teachers and login are public
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register-teacher", hm.authHandler.RegisterTeacher)
		authGroup.POST("/login", hm.authHandler.Login)
		authGroup.POST("/register-student", requireAuth, hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.authHandler.RegisterStudent)
	}

	// Admin routes - super-admin only
	admin := api.Group("/admin")
	admin.Use(requireAuth, hm.authMiddleware.RequireRoleMiddleware(models.RoleSuperAdmin))
	{
		admin.GET("/teachers", hm.adminHandler.ListTeachers)
		admin.POST("/teachers", hm.adminHandler.CreateTeacher)
		admin.PUT("/teachers/:id/deactivate", hm.adminHandler.DeactivateTeacher)
		admin.GET("/stats", hm.adminHandler.GetStats)
	}

	// Teacher routes - teachers only
	teacher := api.Group("/teacher")
	teacher.Use(requireAuth, hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
	{
		teacher.GET("/students", hm.teacherHandler.ListStudents)
		teacher.POST("/tests", hm.teacherHandler.CreateTest)
		teacher.GET("/tests", hm.teacherHandler.ListTests)
		teacher.GET("/tests/:testId/submissions", hm.teacherHandler.ListSubmissions)
		teacher.GET("/tests/:testId/submissions/export", hm.teacherHandler.ExportSubmissions)
		teacher.PUT("/submissions/:id/grade", hm.teacherHandler.GradeSubmission)
		teacher.GET("/dashboard-stats", hm.dashboardHandler.GetTeacherStats)
	}

	// Student routes - students only
	student := api.Group("/student")
	student.Use(requireAuth, hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
	{
		student.GET("/tests", hm.studentHandler.GetAssignedTests)
		student.POST("/tests/:testId/submit", hm.studentHandler.SubmitTest)
		student.GET("/submissions", hm.studentHandler.GetSubmissions)
		student.GET("/dashboard-stats", hm.dashboardHandler.GetStudentStats)
	}

	router.GET("/health", hm.healthCheck)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		hm.logger.Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
