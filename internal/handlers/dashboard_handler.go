package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

// DashboardHandler serves the per-role counters of the caller
type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetTeacherStats returns the calling teacher's counters
// @Summary Teacher dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.TeacherDashboardStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /teacher/dashboard-stats [get]
func (h *DashboardHandler) GetTeacherStats(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.TeacherStats(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStudentStats returns the calling student's counters
// @Summary Student dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.StudentDashboardStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student/dashboard-stats [get]
func (h *DashboardHandler) GetStudentStats(c *gin.Context) {
	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.StudentStats(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
