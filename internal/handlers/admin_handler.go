package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	service services.AdminService
}

func NewAdminHandler(service services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListTeachers returns every teacher account, newest first
// @Summary List teachers
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/teachers [get]
func (h *AdminHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.service.ListTeachers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// CreateTeacher registers a teacher on behalf of the super-admin
// @Summary Create teacher
// @Tags admin
// @Accept json
// @Produce json
// @Param teacher body services.RegisterTeacherRequest true "Teacher data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /admin/teachers [post]
func (h *AdminHandler) CreateTeacher(c *gin.Context) {
	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.RegisterTeacherRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	teacher, err := h.service.CreateTeacher(c.Request.Context(), &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

// @Summary Deactivate teacher
// @Tags admin
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/teachers/{id}/deactivate [put]
func (h *AdminHandler) DeactivateTeacher(c *gin.Context) {
	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	teacherID := c.Param("id")
	h.LogRequest(c, "Deactivating teacher", "teacher_id", teacherID)

	if err := h.service.DeactivateTeacher(c.Request.Context(), teacherID, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Teacher deactivated successfully"})
}

// GetStats returns platform-wide counters
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminStats
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
