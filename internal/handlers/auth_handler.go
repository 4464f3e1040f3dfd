package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterTeacher creates a teacher account
// @Summary Register teacher
// @Tags auth
// @Accept json
// @Produce json
// @Param teacher body services.RegisterTeacherRequest true "Teacher data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /auth/register-teacher [post]
func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	var req services.RegisterTeacherRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	teacher, err := h.service.RegisterTeacher(c.Request.Context(), &req, "")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Teacher registered successfully",
		"teacher": teacher,
	})
}

// RegisterStudent creates a student account linked to the calling teacher.
// The response carries the initial password so the teacher can hand it over.
// @Summary Register student
// @Tags auth
// @Accept json
// @Produce json
// @Param student body services.RegisterStudentRequest true "Student data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/register-student [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.RegisterStudentRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	h.LogRequest(c, "Registering student", "student_id", req.StudentID)

	student, err := h.service.RegisterStudent(c.Request.Context(), &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Student registered successfully",
		"student": student,
	})
}

// Login exchanges credentials for a bearer token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
