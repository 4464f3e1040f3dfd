package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	service       services.TeacherService
	exportService services.ExportService
}

func NewTeacherHandler(service services.TeacherService, exportService services.ExportService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:   NewBaseHandler(logger),
		service:       service,
		exportService: exportService,
	}
}

// ===== STUDENTS =====

// ListStudents returns the students registered by the caller
// @Summary List my students
// @Tags teacher
// @Produce json
// @Success 200 {array} models.StudentResponse
// @Router /teacher/students [get]
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	students, err := h.service.ListStudents(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// ===== TESTS =====

// CreateTest creates a test and assigns it to students
// @Summary Create test
// @Tags teacher
// @Accept json
// @Produce json
// @Param test body services.CreateTestRequest true "Test data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /teacher/tests [post]
func (h *TeacherHandler) CreateTest(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateTestRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	test, err := h.service.CreateTest(c.Request.Context(), &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Test created successfully",
		"test":    test,
	})
}

// @Summary List my tests
// @Tags teacher
// @Produce json
// @Success 200 {array} models.TestResponse
// @Router /teacher/tests [get]
func (h *TeacherHandler) ListTests(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	tests, err := h.service.ListTests(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}

// ===== SUBMISSIONS =====

// ListSubmissions returns every submission for one of the caller's tests
// @Summary List test submissions
// @Tags teacher
// @Produce json
// @Param testId path int true "Test ID"
// @Success 200 {array} models.SubmissionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/tests/{testId}/submissions [get]
func (h *TeacherHandler) ListSubmissions(c *gin.Context) {
	testID := h.parseIDParam(c, "testId")
	if testID == 0 {
		return
	}
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.service.ListSubmissions(c.Request.Context(), testID, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ExportSubmissions streams the submissions of a test as an XLSX workbook
// @Summary Export test submissions
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param testId path int true "Test ID"
// @Success 200 {file} file
// @Router /teacher/tests/{testId}/submissions/export [get]
func (h *TeacherHandler) ExportSubmissions(c *gin.Context) {
	testID := h.parseIDParam(c, "testId")
	if testID == 0 {
		return
	}
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting submissions", "test_id", testID)

	file, err := h.exportService.ExportSubmissions(c.Request.Context(), testID, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// GradeSubmission records a score and optional feedback; re-grading overwrites
// @Summary Grade submission
// @Tags teacher
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param grade body services.GradeSubmissionRequest true "Grade"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/submissions/{id}/grade [put]
func (h *TeacherHandler) GradeSubmission(c *gin.Context) {
	submissionID := h.parseIDParam(c, "id")
	if submissionID == 0 {
		return
	}
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.GradeSubmissionRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	h.LogRequest(c, "Grading submission", "submission_id", submissionID)

	submission, err := h.service.GradeSubmission(c.Request.Context(), submissionID, &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission graded successfully",
		"submission": submission,
	})
}
