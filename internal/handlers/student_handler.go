package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/services"
	"github.com/SAP-F-2025/testing-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// GetAssignedTests returns the tests assigned to the current student
// @Summary Get assigned tests
// @Description Tests assigned to the caller, each with the caller's submission status. Correct answers are omitted.
// @Tags students
// @Produce json
// @Success 200 {array} models.StudentTestResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student/tests [get]
func (h *StudentHandler) GetAssignedTests(c *gin.Context) {
	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	tests, err := h.service.ListAssignedTests(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}

// SubmitTest stores the caller's single submission for a test
// @Summary Submit test
// @Tags students
// @Accept json
// @Produce json
// @Param testId path int true "Test ID"
// @Param answers body services.SubmitTestRequest false "Answers"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Validation failed or already submitted"
// @Failure 403 {object} ErrorResponse "Not assigned"
// @Failure 404 {object} ErrorResponse "Test not found"
// @Router /student/tests/{testId}/submit [post]
func (h *StudentHandler) SubmitTest(c *gin.Context) {
	testID := h.parseIDParam(c, "testId")
	if testID == 0 {
		return
	}
	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitTestRequest
	if !h.bindJSON(c, &req, true) {
		return
	}

	submission, err := h.service.SubmitTest(c.Request.Context(), testID, &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Test submitted successfully",
		"submission": submission,
	})
}

// GetSubmissions returns the caller's submission history
// @Summary Get my submissions
// @Tags students
// @Produce json
// @Success 200 {array} models.SubmissionResponse
// @Router /student/submissions [get]
func (h *StudentHandler) GetSubmissions(c *gin.Context) {
	studentID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.service.ListSubmissions(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}
