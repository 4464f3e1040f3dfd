package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/testing-service/internal/auth"
	"github.com/SAP-F-2025/testing-service/internal/services"
)

// handleServiceError maps service errors onto HTTP responses.
// Unknown errors are logged and reported as a generic 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs services.ValidationErrors
	var permErr *services.PermissionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})

	case errors.Is(err, services.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "User already exists"})
	case errors.Is(err, services.ErrStudentIDTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Student ID already exists"})
	case errors.Is(err, services.ErrTestAlreadySubmitted):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Test already submitted"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid credentials"})

	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})

	case errors.As(err, &permErr):
		h.LogRequest(c, "Permission denied", "resource", permErr.Resource, "resource_id", permErr.ResourceID, "reason", permErr.Reason)
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access denied"})
	case errors.Is(err, services.ErrNotAssigned):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Not assigned to this test"})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Forbidden"})

	case errors.Is(err, services.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Teacher not found"})
	case errors.Is(err, services.ErrTestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Test not found"})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Submission not found"})

	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
