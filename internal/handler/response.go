package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lesenhub/internal/domain"
	"lesenhub/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Fields and
// MissingRequirements are populated only for validation and completeness
// failures, so the caller can fix everything in one pass.
type APIError struct {
	Code                string            `json:"code"`
	Message             string            `json:"message"`
	Fields              map[string]string `json:"fields,omitempty"`
	MissingRequirements []uuid.UUID       `json:"missing_requirements,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// HandleError translates a domain error into the appropriate HTTP response.
// Authorization denials answer a generic 403 regardless of reason; the reason
// is logged, never leaked.
func HandleError(c *gin.Context, err error) {
	var authErr *domain.AuthorizationError
	if errors.As(err, &authErr) {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] authorization denied: %s", requestID, authErr.Reason)
		RespondError(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
		return
	}

	var complErr *domain.CompletenessError
	if errors.As(err, &complErr) {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error: &APIError{
				Code:                "INCOMPLETE",
				Message:             "application is not complete",
				Fields:              complErr.Fields,
				MissingRequirements: complErr.MissingRequirementIDs,
			},
		})
		return
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "VALIDATION_FAILED",
				Message: "validation failed",
				Fields:  valErr.Fields,
			},
		})
		return
	}

	status, code, msg := mapSentinel(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

func mapSentinel(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDocumentValidated):
		return http.StatusConflict, "DOCUMENT_VALIDATED", "document has been validated and cannot be deleted"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// actorID extracts the authenticated user ID from the request context.
// Returns false if auth context is missing (error response already written).
func actorID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// parsePagination reads the page/per_page query parameters, clamping per_page
// to 100.
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
