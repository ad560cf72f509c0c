package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/errors"
)

// ErrorHandler recovers panics into an INTERNAL_ERROR response.
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		sendErrorResponse(c, appErr, logger)
		c.Abort()
	})
}

// RequestID propagates X-Request-ID or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse is the envelope of every failed request.
// @Description Error envelope
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
	Retryable bool             `json:"retryable,omitempty"`
}

// retryAfter is the hint sent with errors a client may repeat unchanged.
const retryAfter = 5 * time.Second

func sendErrorResponse(c *gin.Context, appErr *errors.AppError, logger zerolog.Logger) {
	requestID := getRequestID(c)

	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)

	statusCode := HTTPStatusCode(appErr)

	response := ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
		Retryable: appErr.IsRetryable(),
	}

	logError(appErr, logger, c)

	if response.Retryable {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))
	}

	c.JSON(statusCode, response)
}

// AbortWithError writes the envelope for appErr and stops the chain.
func AbortWithError(c *gin.Context, appErr *errors.AppError, logger zerolog.Logger) {
	sendErrorResponse(c, appErr, logger)
	c.Abort()
}

// HTTPStatusCode maps an error code to its HTTP status.
func HTTPStatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest, errors.ErrCodeInvalidExchange:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUserNotFound, errors.ErrCodeAssignmentNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeConflict, errors.ErrCodeUserExists, errors.ErrCodeDuplicateParticipant:
		return http.StatusConflict
	case errors.ErrCodeNotEnoughParticipants:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeDrawSaveFailed, errors.ErrCodeStorageError, errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	case errors.ErrCodePairingFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, logger zerolog.Logger, c *gin.Context) {
	var event *zerolog.Event
	switch {
	case appErr.IsInternal():
		event = logger.Error()
	case appErr.IsUnauthorized():
		event = logger.Warn()
	case appErr.IsValidation(), appErr.IsNotFound():
		event = logger.Info()
	default:
		event = logger.Warn()
	}

	event = event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if userID := getUserID(c); userID != 0 {
		event = event.Int64("user_id", userID)
	}
	if len(appErr.Details) > 0 {
		detailsJSON, _ := json.Marshal(appErr.Details)
		event = event.RawJSON("details", detailsJSON)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}

	event.Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}

func getUserID(c *gin.Context) int64 {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(int64); ok {
			return id
		}
	}
	return 0
}

// HandleErrorWrapper renders the last error a handler attached with c.Error.
func HandleErrorWrapper(logger zerolog.Logger) func(gin.HandlerFunc) gin.HandlerFunc {
	return func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			handler(c)

			if len(c.Errors) == 0 || c.Writer.Written() {
				return
			}
			err := c.Errors.Last().Err

			if appErr, ok := errors.AsAppError(err); ok {
				sendErrorResponse(c, appErr, logger)
				return
			}

			appErr := errors.Wrap(err, errors.ErrCodeInternal, "Handler error occurred").
				WithRequestID(getRequestID(c)).
				WithUserID(getUserID(c))
			sendErrorResponse(c, appErr, logger)
		}
	}
}
