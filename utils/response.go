package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error messages returned to clients. Detail stays in the server log.
const (
	MsgInvalidBody    = "Invalid request body"
	MsgNotFound       = "Not Found"
	MsgNotAllowed     = "Not Allowed"
	MsgInternalError  = "Internal server error!"
	MsgServiceUnready = "Service unavailable"
	MsgBodyTooLarge   = "Request body too large"
)

type Response struct {
	Status int         `json:"-"`               // HTTP status code
	Error  string      `json:"error,omitempty"` // Error message
	Data   interface{} `json:"data,omitempty"`  // Response data
}

// Success writes the payload as-is. The notes API returns bare documents
// rather than an envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
	})
}

// ValidationFailed reports every failed constraint at once.
func ValidationFailed(c *gin.Context, errs interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errs)
}

// Unauthorized is also used for ownership failures on notes.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, &Response{
		Status: http.StatusUnauthorized,
		Error:  message,
	})
}

func RequestTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, &Response{
		Status: http.StatusRequestEntityTooLarge,
		Error:  MsgBodyTooLarge,
	})
}

func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, &Response{
		Status: http.StatusInternalServerError,
		Error:  message,
	})
}

func ServiceUnavailable(c *gin.Context, data interface{}) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, &Response{
		Status: http.StatusServiceUnavailable,
		Error:  MsgServiceUnready,
		Data:   data,
	})
}
