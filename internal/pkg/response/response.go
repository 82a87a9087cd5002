package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta carries pagination metadata for list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// envelope is the uniform response shape of the portal API.
type envelope struct {
	Status  bool        `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Status: true, Data: data})
}

// OKMsg sends a 200 response with a message and no data.
func OKMsg(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Status: true, Message: message})
}

// Paged sends a 200 response with pagination metadata.
func Paged(c *gin.Context, data interface{}, meta Meta) {
	c.JSON(http.StatusOK, envelope{Status: true, Data: data, Meta: &meta})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Status: true, Data: data})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, "authentication required")
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context) {
	abort(c, http.StatusForbidden, "insufficient permissions")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "not found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "method not allowed")
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	msg := "internal server error"
	if gin.Mode() != gin.ReleaseMode && err != nil {
		msg = err.Error()
	}
	abort(c, http.StatusInternalServerError, msg)
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, envelope{Status: false, Message: message})
}
