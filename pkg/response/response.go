package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
)

// CurrentUser retrieves the authenticated user attached by the auth middleware
func CurrentUser(c *gin.Context) (*entity.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	user, ok := value.(*entity.User)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

// OK writes a 200 success envelope
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 success envelope
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Message writes a success envelope carrying only a message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Error writes a standardized error envelope. Internal errors are logged
// server-side and replaced by a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}

	c.JSON(code, gin.H{"success": false, "error": message})
}
