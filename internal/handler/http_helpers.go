package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// respondServiceError maps service sentinels onto HTTP statuses. The
// validation message is user facing, everything else stays generic.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrMythNotFound),
		errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrContentNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownContentType):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrTooManyAttempts):
		respondError(c, http.StatusTooManyRequests, "too many failed attempts, try again later")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
