package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond translates an error returned by a use case into a JSON response.
func Respond(c *gin.Context, err error) {
	var (
		ve  ValidationError
		ite InvalidTransitionError
		qe  QuotaExceededError
		ce  ConflictError
		ne  NotEligibleError
		fe  ForbiddenError
		be  BusinessError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, HTTPError{
			Code:    "validation_error",
			Message: ve.Message,
			Field:   ve.Field,
		})
	case errors.As(err, &ite):
		Write(c, http.StatusConflict, "invalid_transition", ite.Error())
	case errors.As(err, &qe):
		Write(c, http.StatusConflict, "quota_exceeded", qe.Error())
	case errors.As(err, &ce):
		Write(c, http.StatusConflict, ce.Code, ce.Error())
	case errors.As(err, &ne):
		Write(c, http.StatusUnprocessableEntity, "discount_not_eligible", ne.Message)
	case errors.As(err, &fe):
		Forbidden(c, fe.Code, "Operation not allowed.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", "Record not found.")
	case errors.As(err, &be):
		if strings.HasSuffix(be.Code, "_not_found") {
			NotFound(c, be.Code, be.Code)
			return
		}
		BadRequest(c, be.Code, be.Code)
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		Internal(c, "internal_error", "Internal error.")
	}
}
