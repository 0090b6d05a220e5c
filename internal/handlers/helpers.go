package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// bind decodes the JSON body, answering 400 itself on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// idParam reads a positive numeric path parameter, answering 400 itself on failure.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

// uintQuery reads an optional numeric query parameter; absent means zero.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

// barberScope resolves whose schedule a request is about: admins name the
// barber in the path, barbers always act on themselves.
func barberScope(c *gin.Context) (booking.Actor, uint, bool) {
	actor := middleware.ActorFrom(c)

	if c.Param("barberID") == "" {
		if actor.Role != models.RoleBarber {
			httperr.Forbidden(c, "barber_only", "Operation not allowed.")
			return actor, 0, false
		}
		return actor, actor.ID, true
	}

	id, ok := idParam(c, "barberID")
	if !ok {
		return actor, 0, false
	}
	if !actor.IsAdmin() && id != actor.ID {
		httperr.Forbidden(c, "not_assigned_barber", "Operation not allowed.")
		return actor, 0, false
	}
	return actor, id, true
}
