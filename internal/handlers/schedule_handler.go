package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	setWeek   *ucSchedule.SetWeeklySchedule
	listWeek  *ucSchedule.ListWeeklySchedule
	createOff *ucSchedule.CreateTimeOff
	deleteOff *ucSchedule.DeleteTimeOff
	listOff   *ucSchedule.ListTimeOff
	check     *ucSchedule.CheckAvailability
	freeSlots *ucSchedule.GetAvailability
}

func NewScheduleHandler(
	setWeek *ucSchedule.SetWeeklySchedule,
	listWeek *ucSchedule.ListWeeklySchedule,
	createOff *ucSchedule.CreateTimeOff,
	deleteOff *ucSchedule.DeleteTimeOff,
	listOff *ucSchedule.ListTimeOff,
	check *ucSchedule.CheckAvailability,
	freeSlots *ucSchedule.GetAvailability,
) *ScheduleHandler {
	return &ScheduleHandler{
		setWeek:   setWeek,
		listWeek:  listWeek,
		createOff: createOff,
		deleteOff: deleteOff,
		listOff:   listOff,
		check:     check,
		freeSlots: freeSlots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyScheduleRequest struct {
	Days []ucSchedule.DayInput `json:"days" binding:"required"`
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	_, barberID, ok := barberScope(c)
	if !ok {
		return
	}

	days, err := h.listWeek.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, days)
}

func (h *ScheduleHandler) SetWeek(c *gin.Context) {
	actor, barberID, ok := barberScope(c)
	if !ok {
		return
	}

	var req WeeklyScheduleRequest
	if !bind(c, &req) {
		return
	}

	days, err := h.setWeek.Execute(c.Request.Context(), actor.ID, barberID, req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, days)
}

// ======================================================
// TIME OFF
// ======================================================

func (h *ScheduleHandler) ListTimeOff(c *gin.Context) {
	_, barberID, ok := barberScope(c)
	if !ok {
		return
	}

	offs, err := h.listOff.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, offs)
}

func (h *ScheduleHandler) CreateTimeOff(c *gin.Context) {
	actor, barberID, ok := barberScope(c)
	if !ok {
		return
	}

	var req ucSchedule.TimeOffInput
	if !bind(c, &req) {
		return
	}

	off, err := h.createOff.Execute(c.Request.Context(), actor.ID, barberID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, off)
}

func (h *ScheduleHandler) DeleteTimeOff(c *gin.Context) {
	actor, barberID, ok := barberScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteOff.Execute(c.Request.Context(), actor.ID, barberID, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// AVAILABILITY (PUBLIC)
// ======================================================

// Slots answers GET /barbers/:barberID/availability?service_id=&date=
func (h *ScheduleHandler) Slots(c *gin.Context) {
	barberID, ok := idParam(c, "barberID")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}
	if serviceID == 0 || c.Query("date") == "" {
		httperr.BadRequest(c, "missing_service_or_date", "service_id and date are required.")
		return
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), ucSchedule.GetAvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

// Check answers GET /barbers/:barberID/availability/check?date=&start=&end=
func (h *ScheduleHandler) Check(c *gin.Context) {
	barberID, ok := idParam(c, "barberID")
	if !ok {
		return
	}

	res, err := h.check.Execute(c.Request.Context(), ucSchedule.CheckAvailabilityInput{
		BarberID: barberID,
		Date:     c.Query("date"),
		Start:    c.Query("start"),
		End:      c.Query("end"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
