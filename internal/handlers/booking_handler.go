package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create      *ucBooking.CreateBooking
	transition  *ucBooking.TransitionBooking
	get         *ucBooking.GetBooking
	listByDate  *ucBooking.ListBookingsByDate
	listByMonth *ucBooking.ListBookingsByMonth
	clock       timezone.Clock
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	transition *ucBooking.TransitionBooking,
	get *ucBooking.GetBooking,
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	clock timezone.Clock,
) *BookingHandler {
	return &BookingHandler{
		create:      create,
		transition:  transition,
		get:         get,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		clock:       clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerID   uint   `json:"customer_id"`
	BarberID     uint   `json:"barber_id" binding:"required"`
	ServiceID    uint   `json:"service_id" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:MM
	Notes        string `json:"notes"`
	DiscountCode string `json:"discount_code"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:        middleware.ActorFrom(c),
		CustomerID:   req.CustomerID,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) Transition(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.transition.Execute(c.Request.Context(), ucBooking.TransitionInput{
		Actor:     middleware.ActorFrom(c),
		BookingID: id,
		Status:    req.Status,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, next, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"booking":             b,
		"allowed_transitions": next,
	})
}

// ListByDate answers GET /bookings?date=YYYY-MM-DD[&barber_id=]
func (h *BookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	date, err := schedule.ParseDate(dateStr, h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.ActorFrom(c), barberID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// ListByMonth answers GET /bookings/month?year=&month=[&barber_id=]
func (h *BookingHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), middleware.ActorFrom(c), barberID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": list,
	})
}
