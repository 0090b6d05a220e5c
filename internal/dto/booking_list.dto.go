package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingListDTO struct {
	ID           uint            `json:"id"`
	BookingDate  string          `json:"booking_date"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CustomerName string          `json:"customer_name"`
	BarberName   string          `json:"barber_name"`
	ServiceName  string          `json:"service_name"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:           b.ID,
			BookingDate:  b.BookingDate,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       b.Status,
			TotalPrice:   b.TotalPrice,
			CustomerName: b.Customer.Name,
			BarberName:   b.Barber.Name,
			ServiceName:  b.Service.Name,
		})
	}
	return out
}
