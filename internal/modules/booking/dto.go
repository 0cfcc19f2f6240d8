package booking

import (
	"time"

	"hostelfinder/internal/domain"
)

// MaxBedsPerBooking bounds a single request.
const MaxBedsPerBooking = 20

type CreateBookingRequest struct {
	HostelID     int64  `json:"hostel_id" validate:"required,gt=0"`
	CheckIn      string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut     string `json:"check_out" validate:"required,datetime=2006-01-02"`
	NumberOfBeds int    `json:"number_of_beds" validate:"gte=1,lte=20"`
}

// Actor is the authenticated caller.
type Actor struct {
	UserID int64
	Role   domain.UserType
}

type BookingResponse struct {
	ID           int64                `json:"id"`
	UserID       int64                `json:"user_id"`
	HostelID     int64                `json:"hostel_id"`
	HostelName   string               `json:"hostel_name,omitempty"`
	BookingDate  string               `json:"booking_date"`
	CheckIn      string               `json:"check_in"`
	CheckOut     string               `json:"check_out"`
	NumberOfBeds int                  `json:"number_of_beds"`
	TotalPrice   float64              `json:"total_price"`
	Status       domain.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func toResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		HostelID:     b.HostelID,
		BookingDate:  formatDate(time.Time(b.BookingDate)),
		CheckIn:      formatDate(time.Time(b.CheckIn)),
		CheckOut:     formatDate(time.Time(b.CheckOut)),
		NumberOfBeds: b.NumberOfBeds,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
	if b.Hostel != nil {
		resp.HostelName = b.Hostel.Name
	}
	return resp
}

func toResponses(in []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(in))
	for i := range in {
		out = append(out, toResponse(&in[i]))
	}
	return out
}
