package domain

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// DateLayout is the wire format of check-in, check-out and booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	UserID       int64          `json:"user_id" gorm:"index;not null"`
	HostelID     int64          `json:"hostel_id" gorm:"index;not null"`
	BookingDate  datatypes.Date `json:"booking_date"`
	CheckIn      datatypes.Date `json:"check_in" gorm:"not null"`
	CheckOut     datatypes.Date `json:"check_out" gorm:"not null"`
	NumberOfBeds int            `json:"number_of_beds" gorm:"not null;default:1"`
	TotalPrice   float64        `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Status       BookingStatus  `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	User   *User   `json:"-" gorm:"foreignKey:UserID"`
	Hostel *Hostel `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
}

// Nights counts whole days between two calendar dates.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	// time.Duration saturates near 292 years, so count from Unix seconds
	return int((out.Unix() - in.Unix()) / 86400)
}

// MaxStayPrice keeps total_price within its decimal(12,2) column.
const MaxStayPrice = 1e10

// StayPrice is nights x rent x beds, rounded to cents.
func StayPrice(nights int, rent float64, beds int) float64 {
	total := float64(nights) * rent * float64(beds)
	return math.Round(total*100) / 100
}

func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}
