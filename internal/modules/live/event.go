package live

import "time"

const (
	EventAvailability = "hostel.availability"
	EventRating       = "hostel.rating"
)

// Event is pushed to every live feed subscriber.
type Event struct {
	Type           string    `json:"type"`
	HostelID       int64     `json:"hostel_id"`
	AvailableRooms *int      `json:"available_rooms,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	ReviewCount    *int      `json:"review_count,omitempty"`
	At             time.Time `json:"at"`
}

func AvailabilityEvent(hostelID int64, availableRooms int) Event {
	return Event{
		Type:           EventAvailability,
		HostelID:       hostelID,
		AvailableRooms: &availableRooms,
		At:             time.Now().UTC(),
	}
}

func RatingEvent(hostelID int64, rating float64, reviewCount int) Event {
	return Event{
		Type:        EventRating,
		HostelID:    hostelID,
		Rating:      &rating,
		ReviewCount: &reviewCount,
		At:          time.Now().UTC(),
	}
}
