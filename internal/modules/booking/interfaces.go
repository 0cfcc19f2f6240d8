package booking

import (
	"context"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/modules/live"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	CreateWithRoomHold(ctx context.Context, b *domain.Booking) (int, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]domain.Booking, error)
	Confirm(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) (*domain.Booking, int, error)
}

type HostelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hostel, error)
}

// EventPublisher receives availability changes after they commit. May be nil.
type EventPublisher interface {
	Publish(ev live.Event)
}
