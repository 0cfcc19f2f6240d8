package booking

import (
	"context"
	"errors"
	"time"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/metrics"
	"hostelfinder/internal/modules/live"
	"hostelfinder/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	hostels  HostelReader
	events   EventPublisher
	now      func() time.Time
}

func NewService(bookings BookingRepository, hostels HostelReader, events EventPublisher) *Service {
	return &Service{
		bookings: bookings,
		hostels:  hostels,
		events:   events,
		now:      time.Now,
	}
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Tag: "datetime"}
	}
	return t, nil
}

// CreateBooking holds one room of the hostel for the caller. Input is rejected before
// any lookup when the range is empty or inverted or no bed is requested.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, err := parseDate("check_in", req.CheckIn)
	if err != nil {
		return nil, s.reject("validation", err)
	}
	checkOut, err := parseDate("check_out", req.CheckOut)
	if err != nil {
		return nil, s.reject("validation", err)
	}
	if !checkOut.After(checkIn) {
		return nil, s.reject("validation", &FieldError{Field: "check_out", Tag: "gtfield"})
	}
	if req.NumberOfBeds < 1 {
		return nil, s.reject("validation", &FieldError{Field: "number_of_beds", Tag: "gte"})
	}
	if req.NumberOfBeds > MaxBedsPerBooking {
		return nil, s.reject("validation", &FieldError{Field: "number_of_beds", Tag: "lte"})
	}

	hostel, err := s.hostels.GetByID(ctx, req.HostelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.reject("not_found", ErrHostelNotFound)
		}
		return nil, err
	}
	if hostel.AvailableRooms < 1 {
		return nil, s.reject("no_availability", ErrNoAvailability)
	}

	nights := domain.Nights(checkIn, checkOut)
	price := domain.StayPrice(nights, hostel.Rent, req.NumberOfBeds)
	if price >= domain.MaxStayPrice {
		return nil, s.reject("validation", &FieldError{Field: "check_out", Tag: "max"})
	}
	today := s.now().UTC()

	b := &domain.Booking{
		UserID:       userID,
		HostelID:     hostel.ID,
		BookingDate:  datatypes.Date(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)),
		CheckIn:      datatypes.Date(checkIn),
		CheckOut:     datatypes.Date(checkOut),
		NumberOfBeds: req.NumberOfBeds,
		TotalPrice:   price,
		Status:       domain.BookingPending,
	}

	remaining, err := s.bookings.CreateWithRoomHold(ctx, b)
	if err != nil {
		// the last room went to a concurrent booking between the read and the hold
		if errors.Is(err, repository.ErrNoRoomsLeft) {
			return nil, s.reject("no_availability", ErrNoAvailability)
		}
		return nil, err
	}
	b.Hostel = hostel

	metrics.BookingsCreated.Inc()
	logging.Ctx(ctx).Info().
		Int64("booking_id", b.ID).
		Int64("hostel_id", b.HostelID).
		Int64("user_id", userID).
		Int("rooms_left", remaining).
		Msg("booking created")
	s.publish(live.AvailabilityEvent(b.HostelID, remaining))

	return b, nil
}

func (s *Service) reject(reason string, err error) error {
	metrics.BookingsRejected.WithLabelValues(reason).Inc()
	return err
}

func (s *Service) publish(ev live.Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}

func (s *Service) ListMine(ctx context.Context, userID int64, skip, limit int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, skip, limit)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func ownsHostel(actor Actor, b *domain.Booking) bool {
	return b.Hostel != nil && b.Hostel.OwnerID == actor.UserID
}

// Get is visible to the guest, the hostel owner and admins.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.UserAdmin && b.UserID != actor.UserID && !ownsHostel(actor, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Cancel releases the held room. Allowed for the guest, the hostel owner and admins.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.Cancellable() {
		return nil, ErrInvalidTransition
	}

	cancelled, remaining, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(string(domain.BookingCancelled)).Inc()
	s.publish(live.AvailabilityEvent(cancelled.HostelID, remaining))
	return cancelled, nil
}

// Confirm accepts a pending booking. Hostel owner or admin only.
func (s *Service) Confirm(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.UserAdmin && !ownsHostel(actor, b) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidTransition
	}

	confirmed, err := s.bookings.Confirm(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(string(domain.BookingConfirmed)).Inc()
	return confirmed, nil
}
