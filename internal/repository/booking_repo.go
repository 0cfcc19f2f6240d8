package repository

import (
	"context"
	"fmt"

	"hostelfinder/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithRoomHold takes one room off the hostel and inserts the booking in the
// same transaction. The decrement only applies while available_rooms >= 1, so two
// concurrent callers can never push the counter below zero. It returns the rooms
// left after the hold.
func (r *BookingRepository) CreateWithRoomHold(ctx context.Context, b *domain.Booking) (int, error) {
	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Hostel{}).
			Where("id = ? AND available_rooms >= ?", b.HostelID, 1).
			Update("available_rooms", gorm.Expr("available_rooms - ?", 1))
		if res.Error != nil {
			return fmt.Errorf("hold room: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoRoomsLeft
		}

		if err := tx.Omit("User", "Hostel").Create(b).Error; err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		var err error
		remaining, err = availableRooms(tx, b.HostelID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func availableRooms(tx *gorm.DB, hostelID int64) (int, error) {
	var h domain.Hostel
	if err := tx.Select("id", "available_rooms").First(&h, hostelID).Error; err != nil {
		return 0, fmt.Errorf("read available rooms: %w", err)
	}
	return h.AvailableRooms, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Hostel").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Hostel").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// Confirm moves a pending booking to confirmed.
func (r *BookingRepository) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingPending).
		Update("status", domain.BookingConfirmed)
	if res.Error != nil {
		return nil, fmt.Errorf("confirm booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}
	return r.GetByID(ctx, id)
}

// Cancel marks a pending or confirmed booking cancelled and gives its room back.
// It returns the updated booking and the rooms now available.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) (*domain.Booking, int, error) {
	var (
		b         domain.Booking
		remaining int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, id).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Booking{}).
			Where("id = ? AND status IN ?", id, []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}).
			Update("status", domain.BookingCancelled)
		if res.Error != nil {
			return fmt.Errorf("cancel booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}

		if err := tx.Model(&domain.Hostel{}).
			Where("id = ?", b.HostelID).
			Update("available_rooms", gorm.Expr("available_rooms + ?", 1)).Error; err != nil {
			return fmt.Errorf("release room: %w", err)
		}

		var err error
		remaining, err = availableRooms(tx, b.HostelID)
		if err != nil {
			return err
		}
		return tx.Preload("Hostel").First(&b, id).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return &b, remaining, nil
}
