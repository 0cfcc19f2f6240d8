package repository

import (
	"context"
	"fmt"

	"hostelfinder/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// HostelRating is the aggregate written back to the hostel after a review.
type HostelRating struct {
	Rating      float64
	ReviewCount int
}

// CreateAndRecompute inserts the review and recomputes the hostel rating from the
// full rating history. The hostel row is locked for the whole transaction where the
// dialect supports it, so concurrent reviews of one hostel serialise on the recompute.
func (r *ReviewRepository) CreateAndRecompute(ctx context.Context, rv *domain.Review) (HostelRating, error) {
	var agg HostelRating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h domain.Hostel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&h, rv.HostelID).Error; err != nil {
			return err
		}

		if err := tx.Omit("User").Create(rv).Error; err != nil {
			return fmt.Errorf("insert review: %w", err)
		}

		var ratings []int
		if err := tx.Model(&domain.Review{}).
			Where("hostel_id = ?", rv.HostelID).
			Pluck("rating", &ratings).Error; err != nil {
			return fmt.Errorf("read ratings: %w", err)
		}

		agg = HostelRating{Rating: domain.MeanRating(ratings), ReviewCount: len(ratings)}
		if err := tx.Model(&domain.Hostel{}).
			Where("id = ?", rv.HostelID).
			Updates(map[string]any{"rating": agg.Rating, "review_count": agg.ReviewCount}).Error; err != nil {
			return fmt.Errorf("update hostel rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return HostelRating{}, err
	}
	return agg, nil
}

func (r *ReviewRepository) ExistsForUser(ctx context.Context, userID, hostelID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("user_id = ? AND hostel_id = ?", userID, hostelID).
		Count(&cnt).Error
	if err != nil {
		return false, fmt.Errorf("count reviews: %w", err)
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListByHostel(ctx context.Context, hostelID int64, skip, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}
