package review

import (
	"context"
	"errors"
	"strings"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/metrics"
	"hostelfinder/internal/modules/live"
	"hostelfinder/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews ReviewRepository
	hostels HostelChecker
	events  EventPublisher
}

func NewService(reviews ReviewRepository, hostels HostelChecker, events EventPublisher) *Service {
	return &Service{reviews: reviews, hostels: hostels, events: events}
}

// Create stores the caller's only review of a hostel and refreshes the hostel rating.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	comment := strings.TrimSpace(req.Comment)
	if req.HostelID <= 0 || req.Rating < 1 || req.Rating > 5 || comment == "" {
		return nil, ErrValidation
	}

	ok, err := s.hostels.Exists(ctx, req.HostelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHostelNotFound
	}

	dup, err := s.reviews.ExistsForUser(ctx, userID, req.HostelID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		UserID:   userID,
		HostelID: req.HostelID,
		Rating:   req.Rating,
		Comment:  comment,
	}

	agg, err := s.reviews.CreateAndRecompute(ctx, rv)
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			// a concurrent request from the same user won the insert
			return nil, ErrAlreadyReviewed
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrHostelNotFound
		}
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	logging.Ctx(ctx).Info().
		Int64("review_id", rv.ID).
		Int64("hostel_id", rv.HostelID).
		Float64("rating", agg.Rating).
		Int("review_count", agg.ReviewCount).
		Msg("review created")

	if s.events != nil {
		s.events.Publish(live.RatingEvent(rv.HostelID, agg.Rating, agg.ReviewCount))
	}
	return rv, nil
}
