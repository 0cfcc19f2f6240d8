package review

import (
	"context"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/modules/live"
	"hostelfinder/internal/repository"
)

type ReviewRepository interface {
	CreateAndRecompute(ctx context.Context, rv *domain.Review) (repository.HostelRating, error)
	ExistsForUser(ctx context.Context, userID, hostelID int64) (bool, error)
}

type HostelChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type EventPublisher interface {
	Publish(ev live.Event)
}
