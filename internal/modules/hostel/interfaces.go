package hostel

import (
	"context"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/repository"
)

type HostelRepository interface {
	Create(ctx context.Context, h *domain.Hostel, amenityNames []string) error
	List(ctx context.Context, skip, limit int) ([]domain.Hostel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hostel, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindByPincode(ctx context.Context, pincode string) ([]domain.Hostel, error)
	FindByCity(ctx context.Context, city string) ([]domain.Hostel, error)
	Search(ctx context.Context, f repository.HostelFilter) ([]domain.Hostel, error)
	AddImage(ctx context.Context, img *domain.HostelImage) error
}

type ReviewLister interface {
	ListByHostel(ctx context.Context, hostelID int64, skip, limit int) ([]domain.Review, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LocationSuggester is the slice of the recommendation client smart search needs.
type LocationSuggester interface {
	SimilarLocations(ctx context.Context, pincode string) ([]string, error)
}
