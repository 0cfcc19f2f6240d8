package hostel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/metrics"
	"hostelfinder/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	hostels   HostelRepository
	reviews   ReviewLister
	users     UserReader
	locations LocationSuggester
}

func NewService(hostels HostelRepository, reviews ReviewLister, users UserReader, locations LocationSuggester) *Service {
	return &Service{
		hostels:   hostels,
		reviews:   reviews,
		users:     users,
		locations: locations,
	}
}

func (s *Service) Create(ctx context.Context, actor Actor, req CreateHostelRequest) (*domain.Hostel, error) {
	if !actor.Role.CanListHostels() {
		return nil, ErrForbidden
	}

	ownerID := actor.UserID
	if actor.Role == domain.UserAdmin && req.OwnerID != nil && *req.OwnerID != actor.UserID {
		if _, err := s.users.GetByID(ctx, *req.OwnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		ownerID = *req.OwnerID
	}

	h := &domain.Hostel{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(req.Name),
		Location:       strings.TrimSpace(req.Location),
		City:           strings.TrimSpace(req.City),
		Rent:           req.Rent,
		Description:    req.Description,
		AvailableRooms: req.AvailableRooms,
		Pincode:        strings.TrimSpace(req.Pincode),
	}
	for _, url := range req.Images {
		h.Images = append(h.Images, domain.HostelImage{ImageURL: url})
	}

	if err := s.hostels.Create(ctx, h, req.Amenities); err != nil {
		return nil, err
	}
	if h.Amenities == nil {
		h.Amenities = []domain.Amenity{}
	}
	if h.Images == nil {
		h.Images = []domain.HostelImage{}
	}
	return h, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.Hostel, error) {
	return s.hostels.List(ctx, skip, limit)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Hostel, error) {
	h, err := s.hostels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Hostel, error) {
	return s.hostels.Search(ctx, repository.HostelFilter{
		City:      strings.TrimSpace(q.City),
		MaxRent:   q.MaxRent,
		Amenities: q.Amenities,
	})
}

// AddImage attaches an image URL. Only the hostel's owner or an admin may do so.
func (s *Service) AddImage(ctx context.Context, actor Actor, hostelID int64, req AddImageRequest) (*domain.HostelImage, error) {
	h, err := s.Get(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.UserAdmin && h.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}

	img := &domain.HostelImage{HostelID: hostelID, ImageURL: req.ImageURL}
	if err := s.hostels.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) ListReviews(ctx context.Context, hostelID int64, skip, limit int) ([]ReviewResponse, error) {
	ok, err := s.hostels.Exists(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHostelNotFound
	}

	reviews, err := s.reviews.ListByHostel(ctx, hostelID, skip, limit)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// SmartSearch returns exact pincode matches when there are any. Otherwise it asks
// the recommendation service for similar locations once and gathers hostels in
// those cities, in the order the locations came back.
func (s *Service) SmartSearch(ctx context.Context, pincode string) (*SmartSearchResult, error) {
	direct, err := s.hostels.FindByPincode(ctx, pincode)
	if err != nil {
		metrics.SmartSearches.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(direct) > 0 {
		metrics.SmartSearches.WithLabelValues("exact").Inc()
		return &SmartSearchResult{
			ExactMatch:         true,
			SearchedPincode:    pincode,
			DirectResults:      direct,
			SuggestedResults:   []domain.Hostel{},
			SuggestedLocations: []string{},
		}, nil
	}

	locations, err := s.locations.SimilarLocations(ctx, pincode)
	if err != nil {
		metrics.SmartSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("similar locations for %s: %w", pincode, err)
	}
	if locations == nil {
		locations = []string{}
	}

	suggested := make([]domain.Hostel, 0)
	for _, loc := range locations {
		found, err := s.hostels.FindByCity(ctx, loc)
		if err != nil {
			metrics.SmartSearches.WithLabelValues("error").Inc()
			return nil, err
		}
		suggested = append(suggested, found...)
	}

	logging.Ctx(ctx).Debug().
		Str("pincode", pincode).
		Int("locations", len(locations)).
		Int("suggested", len(suggested)).
		Msg("smart search fell back to similar locations")
	metrics.SmartSearches.WithLabelValues("suggested").Inc()

	return &SmartSearchResult{
		ExactMatch:         false,
		SearchedPincode:    pincode,
		DirectResults:      []domain.Hostel{},
		SuggestedResults:   suggested,
		SuggestedLocations: locations,
		AISuggestion: fmt.Sprintf(
			"No hostels found in pincode %s. Here are some suggestions from nearby areas: %s",
			pincode, strings.Join(locations, ", "),
		),
	}, nil
}
