package hostel

import (
	"time"

	"hostelfinder/internal/domain"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID int64
	Role   domain.UserType
}

type CreateHostelRequest struct {
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Location       string   `json:"location" validate:"required,max=255"`
	City           string   `json:"city" validate:"required,max=100"`
	Rent           float64  `json:"rent" validate:"gt=0,lt=100000000"`
	Description    string   `json:"description" validate:"max=5000"`
	AvailableRooms int      `json:"available_rooms" validate:"gte=0"`
	Pincode        string   `json:"pincode" validate:"omitempty,max=10"`
	Amenities      []string `json:"amenities" validate:"omitempty,dive,required,max=100"`
	Images         []string `json:"images" validate:"omitempty,dive,url,max=255"`
	// OwnerID is honoured for admins only.
	OwnerID *int64 `json:"owner_id" validate:"omitempty,gt=0"`
}

type AddImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=255"`
}

type SearchQuery struct {
	City      string
	MaxRent   float64
	Amenities []string
}

type SmartSearchResult struct {
	ExactMatch         bool            `json:"exact_match"`
	SearchedPincode    string          `json:"searched_pincode"`
	DirectResults      []domain.Hostel `json:"direct_results"`
	SuggestedResults   []domain.Hostel `json:"suggested_results"`
	SuggestedLocations []string        `json:"suggested_locations"`
	AISuggestion       string          `json:"ai_suggestion,omitempty"`
}

// ReviewResponse exposes the reviewer's name but not their contact details.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	HostelID  int64     `json:"hostel_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponses(in []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(in))
	for _, r := range in {
		resp := ReviewResponse{
			ID:        r.ID,
			HostelID:  r.HostelID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			resp.UserName = r.User.Name
		}
		out = append(out, resp)
	}
	return out
}
