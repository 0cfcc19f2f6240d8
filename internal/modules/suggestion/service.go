// Package suggestion exposes the recommendation service to clients: free-form
// recommendations for seekers and facility and price hints for listing owners.
package suggestion

import (
	"context"
	"strings"

	"hostelfinder/internal/recommend"
)

type Service struct {
	recommender recommend.Recommender
}

func NewService(recommender recommend.Recommender) *Service {
	return &Service{recommender: recommender}
}

func (s *Service) Recommend(ctx context.Context, req RecommendationRequest) (map[string]any, error) {
	return s.recommender.Recommend(ctx, recommend.RecommendRequest{
		Pincode:     strings.TrimSpace(req.Pincode),
		Budget:      req.Budget,
		Preferences: req.Preferences,
	})
}

func (s *Service) Facilities(ctx context.Context, req FacilitiesRequest) ([]string, error) {
	out, err := s.recommender.SuggestFacilities(ctx, req.Preferences)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (s *Service) Price(ctx context.Context, req PriceRequest) (PriceResponse, error) {
	price, err := s.recommender.SuggestPrice(ctx, strings.TrimSpace(req.Location), req.Facilities)
	if err != nil {
		return PriceResponse{}, err
	}
	return PriceResponse{SuggestedPrice: price}, nil
}
