package suggestion

type RecommendationRequest struct {
	Pincode     string   `json:"pincode" validate:"required,max=10"`
	Budget      *float64 `json:"budget" validate:"omitempty,gt=0"`
	Preferences []string `json:"preferences"`
}

type FacilitiesRequest struct {
	Preferences []string `json:"preferences" validate:"required,min=1,dive,required"`
}

type PriceRequest struct {
	Location   string   `json:"location" validate:"required"`
	Facilities []string `json:"facilities" validate:"dive,required"`
}

type PriceResponse struct {
	SuggestedPrice float64 `json:"suggested_price"`
}
