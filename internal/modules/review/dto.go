package review

type CreateReviewRequest struct {
	HostelID int64  `json:"hostel_id" validate:"required,gt=0"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required"`
}
