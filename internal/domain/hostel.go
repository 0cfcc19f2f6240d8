package domain

import "time"

type Hostel struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OwnerID        int64     `json:"owner_id" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"size:100;not null"`
	Location       string    `json:"location" gorm:"size:255"`
	City           string    `json:"city" gorm:"size:100;index"`
	Rent           float64   `json:"rent" gorm:"type:decimal(10,2);not null"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	AvailableRooms int       `json:"available_rooms" gorm:"not null;default:0"`
	Pincode        string    `json:"pincode,omitempty" gorm:"size:10;index"`
	Rating         float64   `json:"rating" gorm:"not null;default:0"`
	ReviewCount    int       `json:"review_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Owner     *User         `json:"-" gorm:"foreignKey:OwnerID"`
	Amenities []Amenity     `json:"amenities" gorm:"many2many:hostel_amenities"`
	Images    []HostelImage `json:"images" gorm:"foreignKey:HostelID"`
}

type Amenity struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

type HostelImage struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	HostelID int64  `json:"hostel_id" gorm:"index;not null"`
	ImageURL string `json:"image_url" gorm:"size:255;not null"`
}
