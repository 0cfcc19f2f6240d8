package domain

import "time"

type UserType string

const (
	UserSeeker UserType = "seeker"
	UserOwner  UserType = "owner"
	UserAdmin  UserType = "admin"
)

func (t UserType) Valid() bool {
	return t == UserSeeker || t == UserOwner || t == UserAdmin
}

// CanListHostels reports whether the role may create hostel listings.
func (t UserType) CanListHostels() bool {
	return t == UserOwner || t == UserAdmin
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"`
	Phone        string    `json:"phone" gorm:"size:15"`
	UserType     UserType  `json:"user_type" gorm:"size:20;not null;default:seeker"`
	CreatedAt    time.Time `json:"created_at"`
}
