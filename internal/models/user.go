package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfilePic is the placeholder picture reference assigned to every
// user until they upload their own.
const DefaultProfilePic = "default.jpg"

// User represents a registered account.
type User struct {
	gorm.Model
	FirstName    string `gorm:"size:30;not null"`
	LastName     string `gorm:"size:30"`
	Username     string `gorm:"size:30;unique;not null"`
	Email        string `gorm:"size:40;unique;not null"`
	PasswordHash string `gorm:"size:130;not null"`
	AboutMe      string `gorm:"type:text"`
	ProfilePic   string `gorm:"size:50;not null;default:'default.jpg'"`
	LastSeen     time.Time
	IsVerified   bool `gorm:"not null;default:false"`
}
