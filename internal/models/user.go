package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Roles        StringList `gorm:"type:text;not null" json:"roles"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	BlogPosts []BlogPost `gorm:"foreignKey:AuthorID" json:"-"`
	JobOffers []JobOffer `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasRole reports whether the user holds a role satisfying required.
// Admin satisfies any check.
func (u *User) HasRole(required Role) bool {
	for _, r := range u.Roles {
		if Role(r).Satisfies(required) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user satisfies at least one of the given roles.
func (u *User) HasAnyRole(required ...Role) bool {
	for _, r := range required {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
