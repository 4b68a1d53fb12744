package domain

import (
	"time"

	"github.com/google/uuid" // Random IDs
	"gorm.io/gorm"           // GORM ORM library
)

// User Model (one account, up to two personas)
type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`                              // Primary key (UUID)
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`              // Unique username, stored lower-case
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`                 // Unique email, stored lower-case
	FullName       string    `json:"full_name"`                                         // Display name
	HashedPassword string    `gorm:"not null" json:"-"`                                 // Hashed password, never serialized
	Disabled       bool      `gorm:"default:false" json:"disabled"`                     // Disabled accounts fail auth checks
	UserType       Role      `gorm:"type:varchar(10);default:user" json:"user_type"`    // Capability: user, vendor or both
	ActiveRole     *Role     `gorm:"type:varchar(10)" json:"active_role"`               // Role in effect, nil until first switch
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`                  // Timestamp of creation
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`                  // Timestamp of last update
	Profile        *UserProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`          // One-to-one user profile
	VendorProfile  *VendorProfile `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"vendor_profile,omitempty"` // One-to-one vendor profile
}

// BeforeCreate assigns a random ID when none was set
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserProfile Model (consumer-facing details, one per account)
type UserProfile struct {
	UserID          string    `gorm:"primaryKey" json:"user_id"`        // Foreign key to User
	Bio             string    `json:"bio"`                              // Short bio
	PhoneNumber     string    `json:"phone_number"`                     // Contact phone
	DeliveryAddress string    `json:"delivery_address"`                 // Default delivery address
	ImageURL        string    `json:"image_url"`                        // Profile image on the media host
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"` // Timestamp of last update
}
