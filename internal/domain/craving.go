package domain

import (
	"time"

	"github.com/google/uuid" // Random IDs and share tokens
	"gorm.io/gorm"           // GORM ORM library
)

// CravingStatus is the lifecycle of a craving
type CravingStatus string

// Craving status values
const (
	CravingOpen       CravingStatus = "open"        // Accepting responses
	CravingInProgress CravingStatus = "in_progress" // Owner picked a responder
	CravingFulfilled  CravingStatus = "fulfilled"   // Done
	CravingCancelled  CravingStatus = "cancelled"   // Abandoned by the owner
)

// CravingCategories is the fixed category list exposed by /cravings/categories
var CravingCategories = []string{
	"local_delicacies",
	"continental",
	"street_food",
	"desserts",
	"beverages",
	"snacks",
	"healthy",
	"breakfast",
	"night_cravings",
	"seafood",
	"grills",
	"fast_food",
	"other",
}

// ValidCravingCategory reports whether the category is one of the known values
func ValidCravingCategory(category string) bool {
	for _, c := range CravingCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Craving Model
type Craving struct {
	ID                string        `gorm:"primaryKey" json:"id"`                            // Primary key (UUID)
	UserID            string        `gorm:"index;not null" json:"user_id"`                   // Owning account
	Name              string        `gorm:"size:200;not null" json:"name"`                   // What is craved
	Description       string        `json:"description"`                                     // Free-form details
	Category          string        `gorm:"not null" json:"category"`                        // One of CravingCategories
	Status            CravingStatus `gorm:"type:varchar(20);default:open" json:"status"`    // Lifecycle status
	Anonymous         bool          `gorm:"default:false" json:"anonymous"`                  // Hide owner on public views
	ImageURL          string        `json:"image_url"`                                       // Image on the media host
	PriceEstimate     string        `json:"price_estimate"`                                  // Owner's price guess
	DeliveryAddress   string        `json:"delivery_address"`                                // Where to deliver
	RecommendedVendor string        `json:"recommended_vendor"`                              // Optional vendor suggestion
	VendorLink        string        `json:"vendor_link"`                                     // Optional vendor URL
	ShareToken        string        `gorm:"uniqueIndex;not null" json:"share_token"`         // Opaque capability for anonymous access, immutable
	Notes             string        `json:"notes"`                                           // Extra notes
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`                // Timestamp of creation
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`                // Timestamp of last update
	FulfilledAt       *time.Time    `json:"fulfilled_at"`                                    // Set once when status first becomes fulfilled
	Responses         []Response    `gorm:"foreignKey:CravingID;constraint:OnDelete:CASCADE" json:"responses,omitempty"` // Offers against this craving
}

// BeforeCreate assigns the ID and mints the share token
func (c *Craving) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ShareToken == "" {
		// Random UUIDv4: collisions are astronomically unlikely and the
		// token is unguessable, so holding it is the whole access check
		c.ShareToken = uuid.NewString()
	}
	return nil
}
