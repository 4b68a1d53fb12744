package domain

import (
	"time"

	"github.com/google/uuid" // Random IDs
	"gorm.io/gorm"           // GORM ORM library
)

// VendorStatus is the operating state of a vendor profile
type VendorStatus string

// VerificationStatus tracks manual vendor verification
type VerificationStatus string

// AvailabilityStatus marks whether an item can currently be ordered
type AvailabilityStatus string

// Vendor enum values
const (
	VendorActive    VendorStatus = "active"
	VendorInactive  VendorStatus = "inactive"
	VendorSuspended VendorStatus = "suspended"

	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"

	ItemAvailable  AvailabilityStatus = "available"
	ItemOutOfStock AvailabilityStatus = "out_of_stock"
)

// ServiceCategory Model (table-driven vendor categories, seeded by migrate)
type ServiceCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`    // Primary key
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"` // Unique category name
	Description string    `json:"description"`                           // Human description
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`      // Timestamp of creation
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`      // Timestamp of last update
}

// VendorProfile Model (one-to-one with User, keyed by the user ID)
type VendorProfile struct {
	VendorID           string             `gorm:"primaryKey" json:"vendor_id"`                           // Foreign key to User
	BusinessName       string             `gorm:"size:200" json:"business_name"`                         // Trading name
	ServiceCategoryID  *uint              `json:"service_category_id"`                                   // Optional category
	VendorAddress      string             `json:"vendor_address"`                                        // Business address
	VendorPhone        string             `gorm:"size:50" json:"vendor_phone"`                           // Business phone
	VendorEmail        string             `gorm:"size:120" json:"vendor_email"`                          // Business email
	LogoURL            string             `json:"logo_url"`                                              // Logo on the media host
	BannerURL          string             `json:"banner_url"`                                            // Banner on the media host
	Rating             float64            `gorm:"default:0" json:"rating"`                               // Aggregate rating
	IsVerified         bool               `gorm:"default:false" json:"is_verified"`                      // Verification shortcut flag
	Status             VendorStatus       `gorm:"type:varchar(20);default:active" json:"status"`         // Operating state
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:pending" json:"verification_status"` // Manual review state
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`                      // Timestamp of creation
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`                      // Timestamp of last update
	Items              []VendorItem       `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // Items offered
}

// VendorItem Model (one vendor, many items)
type VendorItem struct {
	ID                 string             `gorm:"primaryKey" json:"id"`                                // Primary key (UUID)
	VendorID           string             `gorm:"index;not null" json:"vendor_id"`                     // Owning vendor profile
	ItemName           string             `gorm:"size:200;not null" json:"item_name"`                  // Item name
	ItemDescription    string             `json:"item_description"`                                    // Item details
	ItemPrice          string             `gorm:"not null" json:"item_price"`                          // Price as decimal string
	ItemImageURL       string             `json:"item_image_url"`                                      // Image on the media host
	AvailabilityStatus AvailabilityStatus `gorm:"type:varchar(20);default:available" json:"availability_status"` // Stock state
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`                    // Timestamp of creation
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`                    // Timestamp of last update
}

// BeforeCreate assigns a random ID when none was set
func (v *VendorItem) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
