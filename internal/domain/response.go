package domain

import (
	"time"

	"github.com/google/uuid" // Random IDs
	"gorm.io/gorm"           // GORM ORM library
)

// ResponseStatus is the lifecycle of an offer against a craving
type ResponseStatus string

// Response status values
const (
	ResponsePending   ResponseStatus = "pending"   // Awaiting the craving owner
	ResponseAccepted  ResponseStatus = "accepted"  // Owner accepted the offer
	ResponseRejected  ResponseStatus = "rejected"  // Owner declined the offer
	ResponseCompleted ResponseStatus = "completed" // Offer carried out
)

// Response Model
type Response struct {
	ID               string         `gorm:"primaryKey" json:"id"`                             // Primary key (UUID)
	CravingID        string         `gorm:"index;not null" json:"craving_id"`                 // Parent craving
	UserID           *string        `gorm:"index" json:"user_id"`                             // Nil for anonymous responses
	Message          string         `gorm:"not null" json:"message"`                          // Offer text
	Status           ResponseStatus `gorm:"type:varchar(20);default:pending" json:"status"`   // Lifecycle status
	IsAnonymous      bool           `gorm:"default:false;not null" json:"is_anonymous"`       // Posted without an account
	AnonymousName    string         `gorm:"size:100" json:"anonymous_name,omitempty"`         // Display name for anonymous responders
	AnonymousContact string         `gorm:"size:200" json:"anonymous_contact,omitempty"`      // Optional contact for anonymous responders
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`                 // Timestamp of creation
}

// BeforeCreate assigns a random ID when none was set
func (r *Response) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
