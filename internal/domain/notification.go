package domain

import (
	"time"

	"github.com/google/uuid" // Random IDs
	"gorm.io/gorm"           // GORM ORM library
)

// NotificationType classifies what triggered a notification
type NotificationType string

// Notification type values
const (
	NotifyCravingResponse  NotificationType = "craving_response"  // Someone responded to your craving
	NotifyResponseAccepted NotificationType = "response_accepted" // Your response was accepted
	NotifyResponseRejected NotificationType = "response_rejected" // Your response was declined
	NotifyCravingFulfilled NotificationType = "craving_fulfilled" // The craving you responded to completed
	NotifySystem           NotificationType = "system"            // System notices
)

// Notification Model
type Notification struct {
	ID         string           `gorm:"primaryKey" json:"id"`                         // Primary key (UUID)
	UserID     string           `gorm:"index;not null" json:"user_id"`                // Recipient account
	Type       NotificationType `gorm:"type:varchar(30);not null" json:"type"`        // What happened
	Title      string           `gorm:"size:200;not null" json:"title"`               // Short headline
	Message    string           `gorm:"not null" json:"message"`                      // Body text
	CravingID  *string          `json:"craving_id,omitempty"`                         // Originating craving, if any
	ResponseID *string          `json:"response_id,omitempty"`                        // Originating response, if any
	IsRead     bool             `gorm:"default:false;not null" json:"is_read"`        // Flips false -> true, never back
	ReadAt     *time.Time       `json:"read_at,omitempty"`                            // When it was first read
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`             // Timestamp of creation
}

// BeforeCreate assigns a random ID when none was set
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
