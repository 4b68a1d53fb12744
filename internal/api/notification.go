package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query param parsing
	"time"     // Read timestamps and cache TTL

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper
	"craveseat/internal/utils"      // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Unread counts are cached briefly and invalidated on every notification write
const unreadCountTTL = 60 * time.Second

// Mark-read request body
type MarkReadRequest struct {
	NotificationIDs []string `json:"notification_ids" binding:"required"` // IDs to mark, scoped to the caller
}

// unreadCountKey is the cache key for a user's unread total
func unreadCountKey(userID string) string {
	return "notif:unread:" + userID
}

// createNotification persists a notification and invalidates the recipient's
// cached unread count. Failures are logged, never surfaced to the triggering
// request.
func createNotification(ctx context.Context, db *gorm.DB, rdb *redis.Client, n *domain.Notification) {
	if err := db.Create(n).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": n.UserID,
			"type":    n.Type,
			"error":   err.Error(),
		}).Error("Notification creation failed")
		return
	}
	_ = utils.DeleteCache(ctx, rdb, unreadCountKey(n.UserID)) // Invalidate unread count
}

// notifyCravingResponse tells the craving owner someone responded
func notifyCravingResponse(ctx context.Context, db *gorm.DB, rdb *redis.Client, ownerID, cravingID, responseID, responderName string) {
	if responderName == "" {
		responderName = "Someone"
	}
	createNotification(ctx, db, rdb, &domain.Notification{
		UserID:     ownerID,                                    // Recipient
		Type:       domain.NotifyCravingResponse,               // What happened
		Title:      "New Response to Your Craving",             // Headline
		Message:    responderName + " responded to your craving!", // Body
		CravingID:  &cravingID,                                 // Originating craving
		ResponseID: &responseID,                                // Originating response
	})
}

// notifyResponseStatusChange tells the responder their offer's status moved
func notifyResponseStatusChange(ctx context.Context, db *gorm.DB, rdb *redis.Client, responderID, cravingID, responseID string, status domain.ResponseStatus) {
	var (
		ntype   domain.NotificationType
		title   string
		message string
	)
	switch status {
	case domain.ResponseAccepted:
		ntype, title, message = domain.NotifyResponseAccepted, "Response Accepted", "Your response to a craving was accepted!"
	case domain.ResponseRejected:
		ntype, title, message = domain.NotifyResponseRejected, "Response Declined", "Your response to a craving was declined."
	case domain.ResponseCompleted:
		ntype, title, message = domain.NotifyCravingFulfilled, "Response Completed", "The craving you responded to has been completed!"
	default:
		ntype, title, message = domain.NotifySystem, "Response Status Updated", "Your response status has been updated."
	}
	createNotification(ctx, db, rdb, &domain.Notification{
		UserID:     responderID, // Recipient
		Type:       ntype,       // What happened
		Title:      title,       // Headline
		Message:    message,     // Body
		CravingID:  &cravingID,  // Originating craving
		ResponseID: &responseID, // Originating response
	})
}

// pagination reads skip/limit query params with bounds
func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	skip, limit := 0, defaultLimit
	if s := c.Query("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v // Set skip if valid
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= maxLimit {
			limit = v // Set limit if valid
		}
	}
	return skip, limit
}

// ListNotificationsHandler returns the caller's notifications, newest first
func ListNotificationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		skip, limit := pagination(c, 50, 100)
		query := db.Where("user_id = ?", user.ID)
		if c.Query("unread_only") == "true" {
			query = query.Where("is_read = ?", false)
		}
		var notifications []domain.Notification
		if err := query.Order("created_at desc").Offset(skip).Limit(limit).Find(&notifications).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch notifications")
			return
		}
		OK(c, http.StatusOK, "Notifications", notifications)
	}
}

// UnreadCountHandler returns the caller's unread total, cached in Redis
func UnreadCountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()
		key := unreadCountKey(user.ID)
		var count int64
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, key, &count); err == nil && found {
			OK(c, http.StatusOK, "Unread count", gin.H{"unread_count": count})
			return
		}
		if err := db.Model(&domain.Notification{}).
			Where("user_id = ? AND is_read = ?", user.ID, false).
			Count(&count).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to count notifications")
			return
		}
		_ = utils.SetCache(ctx, rdb, key, count, unreadCountTTL) // Cache the count
		OK(c, http.StatusOK, "Unread count", gin.H{"unread_count": count})
	}
}

// MarkReadHandler marks the given notifications as read. The flag only moves
// false -> true; already-read rows keep their original read_at.
func MarkReadHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req MarkReadRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		now := time.Now()
		result := db.Model(&domain.Notification{}).
			Where("id IN ? AND user_id = ? AND is_read = ?", req.NotificationIDs, user.ID, false).
			Updates(map[string]any{"is_read": true, "read_at": now})
		if result.Error != nil {
			Fail(c, http.StatusInternalServerError, "Failed to mark notifications")
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, unreadCountKey(user.ID)) // Invalidate unread count
		OK(c, http.StatusOK, "Notifications marked read", gin.H{"marked_read": result.RowsAffected})
	}
}

// MarkAllReadHandler marks every unread notification of the caller as read
func MarkAllReadHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		now := time.Now()
		result := db.Model(&domain.Notification{}).
			Where("user_id = ? AND is_read = ?", user.ID, false).
			Updates(map[string]any{"is_read": true, "read_at": now})
		if result.Error != nil {
			Fail(c, http.StatusInternalServerError, "Failed to mark notifications")
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, unreadCountKey(user.ID)) // Invalidate unread count
		OK(c, http.StatusOK, "All notifications marked read", gin.H{"marked_read": result.RowsAffected})
	}
}

// DeleteNotificationHandler removes one of the caller's notifications
func DeleteNotificationHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		result := db.Where("id = ? AND user_id = ?", c.Param("notification_id"), user.ID).
			Delete(&domain.Notification{})
		if result.Error != nil {
			Fail(c, http.StatusInternalServerError, "Failed to delete notification")
			return
		}
		if result.RowsAffected == 0 {
			Fail(c, http.StatusNotFound, "Notification not found")
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, unreadCountKey(user.ID)) // Invalidate unread count
		OK(c, http.StatusOK, "Notification deleted", nil)
	}
}
