package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"craveseat/internal/domain" // Domain models
	"craveseat/internal/utils"  // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Public craving views are read-heavy and anonymous, so they are cached
const sharedCravingTTL = 60 * time.Second

// ViewSharedCravingHandler returns a craving and its responses to anyone
// holding the share token. No authentication: the token is the capability.
func ViewSharedCravingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("share_token")
		ctx := c.Request.Context()
		key := sharedCravingKey(token)
		var craving domain.Craving
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, key, &craving); err == nil && found {
			OK(c, http.StatusOK, "Shared craving", craving)
			return
		}
		if err := db.Preload("Responses").First(&craving, "share_token = ?", token).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		_ = utils.SetCache(ctx, rdb, key, craving, sharedCravingTTL) // Cache the public view
		OK(c, http.StatusOK, "Shared craving", craving)
	}
}

// RespondToSharedCravingHandler creates an anonymous response against an open
// craving. The response has no owning account: user_id stays null forever and
// the message can never be edited afterwards.
func RespondToSharedCravingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var craving domain.Craving
		if err := db.First(&craving, "share_token = ?", c.Param("share_token")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		if craving.Status != domain.CravingOpen {
			Fail(c, http.StatusBadRequest, "Craving is no longer accepting responses")
			return
		}
		var req ResponseCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		name := req.AnonymousName
		if name == "" {
			name = "Anonymous" // Default display name
		}
		response := domain.Response{
			CravingID:        craving.ID,             // Parent craving
			UserID:           nil,                    // No owning account
			Message:          req.Message,            // Offer text
			Status:           domain.ResponsePending, // Awaiting the owner
			IsAnonymous:      true,                   // Always anonymous on this path
			AnonymousName:    name,                   // Display name
			AnonymousContact: req.AnonymousContact,   // Optional contact
		}
		if err := db.Create(&response).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to create response")
			return
		}
		notifyCravingResponse(c.Request.Context(), db, rdb, craving.UserID, craving.ID, response.ID, name)
		invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		OK(c, http.StatusCreated, "Response created", response)
	}
}

// PublicProfileHandler returns the limited public view of an account
func PublicProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.Preload("Profile").First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "User not found")
			return
		}
		view := gin.H{
			"username":   user.Username,  // Handle
			"full_name":  user.FullName,  // Display name
			"user_type":  user.UserType,  // Capability
			"created_at": user.CreatedAt, // Member since
		}
		if user.Profile != nil {
			view["bio"] = user.Profile.Bio
			view["profile_image"] = user.Profile.ImageURL
		}
		OK(c, http.StatusOK, "Public profile", view)
	}
}
