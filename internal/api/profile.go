package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper
	"craveseat/internal/utils"      // Upload utilities

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Profile patch body; nil fields are left untouched
type ProfileUpdateRequest struct {
	Username        *string `json:"username"`         // Moves the account's handle, must stay unique
	FullName        *string `json:"full_name"`        // Display name
	Bio             *string `json:"bio"`              // Short bio
	PhoneNumber     *string `json:"phone_number"`     // Validated phone
	DeliveryAddress *string `json:"delivery_address"` // Default delivery address
	ImageURL        *string `json:"image_url"`        // Profile image URL
}

// profileView merges account and profile fields into one client-facing object
func profileView(user *domain.User, profile *domain.UserProfile) gin.H {
	view := gin.H{
		"user_id":   user.ID,        // Account ID
		"username":  user.Username,  // Handle
		"email":     user.Email,     // Email
		"full_name": user.FullName,  // Display name
		"user_type": user.UserType,  // Capability
	}
	if profile != nil {
		view["bio"] = profile.Bio
		view["phone_number"] = profile.PhoneNumber
		view["delivery_address"] = profile.DeliveryAddress
		view["image_url"] = profile.ImageURL
		view["created_at"] = profile.CreatedAt
		view["updated_at"] = profile.UpdatedAt
	} else {
		view["created_at"] = user.CreatedAt
		view["updated_at"] = user.UpdatedAt
	}
	return view
}

// GetProfileHandler returns the caller's merged account + profile view
func GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		OK(c, http.StatusOK, "Profile", profileView(user, user.Profile))
	}
}

// UpdateProfileHandler applies a partial profile update, creating the profile
// row when a legacy account has none
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req ProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if req.PhoneNumber != nil && !isValidPhone(*req.PhoneNumber) {
			Fail(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		// Username moves live on the users table, not the profile
		if req.Username != nil {
			username := strings.ToLower(strings.TrimSpace(*req.Username))
			if !usernameRe.MatchString(username) {
				Fail(c, http.StatusBadRequest, "Username must be 3-30 characters: letters, digits, underscore")
				return
			}
			if username != user.Username {
				var existing domain.User
				if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
					Fail(c, http.StatusConflict, "Username already taken")
					return
				}
				if err := db.Model(&domain.User{}).Where("id = ?", user.ID).
					Update("username", username).Error; err != nil {
					Fail(c, http.StatusInternalServerError, "Failed to update username")
					return
				}
				user.Username = username
			}
		}
		if req.FullName != nil {
			if err := db.Model(&domain.User{}).Where("id = ?", user.ID).
				Update("full_name", *req.FullName).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to update profile")
				return
			}
			user.FullName = *req.FullName
		}
		// Create the profile row on first touch
		profile := user.Profile
		if profile == nil {
			profile = &domain.UserProfile{UserID: user.ID}
			if err := db.Create(profile).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to create profile")
				return
			}
		}
		updates := map[string]any{}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
			profile.Bio = *req.Bio
		}
		if req.PhoneNumber != nil {
			updates["phone_number"] = *req.PhoneNumber
			profile.PhoneNumber = *req.PhoneNumber
		}
		if req.DeliveryAddress != nil {
			updates["delivery_address"] = *req.DeliveryAddress
			profile.DeliveryAddress = *req.DeliveryAddress
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
			profile.ImageURL = *req.ImageURL
		}
		if len(updates) > 0 {
			if err := db.Model(&domain.UserProfile{}).Where("user_id = ?", user.ID).
				Updates(updates).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to update profile")
				return
			}
		}
		OK(c, http.StatusOK, "Profile updated", profileView(user, profile))
	}
}

// UploadProfileImageHandler stores a profile image on the media host
func UploadProfileImageHandler(db *gorm.DB, up utils.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		imageURL, ok := uploadFromForm(c, up, "user_profiles")
		if !ok {
			return
		}
		profile := user.Profile
		if profile == nil {
			profile = &domain.UserProfile{UserID: user.ID}
			if err := db.Create(profile).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to create profile")
				return
			}
		}
		if err := db.Model(&domain.UserProfile{}).Where("user_id = ?", user.ID).
			Update("image_url", imageURL).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to save image URL")
			return
		}
		profile.ImageURL = imageURL
		OK(c, http.StatusOK, "Image uploaded", profileView(user, profile))
	}
}
