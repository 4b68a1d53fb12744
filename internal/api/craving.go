package api

import (
	"net/http" // HTTP status codes
	"time"     // Fulfilled timestamp

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper
	"craveseat/internal/utils"      // Upload and cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Craving create body
type CravingCreateRequest struct {
	Name              string `json:"name" binding:"required"`     // What is craved
	Description       string `json:"description"`                 // Free-form details
	Category          string `json:"category" binding:"required"` // One of the fixed categories
	Anonymous         bool   `json:"anonymous"`                   // Hide owner on public views
	PriceEstimate     string `json:"price_estimate"`              // Owner's price guess
	DeliveryAddress   string `json:"delivery_address"`            // Where to deliver
	RecommendedVendor string `json:"recommended_vendor"`          // Optional vendor suggestion
	VendorLink        string `json:"vendor_link"`                 // Optional vendor URL
	Notes             string `json:"notes"`                       // Extra notes
	ImageURL          string `json:"image_url"`                   // Optional pre-uploaded image URL
}

// Craving patch body; nil fields are left untouched
type CravingUpdateRequest struct {
	Name              *string               `json:"name"`               // What is craved
	Description       *string               `json:"description"`        // Free-form details
	Category          *string               `json:"category"`           // One of the fixed categories
	Status            *domain.CravingStatus `json:"status"`             // Lifecycle status
	Anonymous         *bool                 `json:"anonymous"`          // Hide owner on public views
	PriceEstimate     *string               `json:"price_estimate"`     // Owner's price guess
	DeliveryAddress   *string               `json:"delivery_address"`   // Where to deliver
	RecommendedVendor *string               `json:"recommended_vendor"` // Optional vendor suggestion
	VendorLink        *string               `json:"vendor_link"`        // Optional vendor URL
	Notes             *string               `json:"notes"`              // Extra notes
	ImageURL          *string               `json:"image_url"`          // Image URL
}

// sharedCravingKey is the cache key for a public craving view
func sharedCravingKey(shareToken string) string {
	return "public:craving:" + shareToken
}

// invalidateSharedCraving drops the cached public view after any mutation
func invalidateSharedCraving(c *gin.Context, rdb *redis.Client, shareToken string) {
	_ = utils.DeleteCache(c.Request.Context(), rdb, sharedCravingKey(shareToken))
}

// validCravingStatus reports whether the status is a known lifecycle value
func validCravingStatus(s domain.CravingStatus) bool {
	switch s {
	case domain.CravingOpen, domain.CravingInProgress, domain.CravingFulfilled, domain.CravingCancelled:
		return true
	}
	return false
}

// CreateCravingHandler posts a new craving and mints its share token
func CreateCravingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req CravingCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if !domain.ValidCravingCategory(req.Category) {
			Fail(c, http.StatusBadRequest, "Unknown craving category")
			return
		}
		craving := domain.Craving{
			UserID:            user.ID,               // Owner
			Name:              req.Name,              // What is craved
			Description:       req.Description,       // Details
			Category:          req.Category,          // Validated category
			Status:            domain.CravingOpen,    // New cravings accept responses
			Anonymous:         req.Anonymous,         // Public anonymity flag
			PriceEstimate:     req.PriceEstimate,     // Price guess
			DeliveryAddress:   req.DeliveryAddress,   // Delivery address
			RecommendedVendor: req.RecommendedVendor, // Vendor suggestion
			VendorLink:        req.VendorLink,        // Vendor URL
			Notes:             req.Notes,             // Extra notes
			ImageURL:          req.ImageURL,          // Optional image
		}
		if err := db.Create(&craving).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Craving creation failed")
			Fail(c, http.StatusInternalServerError, "Failed to create craving")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"craving_id": craving.ID,
			"category":   craving.Category,
		}).Info("Craving created")
		OK(c, http.StatusCreated, "Craving created", craving)
	}
}

// ListCravingsHandler returns cravings with optional status/category filters
func ListCravingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c, 50, 100)
		query := db.Model(&domain.Craving{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		var cravings []domain.Craving
		if err := query.Order("created_at desc").Offset(skip).Limit(limit).Find(&cravings).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch cravings")
			return
		}
		OK(c, http.StatusOK, "Cravings", cravings)
	}
}

// MyCravingsHandler returns the caller's cravings, newest first
func MyCravingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		skip, limit := pagination(c, 50, 100)
		var cravings []domain.Craving
		if err := db.Where("user_id = ?", user.ID).
			Order("created_at desc").Offset(skip).Limit(limit).Find(&cravings).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch cravings")
			return
		}
		OK(c, http.StatusOK, "My cravings", cravings)
	}
}

// ListCravingCategoriesHandler returns the fixed craving category list
func ListCravingCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		OK(c, http.StatusOK, "Craving categories", domain.CravingCategories)
	}
}

// GetCravingHandler returns one craving with its responses
func GetCravingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var craving domain.Craving
		if err := db.Preload("Responses").First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		OK(c, http.StatusOK, "Craving", craving)
	}
}

// ShareURLHandler returns the craving's share token and full share link
func ShareURLHandler(db *gorm.DB, shareBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var craving domain.Craving
		// Existence before ownership
		if err := db.First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		if !domain.CanMutateCraving(user.ID, &craving) {
			Fail(c, http.StatusForbidden, "Not authorized to share this craving")
			return
		}
		OK(c, http.StatusOK, "Share this link with anyone to let them view and respond to your craving", gin.H{
			"share_token": craving.ShareToken,                      // Opaque capability
			"share_url":   shareBaseURL + "/" + craving.ShareToken, // Full link
		})
	}
}

// UpdateCravingHandler applies a partial update; owner only
func UpdateCravingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var craving domain.Craving
		// Existence before ownership
		if err := db.First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		if !domain.CanMutateCraving(user.ID, &craving) {
			Fail(c, http.StatusForbidden, "Not authorized to modify this craving")
			return
		}
		var req CravingUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if req.Category != nil && !domain.ValidCravingCategory(*req.Category) {
			Fail(c, http.StatusBadRequest, "Unknown craving category")
			return
		}
		if req.Status != nil && !validCravingStatus(*req.Status) {
			Fail(c, http.StatusBadRequest, "Unknown craving status")
			return
		}
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
			craving.Name = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
			craving.Description = *req.Description
		}
		if req.Category != nil {
			updates["category"] = *req.Category
			craving.Category = *req.Category
		}
		if req.Status != nil {
			updates["status"] = *req.Status
			craving.Status = *req.Status
			// Fulfilled timestamp is set exactly once
			if *req.Status == domain.CravingFulfilled && craving.FulfilledAt == nil {
				now := time.Now()
				updates["fulfilled_at"] = now
				craving.FulfilledAt = &now
			}
		}
		if req.Anonymous != nil {
			updates["anonymous"] = *req.Anonymous
			craving.Anonymous = *req.Anonymous
		}
		if req.PriceEstimate != nil {
			updates["price_estimate"] = *req.PriceEstimate
			craving.PriceEstimate = *req.PriceEstimate
		}
		if req.DeliveryAddress != nil {
			updates["delivery_address"] = *req.DeliveryAddress
			craving.DeliveryAddress = *req.DeliveryAddress
		}
		if req.RecommendedVendor != nil {
			updates["recommended_vendor"] = *req.RecommendedVendor
			craving.RecommendedVendor = *req.RecommendedVendor
		}
		if req.VendorLink != nil {
			updates["vendor_link"] = *req.VendorLink
			craving.VendorLink = *req.VendorLink
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
			craving.Notes = *req.Notes
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
			craving.ImageURL = *req.ImageURL
		}
		if len(updates) > 0 {
			if err := db.Model(&domain.Craving{}).Where("id = ?", craving.ID).Updates(updates).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to update craving")
				return
			}
			invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		}
		OK(c, http.StatusOK, "Craving updated", craving)
	}
}

// UploadCravingImageHandler stores an image for one craving; owner only
func UploadCravingImageHandler(db *gorm.DB, rdb *redis.Client, up utils.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var craving domain.Craving
		// Existence before ownership
		if err := db.First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		if !domain.CanMutateCraving(user.ID, &craving) {
			Fail(c, http.StatusForbidden, "Not authorized to modify this craving")
			return
		}
		url, ok := uploadFromForm(c, up, "cravings")
		if !ok {
			return
		}
		if err := db.Model(&craving).Update("image_url", url).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to save image URL")
			return
		}
		craving.ImageURL = url
		invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		OK(c, http.StatusOK, "Image uploaded", craving)
	}
}

// DeleteCravingHandler removes a craving and, via the FK constraint, its
// responses; owner only
func DeleteCravingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var craving domain.Craving
		// Existence before ownership
		if err := db.First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		if !domain.CanMutateCraving(user.ID, &craving) {
			Fail(c, http.StatusForbidden, "Not authorized to delete this craving")
			return
		}
		// Responses go with the craving in one transaction
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("craving_id = ?", craving.ID).Delete(&domain.Response{}).Error; err != nil {
				return err
			}
			return tx.Delete(&craving).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,
				"craving_id": craving.ID,
				"error":      err.Error(),
			}).Error("Craving deletion failed")
			Fail(c, http.StatusInternalServerError, "Failed to delete craving")
			return
		}
		invalidateSharedCraving(c, rdb, craving.ShareToken) // Share link is dead now
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "craving_id": craving.ID}).Info("Craving deleted")
		OK(c, http.StatusOK, "Craving deleted", nil)
	}
}
