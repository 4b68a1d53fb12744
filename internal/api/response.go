package api

import (
	"net/http" // HTTP status codes

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Response create body
type ResponseCreateRequest struct {
	Message          string `json:"message" binding:"required"` // Offer text
	IsAnonymous      bool   `json:"is_anonymous"`               // Hide the responder's identity
	AnonymousName    string `json:"anonymous_name"`             // Display name when anonymous
	AnonymousContact string `json:"anonymous_contact"`          // Optional contact when anonymous
}

// Response patch body; nil fields are left untouched. Message and status have
// different owners, so each is authorized separately.
type ResponseUpdateRequest struct {
	Message *string                `json:"message"` // Editable by the response creator only
	Status  *domain.ResponseStatus `json:"status"`  // Editable by the craving owner only
}

// validResponseStatus reports whether the status is a known lifecycle value
func validResponseStatus(s domain.ResponseStatus) bool {
	switch s {
	case domain.ResponsePending, domain.ResponseAccepted, domain.ResponseRejected, domain.ResponseCompleted:
		return true
	}
	return false
}

// CreateResponseHandler posts an offer against an open craving
func CreateResponseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		cravingID := c.Query("craving_id")
		if cravingID == "" {
			Fail(c, http.StatusBadRequest, "craving_id query parameter is required")
			return
		}
		var req ResponseCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		var craving domain.Craving
		if err := db.First(&craving, "id = ?", cravingID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		// Responding to your own craving makes no sense
		if craving.UserID == user.ID {
			Fail(c, http.StatusBadRequest, "Cannot respond to your own craving")
			return
		}
		if craving.Status != domain.CravingOpen {
			Fail(c, http.StatusBadRequest, "Craving is no longer accepting responses")
			return
		}
		userID := user.ID
		response := domain.Response{
			CravingID:        craving.ID,             // Parent craving
			UserID:           &userID,                // Authenticated responder
			Message:          req.Message,            // Offer text
			Status:           domain.ResponsePending, // Awaiting the owner
			IsAnonymous:      req.IsAnonymous,        // Identity hidden from views, creator still recorded
			AnonymousName:    req.AnonymousName,      // Display name when anonymous
			AnonymousContact: req.AnonymousContact,   // Contact when anonymous
		}
		if err := db.Create(&response).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,
				"craving_id": craving.ID,
				"error":      err.Error(),
			}).Error("Response creation failed")
			Fail(c, http.StatusInternalServerError, "Failed to create response")
			return
		}
		// Tell the craving owner
		responderName := user.Username
		if req.IsAnonymous && req.AnonymousName != "" {
			responderName = req.AnonymousName
		}
		notifyCravingResponse(c.Request.Context(), db, rdb, craving.UserID, craving.ID, response.ID, responderName)
		invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		OK(c, http.StatusCreated, "Response created", response)
	}
}

// ListCravingResponsesHandler returns all responses for one craving
func ListCravingResponsesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var craving domain.Craving
		if err := db.First(&craving, "id = ?", c.Param("craving_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		var responses []domain.Response
		if err := db.Where("craving_id = ?", craving.ID).
			Order("created_at desc").Find(&responses).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch responses")
			return
		}
		OK(c, http.StatusOK, "Craving responses", responses)
	}
}

// MyResponsesHandler returns the caller's responses, newest first
func MyResponsesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		skip, limit := pagination(c, 50, 100)
		var responses []domain.Response
		if err := db.Where("user_id = ?", user.ID).
			Order("created_at desc").Offset(skip).Limit(limit).Find(&responses).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch responses")
			return
		}
		OK(c, http.StatusOK, "My responses", responses)
	}
}

// GetResponseHandler returns one response
func GetResponseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var response domain.Response
		if err := db.First(&response, "id = ?", c.Param("response_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Response not found")
			return
		}
		OK(c, http.StatusOK, "Response", response)
	}
}

// UpdateResponseHandler edits a response. The message belongs to its creator
// (never editable when anonymous); the status belongs to the craving owner.
func UpdateResponseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var response domain.Response
		// Existence before ownership
		if err := db.First(&response, "id = ?", c.Param("response_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Response not found")
			return
		}
		var craving domain.Craving
		if err := db.First(&craving, "id = ?", response.CravingID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Craving not found")
			return
		}
		var req ResponseUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if req.Message != nil && !domain.CanEditResponseMessage(user.ID, &response) {
			Fail(c, http.StatusForbidden, "Not authorized to edit this response message")
			return
		}
		if req.Status != nil {
			if !validResponseStatus(*req.Status) {
				Fail(c, http.StatusBadRequest, "Unknown response status")
				return
			}
			if !domain.CanChangeResponseStatus(user.ID, &craving) {
				Fail(c, http.StatusForbidden, "Only the craving owner can change the response status")
				return
			}
		}
		updates := map[string]any{}
		if req.Message != nil {
			updates["message"] = *req.Message
			response.Message = *req.Message
		}
		statusChanged := req.Status != nil && *req.Status != response.Status
		if req.Status != nil {
			updates["status"] = *req.Status
			response.Status = *req.Status
		}
		if len(updates) > 0 {
			if err := db.Model(&domain.Response{}).Where("id = ?", response.ID).Updates(updates).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to update response")
				return
			}
			invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		}
		// Anonymous responders have no account to notify
		if statusChanged && response.UserID != nil {
			notifyResponseStatusChange(c.Request.Context(), db, rdb, *response.UserID, craving.ID, response.ID, response.Status)
		}
		OK(c, http.StatusOK, "Response updated", response)
	}
}

// DeleteResponseHandler removes a response; creator only
func DeleteResponseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var response domain.Response
		// Existence before ownership
		if err := db.First(&response, "id = ?", c.Param("response_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Response not found")
			return
		}
		if !domain.CanDeleteResponse(user.ID, &response) {
			Fail(c, http.StatusForbidden, "Not authorized to delete this response")
			return
		}
		var craving domain.Craving
		_ = db.First(&craving, "id = ?", response.CravingID).Error // Best effort, for cache invalidation
		if err := db.Delete(&response).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to delete response")
			return
		}
		if craving.ShareToken != "" {
			invalidateSharedCraving(c, rdb, craving.ShareToken) // Public view changed
		}
		OK(c, http.StatusOK, "Response deleted", nil)
	}
}
