package api

import (
	"net/http" // HTTP status codes

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper
	"craveseat/internal/utils"      // Upload utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Vendor profile create body
type VendorProfileCreateRequest struct {
	BusinessName      string `json:"business_name" binding:"required"` // Trading name
	ServiceCategoryID *uint  `json:"service_category_id"`              // Optional category
	VendorAddress     string `json:"vendor_address"`                   // Business address
	VendorPhone       string `json:"vendor_phone"`                     // Business phone
	VendorEmail       string `json:"vendor_email"`                     // Business email
}

// Vendor profile patch body; nil fields are left untouched
type VendorProfileUpdateRequest struct {
	BusinessName      *string `json:"business_name"`       // Trading name
	ServiceCategoryID *uint   `json:"service_category_id"` // Category
	VendorAddress     *string `json:"vendor_address"`      // Business address
	VendorPhone       *string `json:"vendor_phone"`        // Business phone
	VendorEmail       *string `json:"vendor_email"`        // Business email
	LogoURL           *string `json:"logo_url"`            // Logo URL
	BannerURL         *string `json:"banner_url"`          // Banner URL
}

// Vendor item create body
type VendorItemCreateRequest struct {
	ItemName           string `json:"item_name" binding:"required"`  // Item name
	ItemDescription    string `json:"item_description"`              // Item details
	ItemPrice          string `json:"item_price" binding:"required"` // Price as decimal string
	AvailabilityStatus string `json:"availability_status"`           // available or out_of_stock
}

// ListServiceCategoriesHandler returns the seeded vendor categories
func ListServiceCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []domain.ServiceCategory
		if err := db.Order("id").Find(&categories).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		OK(c, http.StatusOK, "Service categories", categories)
	}
}

// CreateVendorProfileHandler creates the caller's vendor profile. A "user"
// account is promoted to "both" capability; its active role stays "user"
// until it explicitly switches.
func CreateVendorProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req VendorProfileCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if user.VendorProfile != nil {
			Fail(c, http.StatusConflict, "Vendor profile already exists")
			return
		}
		profile := domain.VendorProfile{
			VendorID:          user.ID,               // One-to-one key
			BusinessName:      req.BusinessName,      // Trading name
			ServiceCategoryID: req.ServiceCategoryID, // Optional category
			VendorAddress:     req.VendorAddress,     // Business address
			VendorPhone:       req.VendorPhone,       // Business phone
			VendorEmail:       req.VendorEmail,       // Business email
		}
		// Profile creation and capability promotion commit together
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			domain.GrantVendorCapability(user)
			return tx.Model(&domain.User{}).Where("id = ?", user.ID).
				Update("user_type", user.UserType).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Vendor profile creation failed")
			Fail(c, http.StatusInternalServerError, "Failed to create vendor profile")
			return
		}
		user.VendorProfile = &profile
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"user_type": user.UserType,
		}).Info("Vendor profile created")
		OK(c, http.StatusOK, "Vendor profile created", profile)
	}
}

// GetVendorProfileHandler returns the caller's vendor profile
func GetVendorProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user.VendorProfile == nil {
			Fail(c, http.StatusNotFound, "Vendor profile not found")
			return
		}
		OK(c, http.StatusOK, "Vendor profile", user.VendorProfile)
	}
}

// UpdateVendorProfileHandler applies a partial vendor profile update
func UpdateVendorProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user.VendorProfile == nil {
			Fail(c, http.StatusNotFound, "Vendor profile not found")
			return
		}
		var req VendorProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		profile := user.VendorProfile
		updates := map[string]any{}
		if req.BusinessName != nil {
			updates["business_name"] = *req.BusinessName
			profile.BusinessName = *req.BusinessName
		}
		if req.ServiceCategoryID != nil {
			updates["service_category_id"] = *req.ServiceCategoryID
			profile.ServiceCategoryID = req.ServiceCategoryID
		}
		if req.VendorAddress != nil {
			updates["vendor_address"] = *req.VendorAddress
			profile.VendorAddress = *req.VendorAddress
		}
		if req.VendorPhone != nil {
			updates["vendor_phone"] = *req.VendorPhone
			profile.VendorPhone = *req.VendorPhone
		}
		if req.VendorEmail != nil {
			updates["vendor_email"] = *req.VendorEmail
			profile.VendorEmail = *req.VendorEmail
		}
		if req.LogoURL != nil {
			updates["logo_url"] = *req.LogoURL
			profile.LogoURL = *req.LogoURL
		}
		if req.BannerURL != nil {
			updates["banner_url"] = *req.BannerURL
			profile.BannerURL = *req.BannerURL
		}
		if len(updates) > 0 {
			if err := db.Model(&domain.VendorProfile{}).Where("vendor_id = ?", user.ID).
				Updates(updates).Error; err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to update vendor profile")
				return
			}
		}
		OK(c, http.StatusOK, "Vendor profile updated", profile)
	}
}

// uploadVendorImage stores an image and writes it to one vendor profile column
func uploadVendorImage(db *gorm.DB, up utils.Uploader, folder, column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user.VendorProfile == nil {
			Fail(c, http.StatusNotFound, "Vendor profile not found")
			return
		}
		url, ok := uploadFromForm(c, up, folder)
		if !ok {
			return
		}
		if err := db.Model(&domain.VendorProfile{}).Where("vendor_id = ?", user.ID).
			Update(column, url).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to save image URL")
			return
		}
		profile := user.VendorProfile
		if column == "logo_url" {
			profile.LogoURL = url
		} else {
			profile.BannerURL = url
		}
		OK(c, http.StatusOK, "Image uploaded", profile)
	}
}

// UploadVendorLogoHandler stores the vendor logo
func UploadVendorLogoHandler(db *gorm.DB, up utils.Uploader) gin.HandlerFunc {
	return uploadVendorImage(db, up, "vendor_logos", "logo_url")
}

// UploadVendorBannerHandler stores the vendor banner
func UploadVendorBannerHandler(db *gorm.DB, up utils.Uploader) gin.HandlerFunc {
	return uploadVendorImage(db, up, "vendor_banners", "banner_url")
}

// AddVendorItemHandler creates an item under the caller's vendor profile
func AddVendorItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user.VendorProfile == nil {
			Fail(c, http.StatusBadRequest, "Create a vendor profile before adding items")
			return
		}
		var req VendorItemCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		availability := domain.AvailabilityStatus(req.AvailabilityStatus)
		if availability == "" {
			availability = domain.ItemAvailable // Default stock state
		}
		if availability != domain.ItemAvailable && availability != domain.ItemOutOfStock {
			Fail(c, http.StatusBadRequest, "Invalid availability status")
			return
		}
		item := domain.VendorItem{
			VendorID:           user.ID,             // Owning vendor
			ItemName:           req.ItemName,        // Item name
			ItemDescription:    req.ItemDescription, // Item details
			ItemPrice:          req.ItemPrice,       // Price
			AvailabilityStatus: availability,        // Stock state
		}
		if err := db.Create(&item).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Item creation failed")
			Fail(c, http.StatusInternalServerError, "Failed to add item")
			return
		}
		OK(c, http.StatusCreated, "Item added", item)
	}
}

// ListVendorItemsHandler returns the caller's items
func ListVendorItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var items []domain.VendorItem
		if err := db.Where("vendor_id = ?", user.ID).Order("created_at desc").Find(&items).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to fetch items")
			return
		}
		OK(c, http.StatusOK, "Vendor items", items)
	}
}

// UploadVendorItemImageHandler stores an image for one item
func UploadVendorItemImageHandler(db *gorm.DB, up utils.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var item domain.VendorItem
		// Existence before ownership
		if err := db.First(&item, "id = ?", c.Param("item_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Item not found")
			return
		}
		if !domain.CanMutateVendorItem(user, &item) {
			Fail(c, http.StatusForbidden, "Not authorized to modify this item")
			return
		}
		url, ok := uploadFromForm(c, up, "vendor_items")
		if !ok {
			return
		}
		if err := db.Model(&item).Update("item_image_url", url).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to save image URL")
			return
		}
		item.ItemImageURL = url
		OK(c, http.StatusOK, "Image uploaded", item)
	}
}

// DeleteVendorItemHandler removes one of the caller's items
func DeleteVendorItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var item domain.VendorItem
		// Existence before ownership
		if err := db.First(&item, "id = ?", c.Param("item_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "Item not found")
			return
		}
		if !domain.CanMutateVendorItem(user, &item) {
			Fail(c, http.StatusForbidden, "Not authorized to delete this item")
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to delete item")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "item_id": item.ID}).Info("Item deleted")
		OK(c, http.StatusOK, "Item deleted", nil)
	}
}
