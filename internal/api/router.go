package api

import (
	"net/http" // HTTP status codes

	"craveseat/internal/middleware" // Auth and role middleware
	"craveseat/internal/utils"      // Issuer, uploader, verifier

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RouterDeps carries everything the route tree needs
type RouterDeps struct {
	DB           *gorm.DB             // Relational store
	Redis        *redis.Client        // Cache, may be nil
	Issuer       *utils.TokenIssuer   // Token mint/verify
	Uploader     utils.Uploader       // Media host, may be nil
	Google       utils.GoogleVerifier // Google ID token verification
	ShareBaseURL string               // Base for craving share links
}

// NewRouter builds the full route tree
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()                    // Gin router instance
	r.Use(gin.Logger(), Recovery())   // Access log + envelope panic recovery
	db, rdb := deps.DB, deps.Redis    // Shorthands
	authed := middleware.JWTAuthMiddleware(db, deps.Issuer) // Bearer token gate

	// Probes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to CraveSeat API", "version": "1.0.0"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/signup", SignupHandler(db, deps.Issuer))         // Registration endpoint
	auth.POST("/login", LoginHandler(db, deps.Issuer))           // Login endpoint
	auth.POST("/token", TokenHandler(db, deps.Issuer))           // OAuth2-compatible token endpoint
	auth.POST("/google", GoogleAuthHandler(db, deps.Issuer, deps.Google)) // Federated login
	authAuthed := auth.Group("", authed)
	authAuthed.POST("/switch-role", SwitchRoleHandler(db))                      // Role switch endpoint
	authAuthed.GET("/current-role", CurrentRoleHandler())                       // Effective role endpoint
	authAuthed.GET("/users/me", MeHandler())                                    // Current account endpoint
	authAuthed.GET("/users/:user_id", GetUserHandler(db))                       // Account lookup endpoint
	authAuthed.PUT("/users/me/change-password", ChangePasswordHandler(db))      // Password change endpoint

	// Profile routes (protected)
	profile := r.Group("/profile", authed)
	profile.GET("", GetProfileHandler())                                 // Merged profile view
	profile.PATCH("", UpdateProfileHandler(db))                          // Partial profile update
	profile.POST("/upload-image", UploadProfileImageHandler(db, deps.Uploader)) // Profile image upload
	profile.POST("/change-password", ChangePasswordHandler(db))          // Password change alias

	// Vendor routes (protected; item mutations additionally need vendor mode)
	vendor := r.Group("/vendor", authed)
	vendor.GET("/categories", ListServiceCategoriesHandler(db))                    // Seeded category list
	vendor.POST("", CreateVendorProfileHandler(db))                                // Vendor profile creation
	vendor.GET("", GetVendorProfileHandler())                                      // Vendor profile view
	vendor.PUT("", UpdateVendorProfileHandler(db))                                 // Vendor profile update
	vendor.POST("/upload-logo", UploadVendorLogoHandler(db, deps.Uploader))        // Logo upload
	vendor.POST("/upload-banner", UploadVendorBannerHandler(db, deps.Uploader))    // Banner upload
	items := vendor.Group("/items", middleware.VendorOnlyMiddleware())             // Vendor-mode gate
	items.POST("", AddVendorItemHandler(db))                                       // Item creation
	items.GET("", ListVendorItemsHandler(db))                                      // Item list
	items.POST("/:item_id/upload-image", UploadVendorItemImageHandler(db, deps.Uploader)) // Item image upload
	items.DELETE("/:item_id", DeleteVendorItemHandler(db))                         // Item deletion

	// Craving routes (protected)
	cravings := r.Group("/cravings", authed)
	cravings.POST("", CreateCravingHandler(db))                                     // Craving creation
	cravings.GET("", ListCravingsHandler(db))                                       // Filtered list
	cravings.GET("/my-cravings", MyCravingsHandler(db))                             // Own cravings
	cravings.GET("/categories", ListCravingCategoriesHandler())                     // Fixed category list
	cravings.GET("/:craving_id", GetCravingHandler(db))                             // Craving with responses
	cravings.GET("/:craving_id/share-url", ShareURLHandler(db, deps.ShareBaseURL))  // Share link
	cravings.POST("/:craving_id/upload-image", UploadCravingImageHandler(db, rdb, deps.Uploader)) // Image upload
	cravings.PUT("/:craving_id", UpdateCravingHandler(db, rdb))                     // Owner update
	cravings.DELETE("/:craving_id", DeleteCravingHandler(db, rdb))                  // Owner delete

	// Response routes (protected)
	responses := r.Group("/responses", authed)
	responses.POST("", CreateResponseHandler(db, rdb))                      // Offer creation
	responses.GET("/my-responses", MyResponsesHandler(db))                  // Own offers
	responses.GET("/craving/:craving_id", ListCravingResponsesHandler(db))  // Offers on one craving
	responses.GET("/:response_id", GetResponseHandler(db))                  // Single offer
	responses.PUT("/:response_id", UpdateResponseHandler(db, rdb))          // Guarded update
	responses.DELETE("/:response_id", DeleteResponseHandler(db, rdb))       // Creator delete

	// Public routes (no authentication; the share token is the capability)
	public := r.Group("/public")
	public.GET("/craving/:share_token", ViewSharedCravingHandler(db, rdb))         // Shared view
	public.POST("/craving/:share_token/respond", RespondToSharedCravingHandler(db, rdb)) // Anonymous respond
	public.GET("/profile/:user_id", PublicProfileHandler(db))                      // Limited profile

	// Notification routes (protected)
	notifications := r.Group("/notifications", authed)
	notifications.GET("", ListNotificationsHandler(db))                        // Notification list
	notifications.GET("/unread-count", UnreadCountHandler(db, rdb))            // Cached unread total
	notifications.POST("/mark-read", MarkReadHandler(db, rdb))                 // Mark specific read
	notifications.POST("/mark-all-read", MarkAllReadHandler(db, rdb))          // Mark all read
	notifications.DELETE("/:notification_id", DeleteNotificationHandler(db, rdb)) // Delete one

	return r
}
