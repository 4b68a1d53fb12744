package api

import (
	"errors"   // Error matching
	"fmt"      // Username de-collision
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"craveseat/internal/domain"     // Domain models
	"craveseat/internal/middleware" // Current user helper
	"craveseat/internal/utils"      // JWT and password utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Random password for federated signups
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Signup request body
type SignupRequest struct {
	Username        string `json:"username" binding:"required"`         // Unique handle
	Email           string `json:"email" binding:"required,email"`      // Unique email
	FullName        string `json:"full_name"`                           // Display name
	Password        string `json:"password" binding:"required"`         // Raw secret
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Must match password
	PhoneNumber     string `json:"phone_number" binding:"required"`     // Required contact phone
	DeliveryAddress string `json:"delivery_address"`                    // Optional default address
	Bio             string `json:"bio"`                                 // Optional bio
}

// Login request body
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" binding:"required"` // Either identifier works
	Password        string `json:"password" binding:"required"`          // Raw secret
}

// Google sign-in request body
type GoogleAuthRequest struct {
	IDToken     string `json:"id_token" binding:"required"` // Google-issued ID token
	PhoneNumber string `json:"phone_number"`                // Used only on first signup
}

// Role switch request body
type SwitchRoleRequest struct {
	TargetRole string `json:"target_role" binding:"required"` // "user" or "vendor"
}

// Password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"` // Current secret
	NewPassword string `json:"new_password" binding:"required"` // Replacement secret
}

var (
	usernameRe  = regexp.MustCompile(`^[a-z0-9_]{3,30}$`) // Checked after lower-casing
	phoneRe     = regexp.MustCompile(`^\+?[0-9]{7,15}$`)  // E.164-ish phone format
	nonHandleRe = regexp.MustCompile(`[^a-z0-9_]`)        // Stripped from derived handles
)

// isValidPhone checks the phone number format
func isValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// authPayload is the token + user body returned by signup/login/google
func authPayload(token string, user *domain.User) gin.H {
	return gin.H{
		"access_token": token,    // Bearer token
		"token_type":   "bearer", // OAuth2 token type
		"user":         user,     // The account
	}
}

// findByIdentifier resolves a username or email, case-insensitively
func findByIdentifier(db *gorm.DB, identifier string) (*domain.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	var user domain.User
	if err := db.Where("username = ? OR email = ?", ident, ident).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SignupHandler registers a new account with its user profile
func SignupHandler(db *gorm.DB, issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if req.Password != req.ConfirmPassword {
			Fail(c, http.StatusBadRequest, "Passwords do not match")
			return
		}
		if len(req.Password) < 8 {
			Fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		if !isValidPhone(req.PhoneNumber) {
			Fail(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		// Identities are case-folded once at the boundary
		username := strings.ToLower(strings.TrimSpace(req.Username))
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !usernameRe.MatchString(username) {
			Fail(c, http.StatusBadRequest, "Username must be 3-30 characters: letters, digits, underscore")
			return
		}
		// Duplicate checks before hashing, with field-specific messages
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			Fail(c, http.StatusConflict, "Username already registered")
			return
		}
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			Fail(c, http.StatusConflict, "Email already registered")
			return
		}
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user := domain.User{
			Username:       username,        // Case-folded username
			Email:          email,           // Case-folded email
			FullName:       req.FullName,    // Display name
			HashedPassword: hash,            // Salted hash
			UserType:       domain.RoleUser, // Every signup starts as a consumer
		}
		// User and profile are created together so "user" capability is always
		// backed by a profile
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := domain.UserProfile{
				UserID:          user.ID,             // One-to-one key
				Bio:             req.Bio,             // Optional bio
				PhoneNumber:     req.PhoneNumber,     // Validated phone
				DeliveryAddress: req.DeliveryAddress, // Optional address
			}
			return tx.Create(&profile).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"error":    err.Error(),
			}).Error("Signup failed")
			Fail(c, http.StatusConflict, "Username or email already registered")
			return
		}
		token, err := issuer.Issue(user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": username,
		}).Info("Account created")
		OK(c, http.StatusOK, "Signup successful", authPayload(token, &user))
	}
}

// authenticate resolves the identifier and checks the password. It returns no
// account on any mismatch without revealing which field failed.
func authenticate(db *gorm.DB, identifier, password string) *domain.User {
	user, err := findByIdentifier(db, identifier)
	if err != nil {
		return nil
	}
	if !utils.CheckPassword(password, user.HashedPassword) {
		return nil
	}
	return user
}

// LoginHandler authenticates a user and returns a token in the envelope
func LoginHandler(db *gorm.DB, issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		user := authenticate(db, req.EmailOrUsername, req.Password)
		if user == nil {
			Fail(c, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		if user.Disabled {
			Fail(c, http.StatusForbidden, "Account is disabled")
			return
		}
		token, err := issuer.Issue(user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		OK(c, http.StatusOK, "Login successful", authPayload(token, user))
	}
}

// TokenHandler is the OAuth2-compatible token endpoint: it accepts form
// credentials or the JSON login body and returns a flat token response.
func TokenHandler(db *gorm.DB, issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.PostForm("username") // OAuth2 password grant field
		password := c.PostForm("password")
		if identifier == "" {
			// Fall back to the JSON login shape
			var req LoginRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				Fail(c, http.StatusBadRequest, "Invalid request")
				return
			}
			identifier, password = req.EmailOrUsername, req.Password
		}
		user := authenticate(db, identifier, password)
		if user == nil || user.Disabled {
			Fail(c, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		token, err := issuer.Issue(user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		// Flat OAuth2 shape, not the envelope
		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	}
}

// googleUsername derives a unique handle from the email local part
func googleUsername(db *gorm.DB, email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	base := nonHandleRe.ReplaceAllString(strings.ToLower(local), "")
	if len(base) < 3 {
		base = "user" + base
	}
	if len(base) > 24 {
		base = base[:24]
	}
	username := base
	// De-collide with a numeric suffix
	for i := 1; ; i++ {
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err != nil {
			return username
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
}

// GoogleAuthHandler signs a Google account in, creating it on first contact
func GoogleAuthHandler(db *gorm.DB, issuer *utils.TokenIssuer, verify utils.GoogleVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GoogleAuthRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		claims, err := verify(c.Request.Context(), req.IDToken)
		if err != nil {
			Fail(c, http.StatusUnauthorized, "Invalid Google token")
			return
		}
		email := strings.ToLower(claims.Email)
		// Existing account: plain login
		var user domain.User
		if err := db.Where("email = ?", email).First(&user).Error; err == nil {
			if user.Disabled {
				Fail(c, http.StatusForbidden, "Account is disabled")
				return
			}
			token, err := issuer.Issue(user.ID)
			if err != nil {
				Fail(c, http.StatusInternalServerError, "Failed to generate token")
				return
			}
			payload := authPayload(token, &user)
			payload["is_new_user"] = false
			OK(c, http.StatusOK, "Login successful", payload)
			return
		}
		// First contact: create the account with an unguessable local password
		hash, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user = domain.User{
			Username:       googleUsername(db, email), // Derived, de-collided handle
			Email:          email,                     // Verified Google email
			FullName:       claims.Name,               // Name from the ID token
			HashedPassword: hash,                      // Random secret, login is via Google
			UserType:       domain.RoleUser,           // Consumer capability
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := domain.UserProfile{UserID: user.ID, PhoneNumber: req.PhoneNumber}
			return tx.Create(&profile).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("Google signup failed")
			Fail(c, http.StatusInternalServerError, "Signup failed")
			return
		}
		token, err := issuer.Issue(user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		payload := authPayload(token, &user)
		payload["is_new_user"] = true
		OK(c, http.StatusOK, "Signup successful", payload)
	}
}

// SwitchRoleHandler moves the account into the requested role
func SwitchRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req SwitchRoleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		target := domain.Role(strings.ToLower(req.TargetRole))
		err := domain.SwitchRole(user, target, user.Profile != nil, user.VendorProfile != nil)
		if errors.Is(err, domain.ErrInvalidRole) {
			Fail(c, http.StatusBadRequest, "Target role must be user or vendor")
			return
		}
		if errors.Is(err, domain.ErrMissingProfile) {
			if target == domain.RoleVendor {
				Fail(c, http.StatusForbidden, "Create a vendor profile before switching to vendor mode")
			} else {
				Fail(c, http.StatusForbidden, "Create a user profile before switching to user mode")
			}
			return
		}
		// Persist the transition computed in memory
		if err := db.Model(&domain.User{}).Where("id = ?", user.ID).
			Updates(map[string]any{"user_type": string(user.UserType), "active_role": string(target)}).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Role switch failed")
			Fail(c, http.StatusInternalServerError, "Failed to switch role")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"active_role": target,
			"user_type":   user.UserType,
		}).Info("Role switched")
		OK(c, http.StatusOK, "Role switched", gin.H{
			"active_role": target,        // Role now in effect
			"user_type":   user.UserType, // Possibly promoted capability
		})
	}
}

// CurrentRoleHandler reports the effective role and what the account could
// switch to
func CurrentRoleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		OK(c, http.StatusOK, "Current role", gin.H{
			"active_role":        domain.EffectiveRole(user), // Role in effect
			"user_type":          user.UserType,              // Capability set
			"has_user_profile":   user.Profile != nil,        // Can switch to user
			"has_vendor_profile": user.VendorProfile != nil,  // Can switch to vendor
		})
	}
}

// MeHandler returns the authenticated account
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		OK(c, http.StatusOK, "Current user", middleware.CurrentUser(c))
	}
}

// GetUserHandler returns a user by ID
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
			Fail(c, http.StatusNotFound, "User not found")
			return
		}
		OK(c, http.StatusOK, "User found", user)
	}
}

// ChangePasswordHandler verifies the old password and stores a new hash
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			Fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if !utils.CheckPassword(req.OldPassword, user.HashedPassword) {
			Fail(c, http.StatusBadRequest, "Old password is incorrect")
			return
		}
		if len(req.NewPassword) < 8 {
			Fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		if err := db.Model(&domain.User{}).Where("id = ?", user.ID).
			Update("hashed_password", hash).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		OK(c, http.StatusOK, "Password updated successfully", nil)
	}
}
