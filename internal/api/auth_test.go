package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"craveseat/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_Success(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"username":         "Alice_01",
		"email":            "Alice@Example.com",
		"full_name":        "Alice Example",
		"password":         "password123",
		"confirm_password": "password123",
		"phone_number":     "+2348012345678",
		"bio":              "Hungry often",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataMap(t, w)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])

	user := data["user"].(map[string]any)
	// Identities are case-folded at the boundary
	assert.Equal(t, "alice_01", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "user", user["user_type"])
	_, hasHash := user["hashed_password"]
	assert.False(t, hasHash, "password hash must never serialize")

	// The profile row is created with the account
	var profile domain.UserProfile
	require.NoError(t, env.db.First(&profile, "user_id = ?", user["id"]).Error)
	assert.Equal(t, "+2348012345678", profile.PhoneNumber)
	assert.Equal(t, "Hungry often", profile.Bio)
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	base := gin.H{
		"username":         "bob",
		"email":            "bob@example.com",
		"password":         "password123",
		"confirm_password": "password123",
		"phone_number":     "+15550001234",
	}
	tests := []struct {
		name    string
		mutate  gin.H
		message string
	}{
		{"password mismatch", gin.H{"confirm_password": "different123"}, "Passwords do not match"},
		{"short password", gin.H{"password": "short", "confirm_password": "short"}, "Password must be at least 8 characters"},
		{"bad phone", gin.H{"phone_number": "not-a-phone"}, "Invalid phone number format"},
		{"bad username", gin.H{"username": "x"}, "Username must be 3-30 characters: letters, digits, underscore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := gin.H{}
			for k, v := range base {
				body[k] = v
			}
			for k, v := range tt.mutate {
				body[k] = v
			}
			w := env.do(t, http.MethodPost, "/auth/signup", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, envelope(t, w).Message)
		})
	}
}

func TestSignup_DuplicateIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "carol")

	w := env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"username":         "CAROL",
		"email":            "other@example.com",
		"password":         "password123",
		"confirm_password": "password123",
		"phone_number":     "+15550001234",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already registered", envelope(t, w).Message)

	w = env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"username":         "carol2",
		"email":            "Carol@Example.com",
		"password":         "password123",
		"confirm_password": "password123",
		"phone_number":     "+15550001234",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", envelope(t, w).Message)
}

func TestLogin_ByUsernameAndEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "dave")

	for _, identifier := range []string{"dave", "dave@example.com", "DAVE@Example.com"} {
		w := env.do(t, http.MethodPost, "/auth/login", "", gin.H{
			"email_or_username": identifier,
			"password":          "password123",
		})
		require.Equal(t, http.StatusOK, w.Code, identifier)
		assert.NotEmpty(t, dataMap(t, w)["access_token"])
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "erin")

	w := env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email_or_username": "erin",
		"password":          "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect username or password", envelope(t, w).Message)

	// Unknown accounts get the same message as bad passwords
	w = env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email_or_username": "nobody",
		"password":          "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect username or password", envelope(t, w).Message)
}

func TestLogin_DisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.signup(t, "frank")
	require.NoError(t, env.db.Model(&domain.User{}).Where("id = ?", userID).
		Update("disabled", true).Error)

	w := env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email_or_username": "frank",
		"password":          "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account is disabled", envelope(t, w).Message)

	// Pre-issued tokens stop working too
	w = env.do(t, http.MethodGet, "/auth/users/me", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToken_FlatOAuth2Shape(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "grace")

	w := env.do(t, http.MethodPost, "/auth/token", "", gin.H{
		"email_or_username": "grace",
		"password":          "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// No envelope on this endpoint
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	_, hasSuccess := body["success"]
	assert.False(t, hasSuccess)
}

func TestGoogleAuth_NewAndReturning(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/google", "", gin.H{
		"id_token":     "heidi@example.com|Heidi Gmail",
		"phone_number": "+15550009999",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataMap(t, w)
	assert.Equal(t, true, data["is_new_user"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "heidi", user["username"]) // Derived from the email local part
	assert.Equal(t, "Heidi Gmail", user["full_name"])

	// Second contact is a plain login
	w = env.do(t, http.MethodPost, "/auth/google", "", gin.H{
		"id_token": "heidi@example.com|Heidi Gmail",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataMap(t, w)["is_new_user"])
}

func TestGoogleAuth_UsernameDeCollision(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ivan") // takes the bare handle

	w := env.do(t, http.MethodPost, "/auth/google", "", gin.H{
		"id_token": "ivan@gmail.test|Ivan G",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := dataMap(t, w)["user"].(map[string]any)
	assert.Equal(t, "ivan1", user["username"])
}

func TestGoogleAuth_BadToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/auth/google", "", gin.H{"id_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Google token", envelope(t, w).Message)
}

func TestSwitchRole_RequiresVendorProfile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "judy")

	w := env.do(t, http.MethodPost, "/auth/switch-role", token, gin.H{"target_role": "vendor"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Create a vendor profile before switching to vendor mode", envelope(t, w).Message)
}

func TestSwitchRole_PromotesAndPersists(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.signup(t, "kevin")

	w := env.do(t, http.MethodPost, "/vendor", token, gin.H{"business_name": "Kevin Eats"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Capability is promoted by profile creation, but the active role is not
	w = env.do(t, http.MethodGet, "/auth/current-role", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, w)
	assert.Equal(t, "user", data["active_role"])
	assert.Equal(t, "both", data["user_type"])
	assert.Equal(t, true, data["has_vendor_profile"])

	w = env.do(t, http.MethodPost, "/auth/switch-role", token, gin.H{"target_role": "vendor"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = dataMap(t, w)
	assert.Equal(t, "vendor", data["active_role"])
	assert.Equal(t, "both", data["user_type"])

	var user domain.User
	require.NoError(t, env.db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, domain.RoleBoth, user.UserType)
	require.NotNil(t, user.ActiveRole)
	assert.Equal(t, domain.RoleVendor, *user.ActiveRole)

	// And back again
	w = env.do(t, http.MethodPost, "/auth/switch-role", token, gin.H{"target_role": "user"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", dataMap(t, w)["active_role"])
}

func TestSwitchRole_InvalidTarget(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "laura")

	w := env.do(t, http.MethodPost, "/auth/switch-role", token, gin.H{"target_role": "both"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Target role must be user or vendor", envelope(t, w).Message)
}

func TestAuth_MissingAndBadToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/auth/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/auth/users/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.signup(t, "mallory")

	w := env.do(t, http.MethodGet, "/auth/users/"+userID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mallory", dataMap(t, w)["username"])

	w = env.do(t, http.MethodGet, "/auth/users/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "nina")

	w := env.do(t, http.MethodPut, "/auth/users/me/change-password", token, gin.H{
		"old_password": "wrong-password",
		"new_password": "newpassword123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Old password is incorrect", envelope(t, w).Message)

	w = env.do(t, http.MethodPut, "/auth/users/me/change-password", token, gin.H{
		"old_password": "password123",
		"new_password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/auth/users/me/change-password", token, gin.H{
		"old_password": "password123",
		"new_password": "newpassword123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Old secret is dead, new one works
	w = env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email_or_username": "nina", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email_or_username": "nina", "password": "newpassword123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
