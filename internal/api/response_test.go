package api

import (
	"net/http"
	"testing"

	"craveseat/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResponse(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerID := env.signup(t, "cara")
	responder, responderID := env.signup(t, "dan")
	id, _ := env.createCraving(t, owner, "Banku")

	w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{
		"message": "I know a spot, can grab it for you",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataMap(t, w)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, responderID, data["user_id"])
	assert.Equal(t, false, data["is_anonymous"])

	// The craving owner hears about it
	var notif domain.Notification
	require.NoError(t, env.db.First(&notif, "user_id = ?", ownerID).Error)
	assert.Equal(t, domain.NotifyCravingResponse, notif.Type)
	assert.Contains(t, notif.Message, "dan")
}

func TestCreateResponse_Guards(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "ella")
	responder, _ := env.signup(t, "fred")
	id, _ := env.createCraving(t, owner, "Kebab")

	w := env.do(t, http.MethodPost, "/responses", responder, gin.H{"message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "craving_id query parameter is required", envelope(t, w).Message)

	w = env.do(t, http.MethodPost, "/responses?craving_id=no-such-id", responder, gin.H{"message": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/responses?craving_id="+id, owner, gin.H{"message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot respond to your own craving", envelope(t, w).Message)

	// Closed cravings reject new offers
	w = env.do(t, http.MethodPut, "/cravings/"+id, owner, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{"message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Craving is no longer accepting responses", envelope(t, w).Message)
}

func TestUpdateResponse_MessageIsCreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "gail")
	responder, _ := env.signup(t, "hank")
	id, _ := env.createCraving(t, owner, "Ramen")

	w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{"message": "original"})
	require.Equal(t, http.StatusCreated, w.Code)
	responseID := dataMap(t, w)["id"].(string)

	// The craving owner controls the status but not the words
	w = env.do(t, http.MethodPut, "/responses/"+responseID, owner, gin.H{"message": "reworded"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to edit this response message", envelope(t, w).Message)

	w = env.do(t, http.MethodPut, "/responses/"+responseID, responder, gin.H{"message": "reworded"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "reworded", dataMap(t, w)["message"])
}

func TestUpdateResponse_StatusIsCravingOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "iris")
	responder, responderID := env.signup(t, "jack")
	id, _ := env.createCraving(t, owner, "Pho")

	w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{"message": "offer"})
	require.Equal(t, http.StatusCreated, w.Code)
	responseID := dataMap(t, w)["id"].(string)

	// The responder cannot accept their own offer
	w = env.do(t, http.MethodPut, "/responses/"+responseID, responder, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only the craving owner can change the response status", envelope(t, w).Message)

	w = env.do(t, http.MethodPut, "/responses/"+responseID, owner, gin.H{"status": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown response status", envelope(t, w).Message)

	w = env.do(t, http.MethodPut, "/responses/"+responseID, owner, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", dataMap(t, w)["status"])

	// The responder is told their offer moved
	var notif domain.Notification
	require.NoError(t, env.db.First(&notif, "user_id = ? AND type = ?",
		responderID, domain.NotifyResponseAccepted).Error)
	assert.Equal(t, "Response Accepted", notif.Title)
}

func TestListAndGetResponses(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "kim")
	responder, _ := env.signup(t, "liam")
	id, _ := env.createCraving(t, owner, "Falafel")

	w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{"message": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	responseID := dataMap(t, w)["id"].(string)

	w = env.do(t, http.MethodGet, "/responses/craving/"+id, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w).Data.([]any), 1)

	w = env.do(t, http.MethodGet, "/responses/my-responses", responder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w).Data.([]any), 1)

	// The owner made no responses themselves
	w = env.do(t, http.MethodGet, "/responses/my-responses", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, envelope(t, w).Data)

	w = env.do(t, http.MethodGet, "/responses/"+responseID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first", dataMap(t, w)["message"])
}

func TestDeleteResponse_CreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "maya")
	responder, _ := env.signup(t, "noel")
	id, _ := env.createCraving(t, owner, "Empanadas")

	w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{"message": "offer"})
	require.Equal(t, http.StatusCreated, w.Code)
	responseID := dataMap(t, w)["id"].(string)

	// Not even the craving owner may delete someone else's response
	w = env.do(t, http.MethodDelete, "/responses/"+responseID, owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/responses/"+responseID, responder, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/responses/"+responseID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
