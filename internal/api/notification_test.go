package api

import (
	"net/http"
	"testing"

	"craveseat/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedNotifications creates one craving for the owner and n responses to it,
// which produces n craving_response notifications
func seedNotifications(t *testing.T, env *testEnv, owner, responder string, n int) {
	t.Helper()
	id, _ := env.createCraving(t, owner, "Akara")
	for i := 0; i < n; i++ {
		w := env.do(t, http.MethodPost, "/responses?craving_id="+id, responder, gin.H{
			"message": "offer",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestListNotifications(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "bella")
	responder, _ := env.signup(t, "carl")
	seedNotifications(t, env, owner, responder, 3)

	w := env.do(t, http.MethodGet, "/notifications", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w).Data.([]any), 3)

	// Notifications are scoped to the recipient
	w = env.do(t, http.MethodGet, "/notifications", responder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, envelope(t, w).Data)

	// limit caps the page
	w = env.do(t, http.MethodGet, "/notifications?limit=2", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope(t, w).Data.([]any), 2)
}

func TestUnreadCount(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.signup(t, "dora")
	responder, _ := env.signup(t, "evan")
	seedNotifications(t, env, owner, responder, 2)

	w := env.do(t, http.MethodGet, "/notifications/unread-count", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, dataMap(t, w)["unread_count"])

	w = env.do(t, http.MethodPost, "/notifications/mark-all-read", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/notifications/unread-count", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, dataMap(t, w)["unread_count"])
}

func TestMarkRead_Monotonic(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerID := env.signup(t, "fay")
	responder, _ := env.signup(t, "gus")
	seedNotifications(t, env, owner, responder, 2)

	var notifications []domain.Notification
	require.NoError(t, env.db.Where("user_id = ?", ownerID).Find(&notifications).Error)
	require.Len(t, notifications, 2)
	ids := []string{notifications[0].ID, notifications[1].ID}

	w := env.do(t, http.MethodPost, "/notifications/mark-read", owner, gin.H{
		"notification_ids": ids[:1],
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, dataMap(t, w)["marked_read"])

	var read domain.Notification
	require.NoError(t, env.db.First(&read, "id = ?", ids[0]).Error)
	require.NotNil(t, read.ReadAt)
	firstReadAt := *read.ReadAt

	// Marking again affects nothing and keeps the original read_at
	w = env.do(t, http.MethodPost, "/notifications/mark-read", owner, gin.H{
		"notification_ids": ids,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, dataMap(t, w)["marked_read"]) // only the second one moved

	require.NoError(t, env.db.First(&read, "id = ?", ids[0]).Error)
	require.NotNil(t, read.ReadAt)
	assert.True(t, read.ReadAt.Equal(firstReadAt))
}

func TestMarkRead_ScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerID := env.signup(t, "hana")
	responder, _ := env.signup(t, "ivor")
	seedNotifications(t, env, owner, responder, 1)

	var notif domain.Notification
	require.NoError(t, env.db.First(&notif, "user_id = ?", ownerID).Error)

	// The responder cannot mark someone else's notification
	w := env.do(t, http.MethodPost, "/notifications/mark-read", responder, gin.H{
		"notification_ids": []string{notif.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, dataMap(t, w)["marked_read"])

	require.NoError(t, env.db.First(&notif, "id = ?", notif.ID).Error)
	assert.False(t, notif.IsRead)
}

func TestDeleteNotification(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerID := env.signup(t, "jess")
	responder, _ := env.signup(t, "kyle")
	seedNotifications(t, env, owner, responder, 1)

	var notif domain.Notification
	require.NoError(t, env.db.First(&notif, "user_id = ?", ownerID).Error)

	// Someone else's notification looks like it doesn't exist
	w := env.do(t, http.MethodDelete, "/notifications/"+notif.ID, responder, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/notifications/"+notif.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodDelete, "/notifications/"+notif.ID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListNotifications_UnreadOnly(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerID := env.signup(t, "lena")
	responder, _ := env.signup(t, "milo")
	seedNotifications(t, env, owner, responder, 2)

	var notif domain.Notification
	require.NoError(t, env.db.First(&notif, "user_id = ?", ownerID).Error)
	w := env.do(t, http.MethodPost, "/notifications/mark-read", owner, gin.H{
		"notification_ids": []string{notif.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/notifications?unread_only=true", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := envelope(t, w).Data.([]any)
	require.Len(t, list, 1)
	assert.Equal(t, false, list[0].(map[string]any)["is_read"])
}
