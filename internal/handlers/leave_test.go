package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/testutil"
)

func TestLeaveHandler_Lifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	worker := testutil.CreateAccount(t, db, "worker@example.com", "worker-password", models.RoleUser, models.AccountStatusApproved)
	peer := testutil.CreateAccount(t, db, "peer@example.com", "peer-password", models.RoleUser, models.AccountStatusApproved)

	admin := newTestClient(t, router)
	admin.login("admin@example.com", "admin-password")
	user := newTestClient(t, router)
	user.login("worker@example.com", "worker-password")

	w := user.do(http.MethodPost, "/api/leaves", map[string]string{
		"userId":    worker.ID,
		"reason":    "Conference",
		"startDate": "2026-11-02",
		"endDate":   "2026-11-04",
		"priority":  "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	leave := decode(t, w)["leave"].(map[string]any)
	assert.Equal(t, "yet to be checked", leave["status"])
	leaveID := leave["id"].(string)

	w = user.do(http.MethodPost, "/api/leaves", map[string]string{
		"userId": peer.ID, "reason": "Not mine", "startDate": "2026-11-02", "endDate": "2026-11-04", "priority": "low",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = user.do(http.MethodPost, "/api/leaves", map[string]string{"reason": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID", decode(t, w)["message"])

	w = user.do(http.MethodPost, "/api/leaves", map[string]string{"userId": worker.ID, "reason": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode(t, w)["message"])

	w = user.do(http.MethodPost, "/api/leaves", map[string]string{
		"userId": worker.ID, "reason": "Backwards", "startDate": "2026-11-04", "endDate": "2026-11-02", "priority": "low",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"End date must be on or after start date"}, decode(t, w)["details"])

	assert.Equal(t, http.StatusForbidden, user.do(http.MethodGet, "/api/leaves", nil).Code)
	assert.Equal(t, http.StatusForbidden, user.do(http.MethodPut, "/api/leaves/"+leaveID+"/status", map[string]string{"status": "approved"}).Code)

	w = admin.do(http.MethodGet, "/api/leaves?state=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["leaves"], 1)

	w = admin.do(http.MethodPut, "/api/leaves/"+leaveID+"/status", map[string]string{"status": "approved", "adminComment": "Have fun"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["leave"].(map[string]any)
	assert.Equal(t, "approved", updated["status"])
	assert.Equal(t, "Have fun", updated["adminComment"])

	w = admin.do(http.MethodGet, "/api/leaves?state=approved", nil)
	assert.Len(t, decode(t, w)["leaves"], 1)
	w = admin.do(http.MethodGet, "/api/leaves?state=pending", nil)
	assert.Empty(t, decode(t, w)["leaves"])

	assert.Equal(t, http.StatusBadRequest, admin.do(http.MethodPut, "/api/leaves/"+leaveID+"/status", map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, admin.do(http.MethodPut, "/api/leaves/nope/status", map[string]string{"status": "denied"}).Code)
	assert.Equal(t, http.StatusNotFound, admin.do(http.MethodPut, "/api/leaves/1b4e28ba-2fa1-11d2-883f-0016d3cca427/status", map[string]string{"status": "denied"}).Code)
	assert.Equal(t, http.StatusBadRequest, admin.do(http.MethodGet, "/api/leaves?state=maybe", nil).Code)

	w = user.do(http.MethodGet, "/api/leaves/requester/"+worker.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode(t, w)["leaves"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, "worker@example.com", mine[0].(map[string]any)["user"].(map[string]any)["email"])

	assert.Equal(t, http.StatusForbidden, user.do(http.MethodGet, "/api/leaves/requester/"+peer.ID, nil).Code)
}

func TestLeaveHandler_AdminFilesForUnknownAccount(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	admin := newTestClient(t, router)
	admin.login("admin@example.com", "admin-password")

	w := admin.do(http.MethodPost, "/api/leaves", map[string]string{
		"userId": "1b4e28ba-2fa1-11d2-883f-0016d3cca427", "reason": "Ghost", "startDate": "2026-11-02", "endDate": "2026-11-04", "priority": "low",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])
}
