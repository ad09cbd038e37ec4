package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fleetpanel/fleetpanel/database"
	"github.com/fleetpanel/fleetpanel/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWrongCredentialsAreGeneric(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")

	// unknown user and wrong password must yield the identical response
	unknown := doPost(engine, "/login", url.Values{
		"username": {"nosuchuser"},
		"password": {"secret1"},
	}, nil)
	wrongPassword := doPost(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}, nil)

	unknownMsg := parseMsg(t, unknown)
	wrongMsg := parseMsg(t, wrongPassword)
	assert.False(t, unknownMsg.Success)
	assert.False(t, wrongMsg.Success)
	assert.Equal(t, unknownMsg.Msg, wrongMsg.Msg)
}

func TestRegisterValidation(t *testing.T) {
	engine := setupTestRouter(t)

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantMsg  string
	}{
		{"short username", "abc", "secret1", "secret1", "pages.register.toasts.usernameLength"},
		{"long username", "abcdefghijklmnopqrstuvwxyz", "secret1", "secret1", "pages.register.toasts.usernameLength"},
		{"short password", "alice", "five5", "five5", "pages.register.toasts.passwordLength"},
		{"confirm mismatch", "alice", "secret1", "secret2", "pages.register.toasts.passwordMismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doPost(engine, "/register", url.Values{
				"username":        {tt.username},
				"password":        {tt.password},
				"confirmPassword": {tt.confirm},
			}, nil)
			msg := parseMsg(t, w)
			assert.False(t, msg.Success)
			assert.Equal(t, tt.wantMsg, msg.Msg)
		})
	}

	// nothing was persisted by the rejected submissions
	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterDuplicate(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")

	w := doPost(engine, "/register", url.Values{
		"username":        {"alice"},
		"password":        {"other22"},
		"confirmPassword": {"other22"},
	}, nil)
	msg := parseMsg(t, w)
	assert.False(t, msg.Success)
	assert.Equal(t, "pages.register.toasts.usernameTaken", msg.Msg)
}

func TestGuardRejectsAnonymous(t *testing.T) {
	engine := setupTestRouter(t)

	// AJAX requests get 401
	w := doPost(engine, "/panel/vehicle/add", url.Values{
		"brand": {"Skoda"},
		"model": {"Octavia"},
		"year":  {"2019"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// browser requests get redirected to the entry point
	req := httptest.NewRequest(http.MethodGet, "/panel/vehicles", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// the rejected request had no side effect
	var count int64
	require.NoError(t, database.GetDB().Model(model.Vehicle{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	cookies := login(t, engine, "alice", "secret1")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	// the old cookie no longer authenticates
	w := doPost(engine, "/panel/profile/update", url.Values{"username": {"alice"}}, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out again without a session is harmless
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}
