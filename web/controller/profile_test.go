package controller

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordChangeForcesRelogin(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	cookies := login(t, engine, "alice", "secret1")

	w := doPost(engine, "/panel/profile/update", url.Values{
		"username":        {"alice"},
		"password":        {"secret2"},
		"confirmPassword": {"secret2"},
	}, cookies)
	msg := parseMsg(t, w)
	require.True(t, msg.Success)
	assert.Equal(t, "pages.profile.toasts.updated", msg.Msg)

	// the session active at call time is dead
	w = doPost(engine, "/panel/profile/update", url.Values{"username": {"alice"}}, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// old password is gone, the new one logs in
	w = doPost(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)
	assert.False(t, parseMsg(t, w).Success)

	login(t, engine, "alice", "secret2")
}

func TestUsernameOnlyChangeKeepsSession(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	cookies := login(t, engine, "alice", "secret1")

	w := doPost(engine, "/panel/profile/update", url.Values{
		"username": {"alicia"},
	}, cookies)
	msg := parseMsg(t, w)
	require.True(t, msg.Success)
	assert.Equal(t, "pages.profile.toasts.updatedNoRelogin", msg.Msg)

	// same session still works after the rename
	w = doPost(engine, "/panel/profile/update", url.Values{
		"username": {"alicia"},
	}, cookies)
	assert.True(t, parseMsg(t, w).Success)
}

func TestProfileUpdatePasswordConfirmRules(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	cookies := login(t, engine, "alice", "secret1")

	w := doPost(engine, "/panel/profile/update", url.Values{
		"username": {"alice"},
		"password": {"secret2"},
	}, cookies)
	msg := parseMsg(t, w)
	assert.False(t, msg.Success)
	assert.Equal(t, "pages.profile.toasts.confirmPassword", msg.Msg)

	w = doPost(engine, "/panel/profile/update", url.Values{
		"username":        {"alice"},
		"password":        {"secret2"},
		"confirmPassword": {"secret3"},
	}, cookies)
	msg = parseMsg(t, w)
	assert.False(t, msg.Success)
	assert.Equal(t, "pages.profile.toasts.passwordMismatch", msg.Msg)

	// failed attempts leave the session and password untouched
	w = doPost(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)
	assert.True(t, parseMsg(t, w).Success)
}

func TestRenameOntoTakenUsername(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	register(t, engine, "bobby", "secret1")
	cookies := login(t, engine, "bobby", "secret1")

	w := doPost(engine, "/panel/profile/update", url.Values{
		"username": {"alice"},
	}, cookies)
	msg := parseMsg(t, w)
	assert.False(t, msg.Success)
	assert.Equal(t, "pages.profile.toasts.usernameTaken", msg.Msg)
}

func TestAccountDeletionCascade(t *testing.T) {
	engine := setupTestRouter(t)
	register(t, engine, "alice", "secret1")
	cookies := login(t, engine, "alice", "secret1")

	w := doPost(engine, "/panel/profile/delete", nil, cookies)
	require.True(t, parseMsg(t, w).Success)

	// the session token now resolves to anonymous
	w = doPost(engine, "/panel/profile/update", url.Values{"username": {"alice"}}, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the former credentials no longer verify
	w = doPost(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)
	assert.False(t, parseMsg(t, w).Success)

	// and the name is free again
	register(t, engine, "alice", "secret1")
}
