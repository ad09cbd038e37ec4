// Package session wraps the cookie-backed gin session with login helpers.
//
// Only the user id is written to the session. Every request resolves the id
// back to a database record, so a session left over from a deleted account
// degrades to anonymous instead of carrying a stale identity.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserId = "LOGIN_USER_ID"

// CookieName is the name of the session cookie.
const CookieName = "fleetpanel"

// SetLoginUser binds the session to the given user id.
func SetLoginUser(c *gin.Context, userId int) error {
	s := sessions.Default(c)
	s.Set(loginUserId, userId)
	return s.Save()
}

// SetMaxAge sets the session cookie lifetime in seconds.
func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUserId returns the user id bound to the session, if any.
func GetLoginUserId(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// IsLogin reports whether the session carries a user id. It does not check
// that the user still exists; callers that need the record go through
// the user service.
func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUserId(c)
	return ok
}

// ClearSession drops all session values and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}
