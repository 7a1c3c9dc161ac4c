// Package session keeps the logged-in identity in the gin-contrib session
// cookie.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/quillblog/quill/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "quill"
	loginUser  = "LOGIN_USER"
)

// Identity is what a session remembers about its user.
type Identity struct {
	UserID int
	Name   string
}

func init() {
	gob.Register(Identity{})
}

// SetLoginUser binds the session to user.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUser, Identity{UserID: user.Id, Name: user.Name})
	return s.Save()
}

// SetMaxAge sets the session cookie lifetime in seconds. It takes effect on
// the next save.
func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetIdentity returns the logged-in identity, or nil for an anonymous
// request.
func GetIdentity(c *gin.Context) *Identity {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if who, ok := obj.(Identity); ok {
			return &who
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetIdentity(c) != nil
}

// ClearSession forgets the identity and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
