// Package controller provides the HTTP handlers of the quill blog: landing
// and account pages, post listings, post views and the write form.
package controller

import (
	"errors"
	"net/http"

	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/web/service"
	"github.com/quillblog/quill/web/session"

	"github.com/gin-gonic/gin"
)

const loginPath = "/login"

// GatedHandler is a handler that only runs for a logged-in user, who is
// passed in explicitly.
type GatedHandler func(c *gin.Context, who *session.Identity)

// BaseController provides the authentication gate shared by all controllers.
type BaseController struct {
	userService *service.UserService
}

// requireLogin redirects anonymous requests to the login page. A session
// whose user no longer exists is cleared and treated as anonymous.
func (a *BaseController) requireLogin(h GatedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := session.GetIdentity(c)
		if who == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		if _, err := a.userService.GetByID(c.Request.Context(), who.UserID); err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				renderError(c, err)
				return
			}
			logger.Warningf("session refers to missing user %d, clearing it", who.UserID)
			if err := session.ClearSession(c); err != nil {
				logger.Warning("Unable to clear session:", err)
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		h(c, who)
	}
}
