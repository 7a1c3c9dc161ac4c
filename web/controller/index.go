package controller

import (
	"errors"
	"net/http"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/metrics"
	"github.com/quillblog/quill/web/entity"
	"github.com/quillblog/quill/web/locale"
	"github.com/quillblog/quill/web/service"
	"github.com/quillblog/quill/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the landing page, account pages and the static
// about and contact pages.
type IndexController struct {
	BaseController
}

// NewIndexController creates an IndexController and registers its routes.
func NewIndexController(g *gin.RouterGroup, userService *service.UserService) *IndexController {
	a := &IndexController{BaseController{userService: userService}}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/sign_up", a.signUpPage)
	g.POST("/sign_up", a.signUp)
	g.GET("/logout", a.requireLogin(a.logout))

	g.GET("/about", a.about)
	g.GET("/about/:name", a.requireLogin(a.aboutMember))
	g.GET("/contact_us", a.contact)
	g.GET("/contact_us/:name", a.requireLogin(a.contactMember))
}

func (a *IndexController) index(c *gin.Context) {
	html(c, http.StatusOK, "index.html", "pages.index.title", nil)
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, http.StatusOK, "login.html", "pages.login.title", nil)
}

// login checks the submitted credentials and, on success, binds the session
// to the user and sends them to their own posts.
func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warning("bad login form:", err)
	}

	user := a.userService.Verify(c.Request.Context(), form.Email, form.Password)
	if user == nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logger.Warningf("failed login for %q from %s", form.Email, c.ClientIP())
		html(c, http.StatusUnauthorized, "login.html", "pages.login.title", gin.H{
			"error": locale.I18n(c, "pages.login.wrongCredentials"),
			"email": form.Email,
		})
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	if err := session.SetLoginUser(c, user); err != nil {
		renderError(c, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("%s logged in from %s", user.Email, c.ClientIP())

	c.Redirect(http.StatusFound, userPath("home", user.Name))
}

func (a *IndexController) signUpPage(c *gin.Context) {
	html(c, http.StatusOK, "sign_up.html", "pages.signUp.title", nil)
}

func (a *IndexController) signUp(c *gin.Context) {
	var form entity.SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warning("bad sign up form:", err)
	}

	user, err := a.userService.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		var status int
		var key string
		switch {
		case errors.Is(err, service.ErrEmptyField):
			status, key = http.StatusBadRequest, "pages.signUp.emptyField"
		case errors.Is(err, service.ErrPasswordTooLong):
			status, key = http.StatusBadRequest, "pages.signUp.passwordTooLong"
		case errors.Is(err, service.ErrDuplicateEmail):
			status, key = http.StatusConflict, "pages.signUp.emailTaken"
		default:
			renderError(c, err)
			return
		}
		html(c, status, "sign_up.html", "pages.signUp.title", gin.H{
			"error": locale.I18n(c, key),
			"name":  form.Name,
			"email": form.Email,
		})
		return
	}

	metrics.UsersRegistered.Inc()
	logger.Infof("registered user %d (%s)", user.Id, user.Email)
	c.Redirect(http.StatusFound, "/")
}

func (a *IndexController) logout(c *gin.Context, who *session.Identity) {
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	logger.Infof("%s logged out", who.Name)
	c.Redirect(http.StatusFound, "/")
}

func (a *IndexController) about(c *gin.Context) {
	html(c, http.StatusOK, "about.html", "pages.about.title", nil)
}

func (a *IndexController) aboutMember(c *gin.Context, who *session.Identity) {
	html(c, http.StatusOK, "about1.html", "pages.about.title", gin.H{"p": c.Param("name")})
}

func (a *IndexController) contact(c *gin.Context) {
	html(c, http.StatusOK, "contact_us.html", "pages.contact.title", nil)
}

func (a *IndexController) contactMember(c *gin.Context, who *session.Identity) {
	html(c, http.StatusOK, "contact_us1.html", "pages.contact.title", gin.H{"p": c.Param("name")})
}
