package controller

import (
	"errors"
	"net/http"

	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/metrics"
	"github.com/quillblog/quill/web/entity"
	"github.com/quillblog/quill/web/locale"
	"github.com/quillblog/quill/web/service"
	"github.com/quillblog/quill/web/session"

	"github.com/gin-gonic/gin"
)

// PostController serves post listings, single posts and the write form.
//
// The single-post routes share their first path segment with every static
// route, so it is registered last and is named generically: for "/:segment"
// it is the slug, for "/:segment/:slug" it is the member name.
type PostController struct {
	BaseController

	postService *service.PostService
}

// NewPostController creates a PostController and registers its routes.
func NewPostController(g *gin.RouterGroup, userService *service.UserService, postService *service.PostService) *PostController {
	a := &PostController{
		BaseController: BaseController{userService: userService},
		postService:    postService,
	}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/home/:name", a.requireLogin(a.home))
	g.GET("/blog", a.blog)
	g.GET("/blog1/:name", a.requireLogin(a.memberBlog))
	g.GET("/write/:name", a.requireLogin(a.writePage))
	g.POST("/write/:name", a.requireLogin(a.write))

	g.GET("/:segment", a.view)
	g.GET("/:segment/:slug", a.requireLogin(a.memberView))
}

// home lists the posts whose author contains the name in the path.
func (a *PostController) home(c *gin.Context, who *session.Identity) {
	name := c.Param("name")
	page, err := a.postService.ListByAuthor(c.Request.Context(), name, service.ParsePage(c.Query("page")))
	if err != nil {
		renderError(c, err)
		return
	}
	data := gin.H{
		"p":       name,
		"heading": locale.I18n(c, "pages.home.title", "Name=="+name),
		"empty":   locale.I18n(c, "pages.home.empty"),
	}
	html(c, http.StatusOK, "home.html", "pages.blog.title", pager(data, userPath("home", name), "", page))
}

func (a *PostController) blog(c *gin.Context) {
	q := c.Query("q")
	page, err := a.postService.Search(c.Request.Context(), q, service.ParsePage(c.Query("page")))
	if err != nil {
		renderError(c, err)
		return
	}
	data := gin.H{"empty": locale.I18n(c, "pages.blog.empty")}
	html(c, http.StatusOK, "blog.html", "pages.blog.title", pager(data, "/blog", q, page))
}

func (a *PostController) memberBlog(c *gin.Context, who *session.Identity) {
	name := c.Param("name")
	q := c.Query("q")
	page, err := a.postService.Search(c.Request.Context(), q, service.ParsePage(c.Query("page")))
	if err != nil {
		renderError(c, err)
		return
	}
	data := gin.H{"p": name, "empty": locale.I18n(c, "pages.blog.empty")}
	html(c, http.StatusOK, "blog1.html", "pages.blog.title", pager(data, userPath("blog1", name), q, page))
}

func (a *PostController) view(c *gin.Context) {
	post, err := a.postService.GetBySlug(c.Request.Context(), c.Param("segment"))
	if err != nil {
		renderError(c, err)
		return
	}
	html(c, http.StatusOK, "view1.html", "pages.blog.title", gin.H{"post": post})
}

func (a *PostController) memberView(c *gin.Context, who *session.Identity) {
	post, err := a.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}
	html(c, http.StatusOK, "view.html", "pages.blog.title", gin.H{"post": post, "p": c.Param("segment")})
}

func (a *PostController) writePage(c *gin.Context, who *session.Identity) {
	html(c, http.StatusOK, "write.html", "pages.write.title", gin.H{
		"p":    c.Param("name"),
		"form": entity.PostForm{Author: who.Name},
	})
}

// write stores the submitted post and shows it in the member view.
func (a *PostController) write(c *gin.Context, who *session.Identity) {
	name := c.Param("name")
	var form entity.PostForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warning("bad post form:", err)
	}

	post, err := a.postService.Create(c.Request.Context(), &form)
	if errors.Is(err, service.ErrDuplicateSlug) || errors.Is(err, service.ErrReservedSlug) {
		key := "pages.write.slugTaken"
		if errors.Is(err, service.ErrReservedSlug) {
			key = "pages.write.slugReserved"
		}
		html(c, http.StatusConflict, "write.html", "pages.write.title", gin.H{
			"p":     name,
			"form":  form,
			"error": locale.I18n(c, key),
		})
		return
	} else if err != nil {
		renderError(c, err)
		return
	}

	metrics.PostsCreated.Inc()
	logger.Infof("%s published %q as /%s", who.Name, post.Title, post.Slug)
	c.Redirect(http.StatusFound, userPath(name, post.Slug))
}
