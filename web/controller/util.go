package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/web/locale"
	"github.com/quillblog/quill/web/service"
	"github.com/quillblog/quill/web/session"

	"github.com/gin-gonic/gin"
)

// html renders the named template. Every page gets the translated title, a
// translate function t, the current identity (or nil) and the version.
func html(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = locale.I18n(c, title)
	data["t"] = func(key string, params ...string) string {
		return locale.I18n(c, key, params...)
	}
	data["who"] = session.GetIdentity(c)
	data["request_uri"] = c.Request.RequestURI
	data["cur_ver"] = config.GetVersion()
	c.HTML(status, name, data)
}

// renderError maps a store error to an error page. Unknown errors are
// logged and shown as 500.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		html(c, http.StatusNotFound, "error.html", "errors.notFound", gin.H{"message": locale.I18n(c, "errors.notFound")})
	case errors.Is(err, service.ErrInvalidPage):
		html(c, http.StatusNotFound, "error.html", "errors.invalidPage", gin.H{"message": locale.I18n(c, "errors.invalidPage")})
	default:
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		html(c, http.StatusInternalServerError, "error.html", "errors.internal", gin.H{"message": locale.I18n(c, "errors.internal")})
	}
	c.Abort()
}

// pageURL returns base with q and page set, or "" when page is 0.
func pageURL(base string, q string, page int) string {
	if page <= 0 {
		return ""
	}
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	v.Set("page", strconv.Itoa(page))
	return base + "?" + v.Encode()
}

// pager adds the listing data shared by every paginated template.
func pager(data gin.H, base string, q string, page *service.Page) gin.H {
	data["posts"] = page.Items
	data["page"] = page
	data["q"] = q
	if page.HasPrev() {
		data["prevURL"] = pageURL(base, q, page.PrevNum())
	}
	if page.HasNext() {
		data["nextURL"] = pageURL(base, q, page.NextNum())
	}
	return data
}

// userPath joins escaped path segments into an absolute path.
func userPath(segments ...string) string {
	p := ""
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
