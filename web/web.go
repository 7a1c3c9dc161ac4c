// Package web assembles the quill HTTP server: gin engine, middleware,
// embedded templates, controllers and the background scheduler.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/metrics"
	"github.com/quillblog/quill/util/random"
	"github.com/quillblog/quill/web/controller"
	"github.com/quillblog/quill/web/job"
	"github.com/quillblog/quill/web/locale"
	"github.com/quillblog/quill/web/middleware"
	"github.com/quillblog/quill/web/service"
	"github.com/quillblog/quill/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
	"gorm.io/gorm"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

const shutdownTimeout = 10 * time.Second

// Options are the knobs of a Server that do not come from the database.
type Options struct {
	Listen string
	Port   int
	// Secret signs the session cookie. Empty means a random per-process key.
	Secret string
	// Domain, when set, rejects requests for any other host.
	Domain string
}

// OptionsFromConfig reads Options from the config package.
func OptionsFromConfig() Options {
	return Options{
		Listen: config.GetListen(),
		Port:   config.GetPort(),
		Secret: config.GetSecret(),
		Domain: config.GetDomain(),
	}
}

// Server is the blog web server. It owns the services built on db.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	db   *gorm.DB
	opts Options

	userService *service.UserService
	postService *service.PostService

	cron *cron.Cron

	draining atomic.Bool
}

// NewServer creates a server over db.
func NewServer(db *gorm.DB, opts Options) *Server {
	return &Server{
		db:          db,
		opts:        opts,
		userService: service.NewUserService(db),
		postService: service.NewPostService(db),
	}
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

// initRouter builds the gin engine with middleware, templates and every
// controller.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	if s.opts.Domain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(s.opts.Domain))
	}

	secret := s.opts.Secret
	if secret == "" {
		logger.Warning("no session secret configured, sessions will not survive a restart")
		secret = random.Seq(32)
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(session.CookieName, store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	bundle, err := locale.NewBundle(i18nFS, "translation")
	if err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware(bundle))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.NewRegistry(), promhttp.HandlerOpts{})))

	g := engine.Group("/")
	controller.NewHealthController(g, s.db, s.draining.Load)
	controller.NewIndexController(g, s.userService)
	controller.NewPostController(g, s.userService, s.postService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob(s.db)); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.opts.Listen, strconv.Itoa(s.opts.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on ", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts the HTTP server down gracefully and stops the scheduler.
// /healthz reports 503 from the moment Stop is called.
func (s *Server) Stop() error {
	s.draining.Store(true)
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
