// Package web provides the web server of the fleetpanel application:
// HTTP serving, routing, templates, sessions and background job scheduling.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/fleetpanel/fleetpanel/config"
	"github.com/fleetpanel/fleetpanel/logger"
	"github.com/fleetpanel/fleetpanel/util/common"
	"github.com/fleetpanel/fleetpanel/util/random"
	"github.com/fleetpanel/fleetpanel/web/controller"
	"github.com/fleetpanel/fleetpanel/web/job"
	"github.com/fleetpanel/fleetpanel/web/locale"
	"github.com/fleetpanel/fleetpanel/web/middleware"
	"github.com/fleetpanel/fleetpanel/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// Server is the fleetpanel web server with its controllers and scheduled
// jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	profile *controller.ProfileController
	vehicle *controller.VehicleController
	server  *controller.ServerController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes gin, registers middleware, templates, sessions and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	// Sessions live server-side; the cookie only carries an opaque id.
	// Clearing a session therefore really invalidates it, a replayed old
	// cookie resolves to nothing.
	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
	}
	store := memstore.NewStore([]byte(secret))
	engine.Use(sessions.Sessions(session.CookieName, store))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	i18nWebFunc := func(key string, params ...string) string {
		return locale.I18n(key, params...)
	}
	funcMap := template.FuncMap{"i18n": i18nWebFunc}
	engine.SetFuncMap(funcMap)

	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)

	panel := engine.Group("/panel")
	panel.Use(middleware.AuditMiddleware())
	s.profile = controller.NewProfileController(panel)
	s.vehicle = controller.NewVehicleController(panel)
	s.server = controller.NewServerController(panel)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 10s", job.NewCheckCpuJob())
	s.cron.AddJob("@hourly", job.NewCheckpointJob())
	s.cron.AddJob("@daily", job.NewAuditCleanupJob())
}

// Start builds the router, binds the listener and begins serving.
func (s *Server) Start() (err error) {
	// Stop the server in case of any startup failure.
	defer func() {
		if err != nil {
			s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetWebListen(), strconv.Itoa(config.GetWebPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.cron = cron.New()
	s.startTask()
	s.cron.Start()

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error:", err)
		}
	}()

	logger.Infof("web server running on %v", listener.Addr())
	return nil
}

// Stop shuts the server down, stopping the scheduler and closing the
// listener.
func (s *Server) Stop() error {
	s.cancel()

	if s.cron != nil {
		s.cron.Stop()
	}

	var err1 error
	var err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context {
	return s.ctx
}

// String describes the server for logs.
func (s *Server) String() string {
	return fmt.Sprintf("%s v%s", config.GetName(), config.GetVersion())
}
