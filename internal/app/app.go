package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/config"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/database"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/storage"
	jwtpkg "github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/jwt"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/mail"
	pkgredis "github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rc     *pkgredis.Client
	store  *storage.ObjectStore
	sender *mail.Sender
	logger *zap.Logger
}

var processStart = time.Now()

// New initializes the application: config → DB → Redis → collaborators → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	var store *storage.ObjectStore
	if cfg.S3.Bucket != "" {
		store, err = storage.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
	} else {
		logger.Warn("s3 is not configured, file uploads are disabled")
	}

	sender := mail.New(mail.Config{
		Enable:        cfg.SMTP.Enable,
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		User:          cfg.SMTP.User,
		Pass:          cfg.SMTP.Pass,
		From:          cfg.SMTP.From,
		SkipTLSVerify: cfg.SMTP.SkipTLSVerify,
	}, logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	// Claims must be resolved before the limiter so signed-in traffic is
	// exempt from it.
	router.Use(middleware.OptionalAuth())
	router.Use(middleware.RateLimit(rc.Raw()))

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		rc:     rc,
		store:  store,
		sender: sender,
		logger: logger,
	}
	app.registerRoutes()
	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsCfg.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsCfg
}

// extractOriginHost returns the "host[:port]" portion of an origin URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches the given wildcard pattern.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown closes external connections.
func (a *App) Shutdown() {
	if err := a.rc.Close(); err != nil {
		a.logger.Warn("redis close", zap.Error(err))
	}
}
