package app

import (
	"time"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/auth"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/blog"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/contact"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/editorialboard"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/issue"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/legacy"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/manuscript"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/review"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/storage"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		response.OKMsg(c, "pong")
	})
	api.GET("/health", a.health)

	tokenTTL := time.Duration(a.cfg.TokenTTLHours) * time.Hour

	authSvc := auth.NewService(a.db, tokenTTL)
	auth.NewHandler(authSvc, int(tokenTTL.Seconds()), !a.cfg.IsDev()).
		RegisterRoutes(api, authMW)

	manuscriptSvc := manuscript.NewService(a.db)
	manuscript.NewHandler(manuscriptSvc, a.store).RegisterRoutes(api, authMW)

	reviewSvc := review.NewService(a.db)
	review.NewHandler(reviewSvc, a.sender).RegisterRoutes(api, authMW)

	issueSvc := issue.NewService(a.db, a.rc)
	issue.NewHandler(issueSvc).RegisterRoutes(api, authMW)

	editorialboard.NewHandler(editorialboard.NewService(a.db)).RegisterRoutes(api, authMW)
	blog.NewHandler(blog.NewService(a.db)).RegisterRoutes(api, authMW)

	adminEmail := a.cfg.AdminEmail
	if adminEmail == "" {
		adminEmail = a.cfg.SMTP.From
	}
	contact.NewHandler(contact.NewService(a.db), a.sender, adminEmail).RegisterRoutes(api, authMW)

	storage.NewHandler(a.store).RegisterRoutes(api, authMW)
	legacy.NewHandler(legacy.NewService(a.db)).RegisterRoutes(api, authMW)
}

func (a *App) health(c *gin.Context) {
	dbOK := true
	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbOK = false
	}
	redisOK := a.rc.Ping(c.Request.Context()) == nil

	response.OK(c, gin.H{
		"db":     dbOK,
		"redis":  redisOK,
		"uptime": time.Since(processStart).Truncate(time.Second).String(),
	})
}
