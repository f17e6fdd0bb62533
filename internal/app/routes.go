package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/xenm/MapMe-sub002/internal/middleware"
	"github.com/xenm/MapMe-sub002/internal/modules/auth"
	"github.com/xenm/MapMe-sub002/internal/modules/chat"
	"github.com/xenm/MapMe-sub002/internal/modules/datemark"
	"github.com/xenm/MapMe-sub002/internal/modules/health"
	"github.com/xenm/MapMe-sub002/internal/modules/profile"
	"github.com/xenm/MapMe-sub002/internal/modules/storage/photo"
	"github.com/xenm/MapMe-sub002/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(ctx context.Context) {
	r := a.router
	store := a.store
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "mapme",
		"version":  "1.0.0",
		"homepage": "https://github.com/xenm/MapMe-sub002",
	}

	var rawRedis *goredis.Client
	if a.rc != nil {
		rawRedis = a.rc.Raw()
	}

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(rawRedis))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })

	// Auth & profiles
	authSvc := auth.NewService(store.Users, store.Profiles, time.Duration(a.cfg.TokenTTLHours)*time.Hour)
	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)

	profileSvc := profile.NewService(store.Profiles)
	profile.NewHandler(profileSvc).RegisterRoutes(api, authMW)

	photoSvc := photo.NewService(a.cfg.S3, a.logger)
	photo.NewHandler(photoSvc, profileSvc).RegisterRoutes(api, authMW)

	// Date marks
	datemark.NewHandler(datemark.NewService(store.DateMarks)).RegisterRoutes(api, authMW)

	// Chat: REST + socket.io gateway
	chatSvc := chat.NewService(store.Messages, store.Users, a.cfg.Chat.MaxMessageLen, a.cfg.Chat.HistoryPageSize)
	hub := chat.NewHub(chatSvc, a.rc, a.logger, func(token string) (string, error) {
		claims, err := middleware.ValidateToken(token)
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	})
	a.hub = hub
	go hub.Run(ctx)
	chat.NewHandler(chatSvc, hub).RegisterRoutes(r, api, authMW)

	// Infrastructure
	health.RegisterRoutes(api, store, a.rc, hub)
}
