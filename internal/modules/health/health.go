package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xenm/MapMe-sub002/internal/database"
	pkgredis "github.com/xenm/MapMe-sub002/internal/pkg/redis"
)

var startedAt = time.Now()

// OnlineCounter reports connected chat users; satisfied by the chat hub.
type OnlineCounter interface {
	OnlineCount() int
}

func RegisterRoutes(rg *gin.RouterGroup, store *database.Store, rc *pkgredis.Client, online OnlineCounter) {
	rg.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		dbOK := store.Ping(ctx) == nil
		redisOK := true
		if rc != nil {
			redisOK = rc.Ping(ctx) == nil
		}

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"backend":   store.Backend,
			"database":  dbOK,
			"redis":     redisOK,
			"online":    online.OnlineCount(),
			"uptime":    time.Since(startedAt).Round(time.Second).String(),
			"goVersion": runtime.Version(),
		})
	})

	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})
}
