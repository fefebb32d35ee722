package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"versozap/internal/middleware"
	database "versozap/internal/server/db"
)

const pingTimeout = 3 * time.Second

// SetupRouter 初始化 Gin 路由，并为每个请求注入数据库会话
func SetupRouter(engine *database.Engine, factory *database.SessionFactory) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := engine.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "versozap"})
	})

	api := r.Group("/api", middleware.SessionScope(factory))
	api.GET("/db/info", func(c *gin.Context) {
		s := middleware.MustSession(c)
		if s == nil {
			return
		}
		tx, err := s.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var one int
		if err := tx.Raw("SELECT 1").Scan(&one).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"dialect": engine.Dialect(),
			"driver":  engine.Driver(),
			"echo":    engine.Echo(),
			"session": s.ID(),
			"ok":      one == 1,
		})
	})

	return r
}
