package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	database "versozap/internal/server/db"
)

const sessionKey = "session"

// SessionScope 为每个请求创建一个数据库会话，请求结束后关闭（未提交的修改被回滚）
func SessionScope(factory *database.SessionFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := factory.New(c.Request.Context())
		c.Set(sessionKey, s)
		defer func() {
			if err := s.Close(); err != nil {
				log.Printf("关闭会话失败: %v", err)
			}
		}()
		c.Next()
	}
}

// CurrentSession 取出当前请求的会话；未挂载 SessionScope 时返回 false
func CurrentSession(c *gin.Context) (*database.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*database.Session)
	return s, ok
}

// MustSession 取出会话，缺失时直接返回 500
func MustSession(c *gin.Context) *database.Session {
	s, ok := CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "数据库会话不可用"})
		return nil
	}
	return s
}
