package handler

import (
	"strings"
	"time"

	"go-event-hub/internal/auth"
	"go-event-hub/internal/model"
	apperrors "go-event-hub/pkg/app_errors"
	"go-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 以 bearer token 確認呼叫端就是目前 session 的使用者
type AuthMiddleware struct {
	store  SessionStore
	issuer *auth.TokenIssuer
}

func NewAuthMiddleware(store SessionStore, issuer *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{store: store, issuer: issuer}
}

func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			handleError(c, apperrors.ErrNotAuthenticated, "RequireSession")
			c.Abort()
			return
		}

		claims, err := m.issuer.Parse(tokenString)
		if err != nil {
			handleError(c, apperrors.ErrNotAuthenticated, "RequireSession")
			c.Abort()
			return
		}

		// token 必須屬於目前 session；logout 或換人登入後舊 token 即失效
		user, ok := m.store.Current()
		if !ok || user.ID != claims.Subject {
			handleError(c, apperrors.ErrNotAuthenticated, "RequireSession")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole 必須放在 RequireSession 之後；角色以 session 目前的值為準
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			handleError(c, apperrors.ErrNotAuthenticated, "RequireRole")
			c.Abort()
			return
		}
		if user.Role != role {
			handleError(c, apperrors.ErrForbidden, "RequireRole")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger 以 zap 記錄每個請求
func RequestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
