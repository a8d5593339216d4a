package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mojay6111/football-signup/services"
)

var sessionService services.InterfaceSessionService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(svc services.InterfaceSessionService) {
	sessionService = svc
}

// AuthenticateAdminSession 验证管理员会话。
// 会话缺失、过期或无效时重定向到登录页而不是返回401，
// 被保护的是HTML视图而不是API。
func AuthenticateAdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(services.SessionCookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		session, ok := sessionService.ResolveToken(token)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// 存储会话绑定到上下文
		c.Set("adminID", session.AdminID)
		c.Set("adminUsername", session.Username)
		c.Next()
	}
}
