package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/services"
	"github.com/mojay6111/football-signup/services/container"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Login()
	Logout()
}

// AuthController 处理管理员登录和注销
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		default:
			ctx.String(http.StatusBadRequest, "Invalid method")
		}
	}
}

// Login 处理管理员登录
// 凭据正确时建立会话、种下Cookie并跳转到管理面板；
// 用户名或密码错误统一返回401
func (c *AuthController) Login() {
	username := strings.TrimSpace(c.Ctx.PostForm("username"))
	password := c.Ctx.PostForm("password")

	if username == "" || password == "" {
		c.Ctx.String(http.StatusBadRequest, "All fields are required.")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Ctx.String(http.StatusUnauthorized, "Invalid username or password")
			return
		}
		config.Error("管理员登录查询失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error logging in")
		return
	}

	sessionService := c.Container.GetService("session").(services.InterfaceSessionService)
	token, err := sessionService.CreateSession(admin)
	if err != nil {
		config.Error("创建会话失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error logging in")
		return
	}

	maxAge := int(sessionService.TTL().Seconds())
	c.Ctx.SetCookie(services.SessionCookieName, token, maxAge, "/", "", false, true)

	config.Info("管理员已登录: %s", admin.Username)
	c.Ctx.Redirect(http.StatusFound, "/admin")
}

// Logout 销毁当前会话并清除Cookie
func (c *AuthController) Logout() {
	if token, err := c.Ctx.Cookie(services.SessionCookieName); err == nil {
		sessionService := c.Container.GetService("session").(services.InterfaceSessionService)
		if err := sessionService.DestroyToken(token); err != nil {
			config.Warning("销毁会话失败: %v", err)
		}
	}

	c.Ctx.SetCookie(services.SessionCookieName, "", -1, "/", "", false, true)
	c.Ctx.Redirect(http.StatusFound, "/login")
}
