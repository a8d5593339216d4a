package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mojay6111/football-signup/services/container"
)

// InterfacePageController 定义页面控制器接口
type InterfacePageController interface {
	Index()
	ShowLogin()
	ShowSignup()
	ShowInvitation()
	ShowAdmin()
}

// PageController 渲染HTML视图
type PageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPageController 创建一个新的页面控制器
func NewPageController(ctx *gin.Context, container *container.ServiceContainer) *PageController {
	return &PageController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandlePageFunc 返回一个处理页面请求的Gin处理函数
func HandlePageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPageController(ctx, container)

		switch method {
		case "index":
			controller.Index()
		case "showLogin":
			controller.ShowLogin()
		case "showSignup":
			controller.ShowSignup()
		case "showInvitation":
			controller.ShowInvitation()
		case "showAdmin":
			controller.ShowAdmin()
		default:
			ctx.String(http.StatusBadRequest, "Invalid method")
		}
	}
}

// Index 服务存活探测
func (c *PageController) Index() {
	c.Ctx.String(http.StatusOK, "Football Signup Server is running!")
}

// ShowLogin 渲染管理员登录页
func (c *PageController) ShowLogin() {
	c.Ctx.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

// ShowSignup 渲染报名表单页
func (c *PageController) ShowSignup() {
	c.Ctx.HTML(http.StatusOK, "signup.html", gin.H{
		"title": "Football Match Signup",
	})
}

// ShowInvitation 渲染报名成功确认页
func (c *PageController) ShowInvitation() {
	c.Ctx.HTML(http.StatusOK, "invitation.html", gin.H{
		"title": "Welcome",
	})
}

// ShowAdmin 渲染管理面板，会话由路由层的中间件把关
func (c *PageController) ShowAdmin() {
	username := c.Ctx.GetString("adminUsername")
	c.Ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"title":    "Admin Panel",
		"username": username,
	})
}
