package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/services"
	"github.com/mojay6111/football-signup/services/container"
)

// InterfaceNotificationController 定义推送控制器接口
type InterfaceNotificationController interface {
	Connect()
}

// NotificationController 处理管理端的WebSocket接入
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的推送控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc 返回一个处理推送请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "connect":
			controller.Connect()
		default:
			ctx.String(http.StatusBadRequest, "Invalid method")
		}
	}
}

// Connect 将请求升级为WebSocket推送连接
func (c *NotificationController) Connect() {
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.HandleConnection(c.Ctx.Writer, c.Ctx.Request); err != nil {
		// 升级失败时 gorilla 已写出了错误响应，这里只记录
		config.Warning("WebSocket升级失败: %v", err)
	}
}
