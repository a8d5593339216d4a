package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/controllers"
	"github.com/mojay6111/football-signup/middleware"
	"github.com/mojay6111/football-signup/services"
	"github.com/mojay6111/football-signup/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 加载页面模板
	r.LoadHTMLGlob("web/templates/*")

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// 注册路由
	RegisterRoutes(r, serviceContainer)
	return r
}

// RegisterRoutes 配置所有路由，测试可传入自行构造的容器
func RegisterRoutes(r *gin.Engine, c *container.ServiceContainer) {
	// 初始化中间件
	middleware.InitAuthMiddleware(c.GetService("session").(services.InterfaceSessionService))

	// 注册公共路由
	registerPublicRoutes(r, c)
	// 注册需要会话的路由
	registerAdminRoutes(r, c)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	r *gin.Engine,
	c *container.ServiceContainer,
) {
	cfg := c.GetConfig()

	// 存活探测
	r.GET("/", controllers.HandlePageFunc(c, "index"))

	// 页面路由
	r.GET("/login", controllers.HandlePageFunc(c, "showLogin"))
	r.GET("/signup", controllers.HandlePageFunc(c, "showSignup"))
	r.GET("/invitation", controllers.HandlePageFunc(c, "showInvitation"))

	// 认证路由，可选的登录限流
	if cfg.RateLimitEnabled {
		r.POST("/login", middleware.RateLimitByIP(cfg.RateLimitRate, cfg.RateLimitBurst), controllers.HandleAuthFunc(c, "login"))
	} else {
		r.POST("/login", controllers.HandleAuthFunc(c, "login"))
	}
	r.POST("/logout", controllers.HandleAuthFunc(c, "logout"))

	// 报名与管理端数据路由
	r.POST("/signup", controllers.HandleRegistrantFunc(c, "signup"))
	r.GET("/users", controllers.HandleRegistrantFunc(c, "getUsers"))
	r.PUT("/users", controllers.HandleRegistrantFunc(c, "updateUser"))
	r.DELETE("/users", controllers.HandleRegistrantFunc(c, "deleteUser"))

	// 管理端实时推送
	r.GET("/ws", controllers.HandleNotificationFunc(c, "connect"))
}

// registerAdminRoutes 注册需要管理员会话的路由
func registerAdminRoutes(
	r *gin.Engine,
	c *container.ServiceContainer,
) {
	admin := r.Group("/")
	admin.Use(middleware.AuthenticateAdminSession())

	admin.GET("/admin", controllers.HandlePageFunc(c, "showAdmin"))
}
