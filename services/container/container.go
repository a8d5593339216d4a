package container

import (
	"sync"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/services"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService     services.InterfaceJWTService
	redisService   *services.RedisService
	sessionService services.InterfaceSessionService

	// 推送服务
	notificationService services.InterfaceNotificationService

	// 业务服务
	registrantService services.InterfaceRegistrantService
	adminService      services.InterfaceAdminService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器。
// redisClient 可为 nil；连通性检查失败时回退到内存会话存储。
// db 为 nil 时跳过数据库侧服务的构造（仅用于测试替换场景）。
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 会话存储：Redis 可用时用 Redis，否则退回进程内存储
	var store services.InterfaceSessionStore = services.NewMemorySessionStore()
	if c.redis != nil {
		redisService := services.NewRedisServiceWithClient(c.redis)
		if err := redisService.Ping(); err != nil {
			config.Warning("Redis连接测试失败: %v，会话将保存在进程内存中", err)
		} else {
			c.redisService = redisService
			store = services.NewRedisSessionStore(redisService)
		}
	}
	c.sessionService = services.NewSessionService(store, c.jwtService, c.config.SessionTTL())

	// 初始化推送服务
	c.notificationService = services.NewNotificationService()

	// 初始化业务服务
	if c.db != nil {
		c.registrantService = services.NewRegistrantService(c.db, c.config)
		c.adminService = services.NewAdminService(c.db, c.config)
	}
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "session":
		return c.sessionService
	case "notification":
		return c.notificationService
	case "registrant":
		return c.registrantService
	case "admin":
		return c.adminService
	default:
		return nil
	}
}

// ReplaceService 替换指定名称的服务实现，供测试注入使用
func (c *ServiceContainer) ReplaceService(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "jwt":
		c.jwtService = service.(services.InterfaceJWTService)
	case "session":
		c.sessionService = service.(services.InterfaceSessionService)
	case "notification":
		c.notificationService = service.(services.InterfaceNotificationService)
	case "registrant":
		c.registrantService = service.(services.InterfaceRegistrantService)
	case "admin":
		c.adminService = service.(services.InterfaceAdminService)
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取应用配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
