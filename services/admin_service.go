package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/models"
	"github.com/mojay6111/football-signup/utils"
)

// ErrInvalidCredentials 用户名或密码不正确
var ErrInvalidCredentials = errors.New("invalid username or password")

// InterfaceAdminService 定义管理员服务接口
type InterfaceAdminService interface {
	Authenticate(username, password string) (*models.Admin, error)
	GetAdminByUsername(username string) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// Authenticate 按用户名查找管理员并比较密码哈希。
// 用户名不存在与密码错误统一返回 ErrInvalidCredentials。
func (s *AdminService) Authenticate(username, password string) (*models.Admin, error) {
	admin, err := s.GetAdminByUsername(username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// GetAdminByUsername 根据用户名获取管理员，不存在时返回 nil
func (s *AdminService) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureDefaultAdmin 确保系统中至少有一个管理员账户。
// 管理员由外部预置，这里只在空表时种入默认账户。
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username: s.Config.DefaultAdminUsername,
		Password: hashedPassword,
	}

	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}

	config.Info("已创建默认管理员账户 (用户名: %s)", admin.Username)
	return nil
}
