package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/models"
)

// ErrEmailRegistered 邮箱已被注册
var ErrEmailRegistered = errors.New("email already registered")

// InterfaceRegistrantService 定义报名者服务接口
type InterfaceRegistrantService interface {
	GetAllRegistrants(query *models.PaginationQuery) ([]models.Registrant, int64, error)
	CreateRegistrant(registrant *models.Registrant) error
	UpdateRegistrant(email string, updates map[string]interface{}) (bool, error)
	DeleteRegistrant(email string) (bool, error)
}

// RegistrantService 提供报名者相关的服务
type RegistrantService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRegistrantService 创建一个新的报名者服务
func NewRegistrantService(db *gorm.DB, cfg *config.Config) InterfaceRegistrantService {
	return &RegistrantService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllRegistrants 获取报名者列表，支持搜索、排序和分页。
// 搜索在姓名、邮箱、电话三个字段上做大小写不敏感的子串匹配，
// 空关键词匹配全部记录。返回当前页数据和匹配总数。
func (s *RegistrantService) GetAllRegistrants(query *models.PaginationQuery) ([]models.Registrant, int64, error) {
	var registrants []models.Registrant
	var total int64

	db := s.DB.Model(&models.Registrant{})
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	// 获取匹配总数
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.Ascending() {
		order = "created_at ASC"
	}

	// 分页查询
	if err := db.Order(order).Offset(query.Offset()).Limit(query.Limit).Find(&registrants).Error; err != nil {
		return nil, 0, err
	}

	return registrants, total, nil
}

// 2 CreateRegistrant 创建新报名者。
// 邮箱唯一性为先查后插：并发的同邮箱报名可能同时通过检查，
// 这是单事件规模下接受的竞争窗口。
func (s *RegistrantService) CreateRegistrant(registrant *models.Registrant) error {
	var count int64
	if err := s.DB.Model(&models.Registrant{}).Where("email = ?", registrant.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailRegistered
	}

	return s.DB.Create(registrant).Error
}

// 3 UpdateRegistrant 按邮箱对报名者做部分更新，只改动提供的字段。
// 使用 UpdateColumns 保持"受影响行数"语义：值未变化的更新不计数，
// 与"记录不存在"无法区分，这一歧义由接口契约接受。
func (s *RegistrantService) UpdateRegistrant(email string, updates map[string]interface{}) (bool, error) {
	if len(updates) == 0 {
		return false, nil
	}

	result := s.DB.Model(&models.Registrant{}).Where("email = ?", email).UpdateColumns(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// 4 DeleteRegistrant 按邮箱删除报名者，返回是否确实删除了记录
func (s *RegistrantService) DeleteRegistrant(email string) (bool, error) {
	result := s.DB.Where("email = ?", email).Delete(&models.Registrant{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
