package models

import "time"

// Registrant represents a person who submitted the signup form
type Registrant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"type:varchar(100);not null" json:"fullname"`
	// 邮箱唯一性由插入前的存在性检查保证，不在存储层加唯一约束
	Email     string    `gorm:"type:varchar(100);not null;index" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
