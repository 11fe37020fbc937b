package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business 商家模型,每个商家拥有独立的内容、预约和公开语音页面
type Business struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID      uint   `gorm:"index;not null" json:"owner_id"`               // 所属账号
	BusinessName string `gorm:"size:255;not null" json:"business_name"`       // 商家名称
	BusinessType string `gorm:"size:50" json:"business_type"`                 // 'barber', 'restaurant', 'clinic', 'gym', 'spa', 'other'
	Description  string `gorm:"type:text" json:"description"`                 // 商家简介
	Phone        string `gorm:"size:50" json:"phone"`
	Email        string `gorm:"size:100" json:"email"`
	Address      string `gorm:"size:255" json:"address"`
	Slug         string `gorm:"uniqueIndex;size:255;not null" json:"slug"`    // 公开页面路由标识
	AgentID      string `gorm:"column:elevenlabs_agent_id;size:100" json:"elevenlabs_agent_id"` // 外部语音 Agent 标识
	IsLive       bool   `gorm:"default:false;index" json:"is_live"`           // 是否对外公开
	LogoURL      string `gorm:"size:255" json:"logo_url"`
}

// TableName 指定表名
func (Business) TableName() string {
	return "businesses"
}

// BeforeCreate 创建前生成 UUID 主键
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
