package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentItem 商家知识内容条目,从 API 角度只增不改
type ContentItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BusinessID       string `gorm:"index;size:36;not null" json:"business_id"`
	ContentType      string `gorm:"size:50" json:"content_type"`           // 'text', 'faq', 'menu' 等
	OriginalFilename string `gorm:"size:255" json:"original_filename"`     // 编译时的段落标题
	ExtractedText    string `gorm:"type:text" json:"extracted_text"`
	ExtractedJSON    string `gorm:"type:text" json:"extracted_json"`       // JSON 格式的结构化内容
	Processed        bool   `gorm:"default:false" json:"processed"`
}

// TableName 指定表名
func (ContentItem) TableName() string {
	return "business_content"
}

// BeforeCreate 创建前生成 UUID 主键
func (c *ContentItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
