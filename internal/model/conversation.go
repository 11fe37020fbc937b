package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation 语音会话记录,会话本身由外部 Agent 托管,这里只做归档
type Conversation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BusinessID  string     `gorm:"index;size:36;not null" json:"business_id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	Transcript  string     `gorm:"type:text" json:"transcript"`
	BookingMade bool       `gorm:"default:false" json:"booking_made"`
	BookingID   string     `gorm:"size:36" json:"booking_id"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate 创建前生成 UUID 主键
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
