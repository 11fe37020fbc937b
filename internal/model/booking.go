package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 预约状态
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking 预约模型,由公开页面的访客创建
type Booking struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BusinessID          string    `gorm:"index;size:36;not null" json:"business_id"`
	CustomerName        string    `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone       string    `gorm:"size:50" json:"customer_phone"`
	CustomerEmail       string    `gorm:"size:100" json:"customer_email"`
	ServiceRequested    string    `gorm:"size:255" json:"service_requested"`
	AppointmentDatetime time.Time `gorm:"index" json:"appointment_datetime"`
	Status              string    `gorm:"size:20;default:'confirmed'" json:"status"`
	Transcript          string    `gorm:"column:conversation_transcript;type:text" json:"conversation_transcript"`
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate 创建前生成 UUID 主键
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
