package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/model"
)

// BookingService 预约服务。只做写入和查询,不做冲突检测:
// 同一时段允许多个预约,确认环节由商家自行处理。
type BookingService struct {
	db *gorm.DB
}

// NewBookingService 创建预约服务实例
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// CreateBookingRequest 公开预约表单
type CreateBookingRequest struct {
	CustomerName     string `json:"customer_name" binding:"required"`
	CustomerPhone    string `json:"customer_phone" binding:"required"`
	CustomerEmail    string `json:"customer_email"`
	ServiceRequested string `json:"service_requested" binding:"required"`
	Date             string `json:"date" binding:"required"` // 2006-01-02
	Time             string `json:"time" binding:"required"` // 15:04
	Transcript       string `json:"conversation_transcript"`
}

// CreateBooking 合并日期和时间为本地时区时间戳,以 confirmed 状态写入预约
func (s *BookingService) CreateBooking(businessID string, req *CreateBookingRequest) (*model.Booking, error) {
	appointment, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date or time: %v", ErrValidation, err)
	}

	booking := &model.Booking{
		BusinessID:          businessID,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		ServiceRequested:    req.ServiceRequested,
		AppointmentDatetime: appointment,
		Status:              model.BookingStatusConfirmed,
		Transcript:          req.Transcript,
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return booking, nil
}

// ListByBusiness 按预约时间升序列出商家的预约
func (s *BookingService) ListByBusiness(businessID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.Where("business_id = ?", businessID).Order("appointment_datetime ASC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return bookings, nil
}

// CountByBusiness 商家预约总数
func (s *BookingService) CountByBusiness(businessID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Booking{}).Where("business_id = ?", businessID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
