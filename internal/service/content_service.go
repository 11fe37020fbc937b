package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/model"
)

// ContentService 商家知识内容服务。内容从 API 角度只增不改:只有新增和删除。
type ContentService struct {
	db *gorm.DB
}

// NewContentService 创建内容服务实例
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// AddContentRequest 新增内容请求
type AddContentRequest struct {
	ContentType      string `json:"content_type"`
	OriginalFilename string `json:"original_filename" binding:"required"`
	ExtractedText    string `json:"extracted_text"`
	ExtractedJSON    string `json:"extracted_json"`
}

// AddContent 为商家新增一条内容
func (s *ContentService) AddContent(businessID string, req *AddContentRequest) (*model.ContentItem, error) {
	contentType := req.ContentType
	if contentType == "" {
		contentType = "text"
	}

	item := &model.ContentItem{
		BusinessID:       businessID,
		ContentType:      contentType,
		OriginalFilename: req.OriginalFilename,
		ExtractedText:    req.ExtractedText,
		ExtractedJSON:    req.ExtractedJSON,
		Processed:        true,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return item, nil
}

// ListForCompile 按创建时间升序列出商家全部内容(编译顺序)
func (s *ContentService) ListForCompile(businessID string) ([]model.ContentItem, error) {
	var items []model.ContentItem
	err := s.db.Where("business_id = ?", businessID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

// ListByBusiness 按创建时间降序列出商家内容(管理页展示顺序)
func (s *ContentService) ListByBusiness(businessID string) ([]model.ContentItem, error) {
	var items []model.ContentItem
	err := s.db.Where("business_id = ?", businessID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

// DeleteContent 删除商家的一条内容,归属不符返回 ErrNotFound
func (s *ContentService) DeleteContent(businessID, itemID string) error {
	var item model.ContentItem
	err := s.db.Where("id = ? AND business_id = ?", itemID, businessID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CountByBusiness 商家内容条数
func (s *ContentService) CountByBusiness(businessID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.ContentItem{}).Where("business_id = ?", businessID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
