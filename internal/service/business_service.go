package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/model"
)

// BusinessService 商家服务
type BusinessService struct {
	db *gorm.DB
}

// NewBusinessService 创建商家服务实例
func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

// CreateBusinessRequest 创建商家请求
type CreateBusinessRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	BusinessType string `json:"business_type"`
	Description  string `json:"description"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	AgentID      string `json:"elevenlabs_agent_id"`
}

// UpdateBusinessRequest 更新商家请求,零值字段同样写入(整体覆盖语义)
type UpdateBusinessRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	BusinessType string `json:"business_type"`
	Description  string `json:"description"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	AgentID      string `json:"elevenlabs_agent_id"`
	LogoURL      string `json:"logo_url"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 从商家名称派生 URL 标识:小写,非字母数字折叠为 '-',去除首尾 '-'
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateBusiness 创建商家并派生唯一 slug,冲突时追加数字后缀
func (s *BusinessService) CreateBusiness(ownerID uint, req *CreateBusinessRequest) (*model.Business, error) {
	slug, err := s.uniqueSlug(Slugify(req.BusinessName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	business := &model.Business{
		OwnerID:      ownerID,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		Description:  req.Description,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		AgentID:      req.AgentID,
		Slug:         slug,
	}

	if err := s.db.Create(business).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return business, nil
}

// uniqueSlug 生成不与现有记录冲突的 slug
func (s *BusinessService) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "business"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&model.Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ListByOwner 列出账号名下的全部商家
func (s *BusinessService) ListByOwner(ownerID uint) ([]model.Business, error) {
	var businesses []model.Business
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at").Find(&businesses).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return businesses, nil
}

// GetOwned 获取账号名下指定商家,不存在或归属不符返回 ErrNotFound
func (s *BusinessService) GetOwned(ownerID uint, businessID string) (*model.Business, error) {
	var business model.Business
	err := s.db.Where("id = ? AND owner_id = ?", businessID, ownerID).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &business, nil
}

// UpdateBusiness 更新商家信息
func (s *BusinessService) UpdateBusiness(ownerID uint, businessID string, req *UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.GetOwned(ownerID, businessID)
	if err != nil {
		return nil, err
	}

	business.BusinessName = req.BusinessName
	business.BusinessType = req.BusinessType
	business.Description = req.Description
	business.Phone = req.Phone
	business.Email = req.Email
	business.Address = req.Address
	business.AgentID = req.AgentID
	business.LogoURL = req.LogoURL

	if err := s.db.Save(business).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return business, nil
}

// GoLive 将商家公开页面上线,要求至少有一条内容
func (s *BusinessService) GoLive(ownerID uint, businessID string) (*model.Business, error) {
	business, err := s.GetOwned(ownerID, businessID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.ContentItem{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: cannot go live without content", ErrValidation)
	}

	business.IsLive = true
	if err := s.db.Save(business).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return business, nil
}

// TakeOffline 将商家公开页面下线,公开查询随即按不存在处理
func (s *BusinessService) TakeOffline(ownerID uint, businessID string) (*model.Business, error) {
	business, err := s.GetOwned(ownerID, businessID)
	if err != nil {
		return nil, err
	}

	business.IsLive = false
	if err := s.db.Save(business).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return business, nil
}

// GetLiveBySlug 按 slug 查询已上线的商家。
// 这是公开页面唯一的可见性规则:未上线的商家一律按不存在处理。
func (s *BusinessService) GetLiveBySlug(slug string) (*model.Business, error) {
	var business model.Business
	err := s.db.Where("slug = ? AND is_live = ?", slug, true).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &business, nil
}

// ListLive 列出所有已上线商家(公开目录页)
func (s *BusinessService) ListLive() ([]model.Business, error) {
	var businesses []model.Business
	err := s.db.Where("is_live = ?", true).Order("created_at").Find(&businesses).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return businesses, nil
}
