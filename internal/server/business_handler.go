package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treebornwood/voicedeskk/internal/cache"
	"github.com/treebornwood/voicedeskk/internal/service"
)

// BusinessHandler 商家管理处理器(认证接口)
type BusinessHandler struct {
	businessService *service.BusinessService
	syncService     *service.SyncService
	contentService  *service.ContentService
	bookingService  *service.BookingService
	publicCache     *cache.PublicCache
	apiKey          string
}

// NewBusinessHandler 创建商家管理处理器
func NewBusinessHandler(
	businessService *service.BusinessService,
	syncService *service.SyncService,
	contentService *service.ContentService,
	bookingService *service.BookingService,
	publicCache *cache.PublicCache,
	apiKey string,
) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		syncService:     syncService,
		contentService:  contentService,
		bookingService:  bookingService,
		publicCache:     publicCache,
		apiKey:          apiKey,
	}
}

// currentUserID 从认证中间件取当前用户 ID
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// ListMine 列出当前账号名下的商家。
// "当前选中的商家"属于前端会话状态,服务端不保存。
func (h *BusinessHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	businesses, err := h.businessService.ListByOwner(userID)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"total":      len(businesses),
		"businesses": businesses,
	})
}

// Create 创建商家
func (h *BusinessHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	var req service.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	business, err := h.businessService.CreateBusiness(userID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, business)
}

// Get 获取商家详情
func (h *BusinessHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	business, err := h.businessService.GetOwned(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, business)
}

// Update 更新商家信息(含外部 Agent 标识)
func (h *BusinessHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	var req service.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	business, err := h.businessService.UpdateBusiness(userID, c.Param("id"), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	// 公开页信息已变,清掉缓存
	if h.publicCache != nil {
		_ = h.publicCache.Invalidate(c.Request.Context(), business.Slug)
	}

	success(c, business)
}

// GoLive 上线商家公开页面
func (h *BusinessHandler) GoLive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	business, err := h.businessService.GoLive(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	if h.publicCache != nil {
		_ = h.publicCache.Invalidate(c.Request.Context(), business.Slug)
	}

	success(c, business)
}

// TakeOffline 下线商家公开页面
func (h *BusinessHandler) TakeOffline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	business, err := h.businessService.TakeOffline(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	if h.publicCache != nil {
		_ = h.publicCache.Invalidate(c.Request.Context(), business.Slug)
	}

	success(c, business)
}

// Sync 用服务端配置的密钥同步当前商家的知识到外部 Agent
func (h *BusinessHandler) Sync(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	if h.apiKey == "" {
		fail(c, http.StatusBadRequest, "服务端未配置 ElevenLabs API Key")
		return
	}

	// 归属检查先行,避免替他人商家触发同步
	business, err := h.businessService.GetOwned(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), business.ID, h.apiKey)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, result)
}

// Stats 商家概览统计
func (h *BusinessHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return
	}

	business, err := h.businessService.GetOwned(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	contentCount, err := h.contentService.CountByBusiness(business.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	bookingCount, err := h.bookingService.CountByBusiness(business.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	stats := gin.H{
		"content_count": contentCount,
		"booking_count": bookingCount,
		"is_live":       business.IsLive,
	}

	// 最近一次同步时间,没同步过则不返回
	if snapshot, err := h.syncService.GetSnapshot(business.ID); err == nil && snapshot != nil {
		stats["last_compiled"] = snapshot.LastCompiled
		stats["compiled_items"] = snapshot.ItemsCount
	}

	success(c, stats)
}
