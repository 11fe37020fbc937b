package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treebornwood/voicedeskk/internal/cache"
	"github.com/treebornwood/voicedeskk/internal/model"
	"github.com/treebornwood/voicedeskk/internal/service"
	"github.com/treebornwood/voicedeskk/internal/session"
)

// PublicHandler 公开页面处理器,全部接口无需认证。
// 可见性规则只有一条:商家必须处于上线状态,否则一律按不存在处理。
type PublicHandler struct {
	businessService     *service.BusinessService
	bookingService      *service.BookingService
	conversationService *service.ConversationService
	publicCache         *cache.PublicCache
}

// NewPublicHandler 创建公开页面处理器
func NewPublicHandler(
	businessService *service.BusinessService,
	bookingService *service.BookingService,
	conversationService *service.ConversationService,
	publicCache *cache.PublicCache,
) *PublicHandler {
	return &PublicHandler{
		businessService:     businessService,
		bookingService:      bookingService,
		conversationService: conversationService,
		publicCache:         publicCache,
	}
}

// ListLive 公开目录页:列出所有已上线商家
func (h *PublicHandler) ListLive(c *gin.Context) {
	businesses, err := h.businessService.ListLive()
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"total":      len(businesses),
		"businesses": businesses,
	})
}

// liveBusiness 按 slug 查询已上线商家,优先走缓存
func (h *PublicHandler) liveBusiness(c *gin.Context, slug string) (*model.Business, error) {
	if h.publicCache != nil {
		if business, ok := h.publicCache.GetBusiness(c.Request.Context(), slug); ok {
			return business, nil
		}
	}

	business, err := h.businessService.GetLiveBySlug(slug)
	if err != nil {
		return nil, err
	}

	if h.publicCache != nil {
		_ = h.publicCache.SetBusiness(c.Request.Context(), business)
	}
	return business, nil
}

// GetBySlug 公开商家页:按 slug 查询已上线商家
func (h *PublicHandler) GetBySlug(c *gin.Context) {
	business, err := h.liveBusiness(c, c.Param("slug"))
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, business)
}

// publicBookingRequest 公开预约请求,可携带促成预约的会话标识
type publicBookingRequest struct {
	service.CreateBookingRequest
	ConversationID string `json:"conversation_id"`
}

// CreateBooking 访客提交预约表单
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	business, err := h.liveBusiness(c, c.Param("slug"))
	if err != nil {
		failFromError(c, err)
		return
	}

	var req publicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(business.ID, &req.CreateBookingRequest)
	if err != nil {
		failFromError(c, err)
		return
	}

	// 语音会话促成的预约,回填会话记录
	if req.ConversationID != "" {
		if err := h.conversationService.LinkBooking(req.ConversationID, booking.ID); err != nil {
			failFromError(c, err)
			return
		}
	}

	success(c, booking)
}

// StartConversation 记录一次语音会话开始。
// 实时语音流由前端 SDK 直连外部 Agent,这里只做归档。
func (h *PublicHandler) StartConversation(c *gin.Context) {
	business, err := h.liveBusiness(c, c.Param("slug"))
	if err != nil {
		failFromError(c, err)
		return
	}

	conversation, err := h.conversationService.StartConversation(business.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"conversation":  conversation,
		"session_state": h.conversationService.SessionState(conversation.ID).String(),
	})
}

// conversationEventRequest 语音会话回调事件
type conversationEventRequest struct {
	Event   string `json:"event" binding:"required"` // mode-change / error
	Mode    string `json:"mode"`
	Message string `json:"message"`
}

// ConversationEvent 前端语音组件的回调入口,事件映射为会话状态迁移
func (h *PublicHandler) ConversationEvent(c *gin.Context) {
	var req conversationEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	conversationID := c.Param("id")

	var err error
	switch req.Event {
	case "mode-change":
		err = h.conversationService.ChangeMode(conversationID, session.Mode(req.Mode))
	case "error":
		err = h.conversationService.ReportFailure(conversationID, req.Message)
	default:
		fail(c, http.StatusBadRequest, "未知事件类型: "+req.Event)
		return
	}
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"session_state": h.conversationService.SessionState(conversationID).String(),
	})
}

// endConversationRequest 会话结束请求
type endConversationRequest struct {
	Transcript string `json:"transcript"`
}

// EndConversation 记录会话结束并归档转录
func (h *PublicHandler) EndConversation(c *gin.Context) {
	var req endConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	if err := h.conversationService.EndConversation(c.Param("id"), req.Transcript); err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{"ended": true})
}
