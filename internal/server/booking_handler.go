package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treebornwood/voicedeskk/internal/service"
)

// BookingHandler 商家侧预约与会话查询处理器(认证接口)
type BookingHandler struct {
	businessService     *service.BusinessService
	bookingService      *service.BookingService
	conversationService *service.ConversationService
}

// NewBookingHandler 创建预约查询处理器
func NewBookingHandler(
	businessService *service.BusinessService,
	bookingService *service.BookingService,
	conversationService *service.ConversationService,
) *BookingHandler {
	return &BookingHandler{
		businessService:     businessService,
		bookingService:      bookingService,
		conversationService: conversationService,
	}
}

// List 按预约时间顺序列出商家的预约
func (h *BookingHandler) List(c *gin.Context) {
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

	bookings, err := h.bookingService.ListByBusiness(business.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"total":    len(bookings),
		"bookings": bookings,
	})
}

// ListConversations 列出商家的会话归档
func (h *BookingHandler) ListConversations(c *gin.Context) {
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

	conversations, err := h.conversationService.ListByBusiness(business.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"total":         len(conversations),
		"conversations": conversations,
	})
}
