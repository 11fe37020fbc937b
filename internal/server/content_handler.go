package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treebornwood/voicedeskk/internal/service"
)

// ContentHandler 商家知识内容处理器(认证接口)
type ContentHandler struct {
	businessService *service.BusinessService
	contentService  *service.ContentService
}

// NewContentHandler 创建内容处理器
func NewContentHandler(businessService *service.BusinessService, contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		businessService: businessService,
		contentService:  contentService,
	}
}

// ownedBusiness 归属检查,返回当前账号名下的商家
func (h *ContentHandler) ownedBusiness(c *gin.Context) (string, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "未认证")
		return "", false
	}

	business, err := h.businessService.GetOwned(userID, c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return "", false
	}
	return business.ID, true
}

// List 列出商家内容(管理页,按创建时间倒序)
func (h *ContentHandler) List(c *gin.Context) {
	businessID, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	items, err := h.contentService.ListByBusiness(businessID)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{
		"total": len(items),
		"items": items,
	})
}

// Add 新增一条内容
func (h *ContentHandler) Add(c *gin.Context) {
	businessID, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	var req service.AddContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	item, err := h.contentService.AddContent(businessID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	success(c, item)
}

// Delete 删除一条内容
func (h *ContentHandler) Delete(c *gin.Context) {
	businessID, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	if err := h.contentService.DeleteContent(businessID, c.Param("itemId")); err != nil {
		failFromError(c, err)
		return
	}

	success(c, gin.H{"deleted": true})
}
