package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treebornwood/voicedeskk/internal/elevenlabs"
	"github.com/treebornwood/voicedeskk/internal/model"
	"github.com/treebornwood/voicedeskk/internal/service"
)

// SyncHandler 知识同步入口。响应格式与既有调用方逐字段对齐,
// 不套用统一响应结构,调用方携带自己的 API 密钥。
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler 创建同步处理器
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncAgentRequest 同步请求
type SyncAgentRequest struct {
	BusinessID string `json:"businessId"`
	APIKey     string `json:"elevenlabsApiKey"`
}

// SyncAgentResponse 同步成功响应
type SyncAgentResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ContentLength int    `json:"contentLength"`
	ItemsCount    int    `json:"itemsCount"`
}

// SyncAgent 执行一次知识同步
func (h *SyncHandler) SyncAgent(c *gin.Context) {
	var req SyncAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Missing businessId or elevenlabsApiKey"})
		return
	}

	if req.BusinessID == "" || req.APIKey == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Missing businessId or elevenlabsApiKey"})
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), req.BusinessID, req.APIKey)
	if err != nil {
		h.writeSyncError(c, err)
		return
	}

	c.JSON(http.StatusOK, SyncAgentResponse{
		Success:       true,
		Message:       "Agent knowledge base updated successfully",
		ContentLength: result.ContentLength,
		ItemsCount:    result.ItemsCount,
	})
}

// writeSyncError 按失败环节映射响应,上游响应体原样透传到 details
func (h *SyncHandler) writeSyncError(c *gin.Context, err error) {
	var upstreamErr *elevenlabs.UpstreamError
	switch {
	case errors.Is(err, service.ErrAgentNotConfigured):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Business not found or no agent configured"})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "Failed to update ElevenLabs agent",
			Details: upstreamErr.Body,
		})
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to fetch content"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
	}
}
