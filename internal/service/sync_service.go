package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/elevenlabs"
	"github.com/treebornwood/voicedeskk/internal/knowledge"
	"github.com/treebornwood/voicedeskk/internal/model"
)

// SyncService 知识同步服务:把商家全部内容编译为一份提示词,
// 整体推送到外部语音 Agent 的配置接口。
// 至多一次语义:不重试,失败由调用方决定是否重新发起;
// 同一商家并发同步在上游表现为后写覆盖。
type SyncService struct {
	db     *gorm.DB
	client *elevenlabs.Client
}

// NewSyncService 创建同步服务实例
func NewSyncService(db *gorm.DB, client *elevenlabs.Client) *SyncService {
	return &SyncService{db: db, client: client}
}

// SyncResult 同步成功摘要
type SyncResult struct {
	ItemsCount    int `json:"itemsCount"`
	ContentLength int `json:"contentLength"`
}

// Sync 执行一次完整同步。对内容存储只读,快照表为唯一写入点。
func (s *SyncService) Sync(ctx context.Context, businessID, apiKey string) (*SyncResult, error) {
	// 1. 查商家的 Agent 标识,未配置则不发起任何外部请求。
	// 查询出错和查不到对调用方不可区分,统一按未配置处理。
	var business model.Business
	err := s.db.Where("id = ?", businessID).First(&business).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logx.Warn("Business lookup failed, business_id %s: %v", businessID, err)
		}
		return nil, ErrAgentNotConfigured
	}
	if business.AgentID == "" {
		return nil, ErrAgentNotConfigured
	}

	// 2. 按创建顺序加载全部内容
	var items []model.ContentItem
	err = s.db.Where("business_id = ?", businessID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 3. 编译
	compiled := knowledge.Compile(items)

	// 4. 推送到上游,整体替换 Agent 的系统提示词
	if err := s.client.UpdateAgentPrompt(ctx, business.AgentID, apiKey, compiled); err != nil {
		return nil, err
	}

	// 5. 覆盖式写入快照。快照只是缓存,写入失败不影响同步结果。
	if err := s.saveSnapshot(businessID, compiled, len(items)); err != nil {
		logx.Warn("Failed to save knowledge snapshot, business_id %s: %v", businessID, err)
	}

	summary := knowledge.Summarize(items, compiled)
	logx.Info("Agent sync completed, business_id %s, items %d, length %d",
		businessID, summary.ItemsCount, summary.ContentLength)

	return &SyncResult{
		ItemsCount:    summary.ItemsCount,
		ContentLength: summary.ContentLength,
	}, nil
}

// saveSnapshot 每个商家一行,整体覆盖
func (s *SyncService) saveSnapshot(businessID, compiled string, itemsCount int) error {
	snapshot := model.KnowledgeSnapshot{
		BusinessID:   businessID,
		CompiledText: compiled,
		ItemsCount:   itemsCount,
		LastCompiled: time.Now(),
	}

	result := s.db.Model(&model.KnowledgeSnapshot{}).
		Where("business_id = ?", businessID).
		Updates(map[string]any{
			"compiled_text": snapshot.CompiledText,
			"items_count":   snapshot.ItemsCount,
			"last_compiled": snapshot.LastCompiled,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.db.Create(&snapshot).Error
	}
	return nil
}

// GetSnapshot 读取商家最近一次编译的快照,没有则返回 nil
func (s *SyncService) GetSnapshot(businessID string) (*model.KnowledgeSnapshot, error) {
	var snapshot model.KnowledgeSnapshot
	err := s.db.Where("business_id = ?", businessID).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &snapshot, nil
}
