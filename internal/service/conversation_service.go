package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/model"
	"github.com/treebornwood/voicedeskk/internal/session"
)

// ConversationService 语音会话归档服务。
// 实时会话由外部 Agent 承载,这里记录起止时间、转录文本和成单情况,
// 并为每个进行中的会话维护一个显式状态机,前端回调映射为状态迁移。
type ConversationService struct {
	db *gorm.DB

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewConversationService 创建会话服务实例
func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{
		db:       db,
		sessions: make(map[string]*session.Session),
	}
}

// StartConversation 记录一次会话开始,同时建立会话状态机。
// 前端发起本请求时语音通道已在建连,状态直接推进到 connected。
func (s *ConversationService) StartConversation(businessID string) (*model.Conversation, error) {
	conversation := &model.Conversation{
		BusinessID: businessID,
		StartedAt:  time.Now(),
	}
	if err := s.db.Create(conversation).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	sess := session.New()
	_ = sess.Connect()
	_ = sess.Connected()

	s.mu.Lock()
	s.sessions[conversation.ID] = sess
	s.mu.Unlock()

	return conversation, nil
}

// activeSession 取进行中会话的状态机
func (s *ConversationService) activeSession(conversationID string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[conversationID]
	return sess, ok
}

// SessionState 查询会话当前状态,已结束或未知的会话为 idle
func (s *ConversationService) SessionState(conversationID string) session.State {
	sess, ok := s.activeSession(conversationID)
	if !ok {
		return session.StateIdle
	}
	return sess.State()
}

// ChangeMode 前端 mode-change 回调:会话在听和说之间切换
func (s *ConversationService) ChangeMode(conversationID string, mode session.Mode) error {
	sess, ok := s.activeSession(conversationID)
	if !ok {
		return ErrNotFound
	}
	if err := sess.ModeChange(mode); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ReportFailure 前端 error 回调:会话进入 error 状态并记录原因
func (s *ConversationService) ReportFailure(conversationID, cause string) error {
	sess, ok := s.activeSession(conversationID)
	if !ok {
		return ErrNotFound
	}
	sess.Fail(errors.New(cause))
	return nil
}

// EndConversation 记录会话结束并归档转录文本,状态机复位后移除
func (s *ConversationService) EndConversation(conversationID, transcript string) error {
	var conversation model.Conversation
	err := s.db.Where("id = ?", conversationID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	now := time.Now()
	conversation.EndedAt = &now
	conversation.Transcript = transcript

	if err := s.db.Save(&conversation).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	if sess, ok := s.sessions[conversationID]; ok {
		_ = sess.Disconnect()
		delete(s.sessions, conversationID)
	}
	s.mu.Unlock()

	return nil
}

// LinkBooking 会话促成预约后回填关联
func (s *ConversationService) LinkBooking(conversationID, bookingID string) error {
	result := s.db.Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]any{
			"booking_made": true,
			"booking_id":   bookingID,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByBusiness 按开始时间降序列出商家的会话记录
func (s *ConversationService) ListByBusiness(businessID string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := s.db.Where("business_id = ?", businessID).Order("started_at DESC").Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return conversations, nil
}
