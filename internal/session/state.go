package session

import (
	"fmt"
	"sync"
)

// State 语音会话状态
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateListening
	StateSpeaking
	StateError
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateListening:
		return "listening"
	case StateSpeaking:
		return "speaking"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Mode 会话模式,由外部 Agent 的 mode-change 回调驱动
type Mode string

const (
	ModeListening Mode = "listening"
	ModeSpeaking  Mode = "speaking"
)

// Session 语音会话状态机。
// 外部 Agent 的 connect/message/mode-change/error 回调映射为显式状态迁移,
// 非法迁移直接拒绝,避免散落的布尔标志。
type Session struct {
	mu      sync.Mutex
	state   State
	lastErr error
}

// New 创建处于 idle 状态的会话
func New() *Session {
	return &Session{state: StateIdle}
}

// State 返回当前状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError 返回进入 error 状态的原因
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Connect 发起连接: idle -> connecting
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return s.invalid("connect")
	}
	s.state = StateConnecting
	return nil
}

// Connected 连接建立: connecting -> connected
func (s *Session) Connected() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return s.invalid("connected")
	}
	s.state = StateConnected
	return nil
}

// ModeChange 会话模式切换: connected/listening/speaking 之间互转
func (s *Session) ModeChange(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateConnected, StateListening, StateSpeaking:
	default:
		return s.invalid(fmt.Sprintf("mode-change(%s)", mode))
	}

	switch mode {
	case ModeListening:
		s.state = StateListening
	case ModeSpeaking:
		s.state = StateSpeaking
	default:
		return fmt.Errorf("session: unknown mode %q", mode)
	}
	return nil
}

// Fail 任意状态进入 error,记录原因
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.lastErr = err
}

// Disconnect 会话结束,回到 idle。error 状态下同样允许,作为复位。
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return s.invalid("disconnect")
	}
	s.state = StateIdle
	s.lastErr = nil
	return nil
}

// invalid 构造非法迁移错误,调用方需持有锁
func (s *Session) invalid(event string) error {
	return fmt.Errorf("session: invalid transition %q from state %s", event, s.state)
}
