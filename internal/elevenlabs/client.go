package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// DefaultBaseURL 官方 API 地址
const DefaultBaseURL = "https://api.elevenlabs.io"

// Client ElevenLabs Conversational AI 客户端,只负责 Agent 配置更新,
// 实时语音会话由前端 SDK 直连,不经过本服务
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建 ElevenLabs 客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// UpstreamError 上游拒绝或超时,携带上游原始响应便于排查
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error 实现 error 接口
func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("elevenlabs upstream unavailable: %s", e.Body)
	}
	return fmt.Sprintf("elevenlabs api error: status %d - %s", e.StatusCode, e.Body)
}

// updateAgentRequest Agent 配置更新请求体,整体替换系统提示词
type updateAgentRequest struct {
	ConversationConfig struct {
		Agent struct {
			Prompt struct {
				Prompt string `json:"prompt"`
			} `json:"prompt"`
		} `json:"agent"`
	} `json:"conversation_config"`
}

// UpdateAgentPrompt 将编译好的知识文本推送为指定 Agent 的系统提示词。
// 单次请求,不重试;非 2xx 状态返回 *UpstreamError,正文原样保留。
func (c *Client) UpdateAgentPrompt(ctx context.Context, agentID, apiKey, prompt string) error {
	var reqBody updateAgentRequest
	reqBody.ConversationConfig.Agent.Prompt.Prompt = prompt

	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/convai/agents/%s", c.baseURL, agentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	logx.Debug("Updating ElevenLabs agent, agent_id %s, prompt_length %d", agentID, len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络错误和超时统一视为上游不可用
		return &UpstreamError{Body: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	logx.Info("ElevenLabs agent updated, agent_id %s, status %d", agentID, resp.StatusCode)
	return nil
}
