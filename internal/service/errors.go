package service

import "errors"

// 服务层错误分类,处理器按 errors.Is 映射为 HTTP 状态码
var (
	// ErrNotFound 资源不存在,或公开查询命中未上线的商家
	ErrNotFound = errors.New("record not found")

	// ErrAgentNotConfigured 商家不存在或未配置外部语音 Agent
	ErrAgentNotConfigured = errors.New("business not found or no agent configured")

	// ErrStoreUnavailable 数据库读写失败
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation 请求参数不合法
	ErrValidation = errors.New("invalid request")
)
