package server

import (
	"github.com/gin-gonic/gin"
)

// VersionInfo 服务版本信息,构建期通过 ldflags 注入
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

var buildInfo = VersionInfo{
	Version:   "dev",
	GitCommit: "unknown",
	BuildTime: "unknown",
}

// InitVersionHandler 注入构建版本信息
func InitVersionHandler(version, gitCommit, buildTime string) {
	buildInfo = VersionInfo{
		Version:   version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
	}
}

// GetVersionInfo 返回服务版本信息,套用统一响应结构
func GetVersionInfo(c *gin.Context) {
	success(c, buildInfo)
}
