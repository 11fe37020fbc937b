package cmd

import (
	"os"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/treebornwood/voicedeskk/internal/config"
)

// 构建期通过 ldflags 注入
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var configFile string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "voicedesk",
	Short: "VoiceDesk 多租户语音客服平台",
	Long: `VoiceDesk 让商家上传业务知识、对外提供语音客服页面并接收预约。
知识文本编译后推送到外部语音 Agent,实时会话由前端 SDK 直连。`,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("Command failed: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
}

// loadConfig 加载配置,多个子命令共用
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configFile)
}
