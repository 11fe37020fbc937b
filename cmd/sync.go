package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/treebornwood/voicedeskk/internal/database"
	"github.com/treebornwood/voicedeskk/internal/elevenlabs"
	"github.com/treebornwood/voicedeskk/internal/service"
)

var syncAPIKey string

// syncCmd 手动触发知识同步
var syncCmd = &cobra.Command{
	Use:   "sync <business-id>",
	Short: "同步商家知识到外部语音 Agent",
	Long:  `读取商家全部内容,编译为一份提示词后推送到外部语音 Agent 的配置接口。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		apiKey := syncAPIKey
		if apiKey == "" {
			apiKey = cfg.ElevenLabs.APIKey
		}
		if apiKey == "" {
			return fmt.Errorf("elevenlabs api key is required, use --api-key or config")
		}

		if cfg.Database.Path != "" {
			_ = os.Setenv("VOICEDESK_DB_PATH", cfg.Database.Path)
		}
		db := database.GetDB()
		defer func() { _ = database.Close() }()

		client := elevenlabs.NewClient(cfg.ElevenLabs.BaseURL,
			time.Duration(cfg.ElevenLabs.TimeoutSeconds)*time.Second)
		syncService := service.NewSyncService(db, client)

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.ElevenLabs.TimeoutSeconds)*time.Second)
		defer cancel()

		result, err := syncService.Sync(ctx, args[0], apiKey)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		logx.Info("✅ Sync completed, items %d, length %d", result.ItemsCount, result.ContentLength)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncAPIKey, "api-key", "", "ElevenLabs API Key(默认取配置)")
	rootCmd.AddCommand(syncCmd)
}
