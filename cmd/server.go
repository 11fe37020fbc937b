package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/treebornwood/voicedeskk/internal/database"
	"github.com/treebornwood/voicedeskk/internal/middleware"
	"github.com/treebornwood/voicedeskk/internal/server"
)

// serverCmd 启动 HTTP 服务
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 VoiceDesk HTTP 服务",
	Long:  `启动 HTTP 服务,提供商家管理接口、公开语音页面接口和知识同步入口。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required, set VOICEDESK_AUTH_JWT_SECRET or config file")
		}
		middleware.InitJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)

		if cfg.Database.Path != "" {
			_ = os.Setenv("VOICEDESK_DB_PATH", cfg.Database.Path)
		}
		db := database.GetDB()
		defer func() { _ = database.Close() }()

		server.InitVersionHandler(Version, GitCommit, BuildTime)
		httpServer := server.NewHTTPGinServer(cfg, db)

		// 启动服务
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start()
		}()

		// 等待退出信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("http server exited: %w", err)
		case sig := <-quit:
			logx.Info("Received signal %s, shutting down...", sig)
		}

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop http server: %w", err)
		}

		logx.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
