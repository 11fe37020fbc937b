package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/cache"
	"github.com/treebornwood/voicedeskk/internal/config"
	"github.com/treebornwood/voicedeskk/internal/elevenlabs"
	"github.com/treebornwood/voicedeskk/internal/middleware"
	"github.com/treebornwood/voicedeskk/internal/model"
	"github.com/treebornwood/voicedeskk/internal/service"
	"github.com/treebornwood/voicedeskk/web"
)

// HTTPGinServer 基于 Gin 的 HTTP 服务器
type HTTPGinServer struct {
	config *config.Config
	engine *gin.Engine
	server *http.Server

	authHandler     *AuthHandler
	businessHandler *BusinessHandler
	contentHandler  *ContentHandler
	bookingHandler  *BookingHandler
	publicHandler   *PublicHandler
	syncHandler     *SyncHandler
}

// NewHTTPGinServer 创建基于 Gin 的 HTTP 服务器
func NewHTTPGinServer(cfg *config.Config, db *gorm.DB) *HTTPGinServer {
	// 设置 Gin 模式
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 外部语音 Agent 客户端
	client := elevenlabs.NewClient(cfg.ElevenLabs.BaseURL,
		time.Duration(cfg.ElevenLabs.TimeoutSeconds)*time.Second)

	// 公开页查询缓存(可选)
	var publicCache *cache.PublicCache
	if cfg.Cache.Enabled {
		var err error
		publicCache, err = cache.NewPublicCache(cfg.Cache.Addr, cfg.Cache.Password,
			cfg.Cache.DB, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			logx.Warn("Public cache disabled, redis unavailable: %v", err)
			publicCache = nil
		}
	}

	businessService := service.NewBusinessService(db)
	contentService := service.NewContentService(db)
	bookingService := service.NewBookingService(db)
	syncService := service.NewSyncService(db, client)
	conversationService := service.NewConversationService(db)

	s := &HTTPGinServer{
		config:          cfg,
		engine:          engine,
		authHandler:     NewAuthHandler(db),
		businessHandler: NewBusinessHandler(businessService, syncService, contentService, bookingService, publicCache, cfg.ElevenLabs.APIKey),
		contentHandler:  NewContentHandler(businessService, contentService),
		bookingHandler:  NewBookingHandler(businessService, bookingService, conversationService),
		publicHandler:   NewPublicHandler(businessService, bookingService, conversationService, publicCache),
		syncHandler:     NewSyncHandler(syncService),
	}

	// 注册中间件
	s.registerMiddlewares()

	// 注册路由
	s.registerRoutes()

	return s
}

// registerMiddlewares 注册中间件
func (s *HTTPGinServer) registerMiddlewares() {
	// 恢复中间件 - 从 panic 恢复
	s.engine.Use(gin.Recovery())

	// 自定义日志中间件
	s.engine.Use(s.loggingMiddleware())

	// CORS 中间件
	s.engine.Use(s.corsMiddleware())
}

// loggingMiddleware 自定义日志中间件
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP request, method %s, path %s, status %d, duration %s, remote_addr %s",
			method, path, status, duration, c.ClientIP())
	}
}

// corsMiddleware CORS 中间件。公开页面和同步入口允许任意来源调用。
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// registerRoutes 注册路由
func (s *HTTPGinServer) registerRoutes() {
	// API v1 路由组
	v1 := s.engine.Group("/api/v1")
	{
		// 健康检查与版本
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", GetVersionInfo)

		// 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.authHandler.Register)
			auth.POST("/login", s.authHandler.Login)
			auth.POST("/logout", s.authHandler.Logout)
			auth.GET("/userinfo", middleware.JWTAuth(), s.authHandler.GetUserInfo)
			auth.POST("/change-password", middleware.JWTAuth(), s.authHandler.ChangePassword)
		}

		// 商家管理(需要认证)
		businesses := v1.Group("/businesses", middleware.JWTAuth())
		{
			businesses.GET("", s.businessHandler.ListMine)
			businesses.POST("", s.businessHandler.Create)
			businesses.GET("/:id", s.businessHandler.Get)
			businesses.PUT("/:id", s.businessHandler.Update)
			businesses.POST("/:id/golive", s.businessHandler.GoLive)
			businesses.POST("/:id/offline", s.businessHandler.TakeOffline)
			businesses.POST("/:id/sync", s.businessHandler.Sync)
			businesses.GET("/:id/stats", s.businessHandler.Stats)

			businesses.GET("/:id/content", s.contentHandler.List)
			businesses.POST("/:id/content", s.contentHandler.Add)
			businesses.DELETE("/:id/content/:itemId", s.contentHandler.Delete)

			businesses.GET("/:id/bookings", s.bookingHandler.List)
			businesses.GET("/:id/conversations", s.bookingHandler.ListConversations)
		}

		// 公开页面(无需认证)
		public := v1.Group("/public")
		{
			public.GET("/businesses", s.publicHandler.ListLive)
			public.GET("/businesses/:slug", s.publicHandler.GetBySlug)
			public.POST("/businesses/:slug/bookings", s.publicHandler.CreateBooking)
			public.POST("/businesses/:slug/conversations", s.publicHandler.StartConversation)
			public.POST("/conversations/:id/events", s.publicHandler.ConversationEvent)
			public.POST("/conversations/:id/end", s.publicHandler.EndConversation)
		}

		// 知识同步入口,保持既有调用方的请求和响应格式
		v1.POST("/sync-agent", s.syncHandler.SyncAgent)
	}

	// 前端静态资源
	s.registerStatic()
}

// registerStatic 挂载内嵌的前端构建产物
func (s *HTTPGinServer) registerStatic() {
	fs, err := web.GetFileSystem()
	if err != nil {
		logx.Warn("Frontend assets unavailable: %v", err)
		return
	}

	fileServer := http.FileServer(fs)
	s.engine.NoRoute(func(c *gin.Context) {
		// API 未命中的路由不回退到前端页面
		if len(c.Request.URL.Path) >= 5 && c.Request.URL.Path[:5] == "/api/" {
			c.JSON(http.StatusNotFound, model.Response{Code: 404, Message: "not found"})
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}

// Start 启动 HTTP 服务器
func (s *HTTPGinServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.HTTP.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop 停止 HTTP 服务器
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response 统一响应结构
type Response = model.Response

// success 返回成功响应
func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// fail 返回错误响应
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// failFromError 按服务层错误分类映射 HTTP 状态码
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAgentNotConfigured):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// ==================== 健康检查 ====================

func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	success(c, gin.H{
		"status": "healthy",
	})
}
