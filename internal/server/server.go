package server

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/api"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/blob"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/config"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "konpo.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		logger.Fatal("初始化数据库失败", err)
	}

	// 初始化对象存储（未配置时照片接口不可用）
	var blobClient *blob.Client
	if cfg.Storage.Endpoint != "" {
		blobClient, err = blob.NewClient(context.Background(), cfg.Storage)
		if err != nil {
			logger.Fatal("初始化对象存储失败", err)
		}
	} else {
		logger.Warnf("未配置对象存储，照片相关接口将不可用")
	}

	apiHandler := api.NewHandler(sqliteStore, blobClient)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// 开发模式：前端由开发服务器单独提供
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层资源
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
