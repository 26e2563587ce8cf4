package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/config"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/server"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (覆盖 config.toml)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  検証データ管理 - 梱包検証ツール")
	fmt.Println("==========================================")

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	// 确保数据目录存在
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Error("创建数据目录失败", err)
	} else {
		logger.Infof("数据目录: %s", dataDir)
	}

	// 创建服务器
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		logger.Infof("服务启动中，监听端口 %d ...", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.Fatal("服务启动失败", err)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		logger.Infof("正在打开浏览器: %s", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			logger.Warnf("无法自动打开浏览器，请手动访问: %s", url)
		}
	} else {
		logger.Infof("开发模式: 请访问 %s", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		logger.Error("关闭存储失败", err)
	}
}
