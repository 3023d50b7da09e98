package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/config"
	"github.com/chenshien/Customer-report-conversion-tool/internal/logger"
	"github.com/chenshien/Customer-report-conversion-tool/internal/server"
	"github.com/chenshien/Customer-report-conversion-tool/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  客户报表转换工具")
	fmt.Println("==========================================")

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("加载 .env 失败: %v", err)
	}

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	} else if info.Path == "" {
		// 首次运行时生成默认配置文件
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			log.Printf("写入默认配置失败: %v", err)
		}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Server.DevMode)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = zl.Sync() }()
	if info.Path != "" {
		zl.Info("已加载配置文件", zap.String("path", info.Path))
	}

	// 未显式配置端口时，默认端口被占用则顺延
	if !info.PortSpecified && *port == 0 {
		if p, err := util.FindAvailablePort(cfg.Server.Port, 20); err == nil {
			cfg.Server.Port = p
		}
	}

	// 创建服务器
	srv, err := server.NewServer(cfg, zl)
	if err != nil {
		zl.Fatal("服务初始化失败", zap.Error(err))
	}
	fmt.Printf("数据目录: %s\n", srv.DataDir())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			zl.Fatal("服务启动失败", zap.Error(err))
		}
	}()
	fmt.Printf("接口地址: http://localhost:%d/api\n", cfg.Server.Port)

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("关闭服务失败", zap.Error(err))
	}
}
