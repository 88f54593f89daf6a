package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/middleware"
	"github.com/nguynqun376/MindGuardAI/routes"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 初始化数据库
	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}

	// 初始化Redis，连不上时关闭缓存继续跑（单用户本地应用不强依赖）
	rdb, err := config.InitRedis(conf)
	if err != nil {
		config.Logger.Warnw("Redis不可用，情绪曲线缓存已关闭", "error", err)
		rdb = nil
	}

	// 初始化Gemini客户端
	geminiClient, err := services.NewGeminiClient(context.Background(),
		conf.GeminiAPIKey, conf.GeminiFlashModel, conf.GeminiProModel)
	if err != nil {
		log.Fatalf("无法初始化Gemini客户端: %v", err)
	}
	aiService := services.NewGeminiService(geminiClient)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, conf, db, rdb, aiService)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		config.Logger.Infow("启动服务器", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("正在关闭服务器")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	config.Logger.Infow("服务器已关闭")
}
