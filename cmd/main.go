package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"

	"versozap/internal/api"
	"versozap/internal/config"
	database "versozap/internal/server/db"
)

func main() {
	// .env 可选，存在时先加载到环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("加载 .env 失败: %v", err)
	}

	// 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库引擎与会话工厂，进程内只创建一次
	engine, err := database.NewEngine(cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := engine.Ping(ctx); err != nil {
		log.Fatalf("数据库不可用: %v", err)
	}
	sessions := database.NewSessionFactory(engine)

	r := api.SetupRouter(engine, sessions)

	// 启动服务
	addr := cfg.Server.AddrOrDefault()
	log.Printf("HTTP 服务器已启动: %s (db=%s)", addr, engine.URL().Redacted())
	if err := r.Run(addr); err != nil {
		log.Fatalf("Gin 启动失败: %v", err)
	}
}
