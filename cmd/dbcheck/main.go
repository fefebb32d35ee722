// dbcheck 使用与服务相同的配置连接数据库，并在一个会话内执行一次基础查询
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"

	"versozap/internal/config"
	database "versozap/internal/server/db"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("加载 .env 失败: %v", err)
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}

	engine, err := database.NewEngine(cfg.Database)
	if err != nil {
		log.Fatalf("创建数据库引擎失败: %v", err)
	}
	defer engine.Close()
	log.Printf("数据库: %s, 驱动: %s, echo=%v", engine.URL().Redacted(), engine.Driver(), engine.Echo())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := engine.Ping(ctx); err != nil {
		log.Fatalf("数据库不可用: %v", err)
	}
	log.Println("已连接到数据库")

	// 基础校验: 会话内简单查询，结束后回滚
	s := database.NewSessionFactory(engine).New(ctx)
	defer s.Close()
	tx, err := s.DB()
	if err != nil {
		log.Fatalf("开启会话失败: %v", err)
	}
	var one int
	if err := tx.Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Fatalf("基础查询失败: %v", err)
	}
	log.Printf("基础查询成功，返回值: %d", one)

	log.Println("检查完成")
}
