package db

import (
	"io"
	"log"
	"time"

	"gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

// newLogger echo 开启时输出每条执行的 SQL，关闭时静默
func newLogger(w io.Writer, echo bool) logger.Interface {
	level := logger.Silent
	if echo {
		level = logger.Info
	}
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
