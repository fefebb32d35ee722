package config

import (
	"os"
	"strings"
)

const (
	EnvDatabaseURL = "DATABASE_URL"
	// EnvSQLAlchemyEcho 日志开关；同时设置时优先于别名 EnvDatabaseEcho
	EnvSQLAlchemyEcho = "SQLALCHEMY_ECHO"
	EnvDatabaseEcho   = "DATABASE_ECHO"

	// DefaultDatabaseURL 本地 SQLite 文件数据库
	DefaultDatabaseURL = "sqlite:///versozap.db"
	DefaultEcho        = true
)

// Database 数据库连接配置
// Echo 为 nil 表示未配置，使用 DefaultEcho
type Database struct {
	URL  string `yaml:"url" json:"url"`
	Echo *bool  `yaml:"echo" json:"echo"`
}

func (d Database) URLOrDefault() string {
	u := strings.TrimSpace(d.URL)
	if u == "" {
		return DefaultDatabaseURL
	}
	return u
}

func (d Database) EchoOrDefault() bool {
	if d.Echo == nil {
		return DefaultEcho
	}
	return *d.Echo
}

// ParseEcho 解析日志开关：变量存在时仅 "true"（不区分大小写）开启；变量不存在时使用默认值
func ParseEcho(value string, present bool) bool {
	if !present {
		return DefaultEcho
	}
	return strings.EqualFold(value, "true")
}

// DatabaseFromEnv 仅根据环境变量构造数据库配置
func DatabaseFromEnv() Database {
	var d Database
	d.applyEnv()
	return d
}

func (d *Database) applyEnv() {
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok && strings.TrimSpace(v) != "" {
		d.URL = strings.TrimSpace(v)
	}
	for _, key := range []string{EnvSQLAlchemyEcho, EnvDatabaseEcho} {
		if v, ok := os.LookupEnv(key); ok {
			echo := ParseEcho(v, true)
			d.Echo = &echo
			return
		}
	}
}
