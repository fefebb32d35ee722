package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database Database `yaml:"database" json:"database"`
	Server   Server   `yaml:"server" json:"server"`
}

// Server HTTP 服务配置
type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

func (s Server) AddrOrDefault() string {
	a := strings.TrimSpace(s.Addr)
	if a == "" {
		return ":8080"
	}
	return a
}

// LoadFromFile 读取指定路径的 YAML 配置文件，并用环境变量覆盖
func LoadFromFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return &cfg, nil
}

// FromEnv 不读取配置文件，仅使用环境变量与默认值
func FromEnv() *Config {
	var cfg Config
	cfg.applyEnv()
	return &cfg
}

// DefaultPath 返回配置文件路径：优先 CONFIG_PATH，否则 internal/config/config.yaml
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, "internal", "config", "config.yaml"), nil
}

// LoadDefault 加载默认配置文件；文件不存在时退回到纯环境变量配置
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FromEnv(), nil
	}
	return cfg, err
}

// 环境变量优先于配置文件
func (c *Config) applyEnv() {
	c.Database.applyEnv()
	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		c.Server.Addr = v
	}
}
