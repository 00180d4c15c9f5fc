package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile   = "config.yaml"
	DefaultPort         = 10000
	DefaultModelPath    = "final_relapse_model.json"
	DefaultMaxBodyBytes = 1 << 20
)

type Config struct {
	Server struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		MaxBodyBytes int64  `yaml:"max_body_bytes"` // 请求体最大字节数
		Addr         string `yaml:"-"`              // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Model struct {
		Path string `yaml:"path"` // 模型文件路径，启动时只读取一次
	} `yaml:"model"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`  // 请求超时，单位：秒
		ResponseSec int `yaml:"response_sec"` // 响应超时，单位：秒
		IdleSec     int `yaml:"idle_sec"`     // 空闲超时，单位：秒
		ShutdownSec int `yaml:"shutdown_sec"` // 优雅关闭等待时间，单位：秒
	} `yaml:"timeouts"`
}

// Load 加载配置：.env -> config.yaml（可选）-> 环境变量覆盖 -> 默认值
func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	return LoadFile(getenv("CONFIG_FILE", DefaultConfigFile))
}

// LoadFile 从指定的yaml文件加载配置，文件不存在或解析失败时只使用环境变量和默认值
func LoadFile(path string) *Config {
	var cfg Config

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("Error loading %s: %v, falling back to environment variables", path, err)
			cfg = Config{}
		} else {
			log.Printf("Loading configuration from %s", path)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	// 计算 Server.Addr 字段
	cfg.Server.Addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	return &cfg
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		} else {
			log.Printf("Invalid PORT %q, ignoring", port)
		}
	}
	if path := os.Getenv("MODEL_PATH"); path != "" {
		cfg.Model.Path = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Model.Path == "" {
		cfg.Model.Path = DefaultModelPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Timeouts.RequestSec <= 0 {
		cfg.Timeouts.RequestSec = 15
	}
	if cfg.Timeouts.ResponseSec <= 0 {
		cfg.Timeouts.ResponseSec = 15
	}
	if cfg.Timeouts.IdleSec <= 0 {
		cfg.Timeouts.IdleSec = 60
	}
	if cfg.Timeouts.ShutdownSec <= 0 {
		cfg.Timeouts.ShutdownSec = 5
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
