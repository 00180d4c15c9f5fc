package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"relapse_predict/config"
)

// Logger 全局日志记录器，Init之前使用slog默认实现
var Logger = slog.Default()

// Init 使用配置初始化日志系统
func Init(cfg *config.Config) error {
	writer, err := openWriter(cfg.Log.Output, cfg.Log.FilePath)
	if err != nil {
		return err
	}

	Logger = New(writer, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(Logger)

	return nil
}

// New 创建指定级别和格式的logger
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel 将字符串转换为slog级别，无法识别时使用info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriter(output, filePath string) (io.Writer, error) {
	output = strings.ToLower(output)
	if output != "file" && output != "both" {
		return os.Stdout, nil
	}
	if filePath == "" {
		return nil, fmt.Errorf("log output %q requires log.file_path", output)
	}

	// 创建日志目录
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	if output == "both" {
		return io.MultiWriter(os.Stdout, file), nil
	}
	return file, nil
}

// Debug 记录调试级别的日志
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info 记录信息级别的日志
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn 记录警告级别的日志
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error 记录错误级别的日志
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
