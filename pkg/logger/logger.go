package logger

import (
	"fmt"
	"os"

	"github.com/omertagame/omerta/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 确保 BaseLogger 实现了 Logger 接口
var _ Logger = (*BaseLogger)(nil)

// BaseLogger 基于 zap 的日志记录器实现
type BaseLogger struct {
	sugar *zap.SugaredLogger
}

// New 创建新的 BaseLogger
func New(cfg *Config) (*BaseLogger, error) {
	// 合并默认配置，确保只传部分配置也能正常工作
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to merge logger config: %w", err)
	}

	level, err := zapcore.ParseLevel(newCfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", newCfg.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if newCfg.Format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var syncers []zapcore.WriteSyncer
	if newCfg.Stdout {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if newCfg.File.Path != "" {
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   newCfg.File.Path,
			MaxSize:    newCfg.File.MaxSize,
			MaxBackups: newCfg.File.MaxBackups,
			MaxAge:     newCfg.File.MaxAge,
			Compress:   newCfg.File.Compress,
		}))
	}
	if len(syncers) == 0 {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &BaseLogger{sugar: zl.Sugar()}, nil
}

// Debug 记录 debug 级别日志
func (l *BaseLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info 记录 info 级别日志
func (l *BaseLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn 记录 warn 级别日志
func (l *BaseLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error 记录 error 级别日志
func (l *BaseLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Named 派生带名称的子日志器
func (l *BaseLogger) Named(name string) Logger {
	return &BaseLogger{sugar: l.sugar.Named(name)}
}

// WithFields 派生带固定字段的子日志器
func (l *BaseLogger) WithFields(keysAndValues ...interface{}) Logger {
	return &BaseLogger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync 刷新缓冲日志
func (l *BaseLogger) Sync() error {
	return l.sugar.Sync()
}
