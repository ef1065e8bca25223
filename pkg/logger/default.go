package logger

import "sync"

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// Default 返回全局默认日志器（console/info，惰性初始化）
func Default() Logger {
	defaultOnce.Do(func() {
		l, err := New(DefaultConfig())
		if err != nil {
			// 默认配置不应构造失败，兜底为 Noop
			defaultLogger = Noop()
			return
		}
		defaultLogger = l
	})
	return defaultLogger
}

// noopLogger 空实现，测试或未初始化场景使用
type noopLogger struct{}

// Noop 返回不输出任何内容的日志器
func Noop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...interface{})       {}
func (noopLogger) Info(string, ...interface{})        {}
func (noopLogger) Warn(string, ...interface{})        {}
func (noopLogger) Error(string, ...interface{})       {}
func (n noopLogger) Named(string) Logger              { return n }
func (n noopLogger) WithFields(...interface{}) Logger { return n }
func (noopLogger) Sync() error                        { return nil }
