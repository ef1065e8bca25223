package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var configPath string

// Loader 配置加载器
type Loader struct {
	viper *viper.Viper
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{viper: viper.New()}
}

// LoadFile 加载 YAML 配置文件
// 环境变量以 OMERTA_ 前缀覆盖，点号换成下划线（如 OMERTA_WEB_PORT）
func (l *Loader) LoadFile(path string) error {
	l.viper.SetConfigFile(path)
	l.viper.SetConfigType("yaml")

	l.viper.SetEnvPrefix("OMERTA")
	l.viper.AutomaticEnv()
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := l.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Unmarshal 解析整个配置到结构体
func (l *Loader) Unmarshal(target any) error {
	if err := l.viper.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// Load 统一加载入口：命令行 --config 指定路径，默认 config.yaml
// 优先级：环境变量 > 配置文件 > 默认值
func Load(target any) error {
	if pflag.Lookup("config") == nil {
		pflag.StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	}
	if !pflag.Parsed() {
		pflag.Parse()
	}

	loader := NewLoader()
	if err := loader.LoadFile(configPath); err != nil {
		return err
	}
	return loader.Unmarshal(target)
}
