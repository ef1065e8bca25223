package logger

// FileConfig 日志文件输出配置（lumberjack 轮转）
type FileConfig struct {
	// Path 日志文件路径
	Path string `mapstructure:"path" json:"path" yaml:"path"`
	// MaxSize 单个文件最大体积（MB）
	MaxSize int `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	// MaxBackups 保留的旧文件数量
	MaxBackups int `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	// MaxAge 旧文件保留天数
	MaxAge int `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	// Compress 是否压缩旧文件
	Compress bool `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// Config 日志配置
type Config struct {
	// Level 日志级别：debug, info, warn, error
	Level string `mapstructure:"level" json:"level" yaml:"level"`

	// Format 输出格式：json 或 console
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	// Stdout 是否输出到标准输出
	Stdout bool `mapstructure:"stdout" json:"stdout" yaml:"stdout"`

	// File 文件输出配置（Path 为空则不写文件）
	File FileConfig `mapstructure:"file" json:"file" yaml:"file"`
}

// DefaultConfig 返回默认配置（info 级别，console 输出到 stdout）
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Stdout: true,
		File: FileConfig{
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
		},
	}
}
