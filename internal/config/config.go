package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// StorageConfig 对象存储配置（订单照片）
// Endpoint 为空时照片相关接口不可用，其余功能不受影响
type StorageConfig struct {
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	BucketName      string `toml:"bucket_name"`
	UseSSL          bool   `toml:"use_ssl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json / console
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20482,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Storage: StorageConfig{
			BucketName: "order-images",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下；不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("KONPO_STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("KONPO_STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKeyID = v
	}
	if v := os.Getenv("KONPO_STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretAccessKey = v
	}
	if v := os.Getenv("KONPO_STORAGE_BUCKET"); v != "" {
		cfg.Storage.BucketName = v
	}

	return cfg, nil
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在
// 相对路径基于可执行文件所在目录，绝对路径原样使用
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 创建子目录
	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
