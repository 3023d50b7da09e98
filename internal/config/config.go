package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// 环境变量
const (
	EnvPort        = "REPORTCONV_PORT"
	EnvDataDir     = "REPORTCONV_DATA_DIR"
	EnvLogLevel    = "REPORTCONV_LOG_LEVEL"
	EnvTotalPolicy = "REPORTCONV_TOTAL_POLICY"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Engine EngineConfig `toml:"engine"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir     string `toml:"data_dir"`
	KeepUploads bool   `toml:"keep_uploads"`
}

// EngineConfig 转换引擎配置
type EngineConfig struct {
	HeaderRows       int      `toml:"header_rows"`
	HeaderMaxCols    int      `toml:"header_max_cols"`
	NoiseRows        int      `toml:"noise_rows"`
	NoiseMaxCols     int      `toml:"noise_max_cols"`
	NoiseMarkers     []string `toml:"noise_markers"`
	EvaluateFormulas bool     `toml:"evaluate_formulas"`
	TotalPolicy      string   `toml:"total_policy"` // computed / reported
}

// ExportConfig 导出配置
type ExportConfig struct {
	RatioDecimals int32  `toml:"ratio_decimals"`
	ChecksSheet   bool   `toml:"checks_sheet"`
	TemplatePath  string `toml:"template_path"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	// Path 实际读取的配置文件，未找到时为空
	Path string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:     "data",
			KeepUploads: true,
		},
		Engine: EngineConfig{
			HeaderRows:    7,
			HeaderMaxCols: 100,
			NoiseRows:     20,
			NoiseMaxCols:  100,
			NoiseMarkers:  []string{"tb", "trial balance", "global"},
			TotalPolicy:   "computed",
		},
		Export: ExportConfig{
			RatioDecimals: 2,
			ChecksSheet:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	dir, err := GetExeDir()
	if err != nil || dir == "" {
		// 无法获取可执行文件目录，使用当前目录
		return "."
	}
	return dir
}

// LoadDotEnv 加载可执行文件目录与当前目录下的 .env（不存在时忽略，已有的环境变量不覆盖）
func LoadDotEnv() error {
	for _, p := range []string{filepath.Join(exeDirOrDot(), ".env"), ".env"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfigWithInfo 从可执行文件目录下的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(filepath.Join(exeDirOrDot(), "config.toml"))
}

// LoadConfigFrom 从指定路径加载配置；文件不存在时使用默认配置，最后应用环境变量覆盖
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// 配置文件不存在，使用默认配置
	case err != nil:
		return nil, info, err
	default:
		info.Path = configPath
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	if applyEnv(config) {
		info.PortSpecified = true
	}
	return config, info, nil
}

// applyEnv 环境变量覆盖，返回端口是否被指定
func applyEnv(config *AppConfig) bool {
	portSet := false
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			portSet = true
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		config.Data.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTotalPolicy)); v != "" {
		config.Engine.TotalPolicy = v
	}
	return portSet
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	return SaveConfigTo(config, filepath.Join(exeDirOrDot(), "config.toml"))
}

// SaveConfigTo 保存配置到指定路径
func SaveConfigTo(config *AppConfig, configPath string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// DataDir 数据目录的绝对位置：相对路径以可执行文件目录为基准
func DataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	return filepath.Join(exeDirOrDot(), config.Data.DataDir)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := DataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 创建子目录
	subdirs := []string{"uploads", "exports", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
