package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации игры.

type Config struct {
	Game     GameConfig     `yaml:"game"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

type GameConfig struct {
	LevelPath string `yaml:"level_path"` // путь к файлу уровня; пусто — процедурная генерация
	Seed      int64  `yaml:"seed"`       // сид генератора при отсутствии файла уровня
	Width     int    `yaml:"width"`      // размеры генерируемого уровня в тайлах
	Height    int    `yaml:"height"`
}

type EventBusConfig struct {
	BufferSize int  `yaml:"buffer_size"`
	LogEvents  bool `yaml:"log_events"`
}

type StorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	UseGzipCompr bool   `yaml:"use_gzip_compression"`
}

type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// GetMetricsPort возвращает порт Prometheus-метрик с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "QEEN_METRICS_PORT", 2112)
}

// GetBufferSize возвращает размер буфера шины событий
func (e *EventBusConfig) GetBufferSize() int {
	if e.BufferSize > 0 {
		return e.BufferSize
	}
	return 1024
}

// GetDataDir возвращает каталог данных с приоритетом: config -> env -> default
func (s *StorageConfig) GetDataDir() string {
	if s.DataDir != "" {
		return s.DataDir
	}
	if dir := os.Getenv("QEEN_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV QEEN_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("QEEN_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
