package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/util"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается Validate при недопустимых значениях
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Config корневая структура конфигурации приложения.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Sim       SimConfig       `yaml:"sim"`
	Camera    CameraConfig    `yaml:"camera"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	ChunkRadius    int     `yaml:"chunk_radius"`    // Чанки x,z в [-r, r]
	Layers         int     `yaml:"layers"`          // Слоёв чанков по Y
	MaxRayDistance float32 `yaml:"max_ray_distance"`
	TargetEpsilon  float32 `yaml:"target_epsilon"`
}

type TerrainConfig struct {
	Mode        string  `yaml:"mode"` // perlin | checker
	Seed        int64   `yaml:"seed"`
	BaseHeight  int     `yaml:"base_height"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float64 `yaml:"frequency"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Persistence float64 `yaml:"persistence"`
}

type SimConfig struct {
	TickRate      int `yaml:"tick_rate"`      // Шагов в секунду
	RebuildBudget int `yaml:"rebuild_budget"` // Чанков за шаг, 0 - все
	MeshWorkers   int `yaml:"mesh_workers"`   // 0 - по числу CPU
}

type CameraConfig struct {
	Position  [3]float32 `yaml:"position"`
	LookAt    [3]float32 `yaml:"look_at"`
	MoveSpeed float32    `yaml:"move_speed"`
	SprintMod float32    `yaml:"sprint_mod"`
	LookSpeed float32    `yaml:"look_speed"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"`
}

type LoggingConfig struct {
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
	Dir          string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	noise := util.DefaultNoiseParams()

	return &Config{
		World: WorldConfig{
			ChunkRadius:    2,
			Layers:         1,
			MaxRayDistance: 1000,
			TargetEpsilon:  1e-3,
		},
		Terrain: TerrainConfig{
			Mode:        "perlin",
			Seed:        12345,
			BaseHeight:  8,
			Octaves:     noise.Octaves,
			Frequency:   noise.Frequency,
			Lacunarity:  noise.Lacunarity,
			Persistence: noise.Persistence,
		},
		Sim: SimConfig{
			TickRate:      60,
			RebuildBudget: 0,
		},
		Camera: CameraConfig{
			Position:  [3]float32{120, 40, 120},
			LookAt:    [3]float32{0, 0, 0},
			MoveSpeed: 1,
			SprintMod: 3,
			LookSpeed: 0.01,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "blockverse",
		},
		Logging: LoggingConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// NoiseParams возвращает параметры шума из секции terrain
func (t *TerrainConfig) NoiseParams() util.NoiseParams {
	return util.NoiseParams{
		Octaves:     t.Octaves,
		Frequency:   t.Frequency,
		Lacunarity:  t.Lacunarity,
		Persistence: t.Persistence,
	}
}

// TickInterval возвращает длительность шага симуляции
func (s *SimConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "BLOCKVERSE_METRICS_PORT", 2112)
}

// GetEndpoint возвращает OTLP endpoint: config -> env -> default
func (t *TelemetryConfig) GetEndpoint() string {
	if t.Endpoint != "" {
		return t.Endpoint
	}
	if env := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); env != "" {
		return env
	}
	return "localhost:4318"
}

// LoggerOptions переводит секцию logging в настройки логгера
func (l *LoggingConfig) LoggerOptions() (logging.Options, error) {
	console, err := logging.ParseLevel(l.ConsoleLevel)
	if err != nil {
		return logging.Options{}, fmt.Errorf("logging.console_level: %w", err)
	}
	file, err := logging.ParseLevel(l.FileLevel)
	if err != nil {
		return logging.Options{}, fmt.Errorf("logging.file_level: %w", err)
	}
	return logging.Options{ConsoleLevel: console, FileLevel: file, Dir: l.Dir}, nil
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

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	switch {
	case c.World.ChunkRadius < 0:
		return fmt.Errorf("%w: world.chunk_radius=%d", ErrInvalidConfig, c.World.ChunkRadius)
	case c.World.Layers < 1:
		return fmt.Errorf("%w: world.layers=%d, ожидается >= 1", ErrInvalidConfig, c.World.Layers)
	case c.World.MaxRayDistance <= 0:
		return fmt.Errorf("%w: world.max_ray_distance=%v", ErrInvalidConfig, c.World.MaxRayDistance)
	case c.World.TargetEpsilon <= 0 || c.World.TargetEpsilon >= 0.5:
		return fmt.Errorf("%w: world.target_epsilon=%v, ожидается (0, 0.5)", ErrInvalidConfig, c.World.TargetEpsilon)
	case c.Terrain.Mode != "perlin" && c.Terrain.Mode != "checker":
		return fmt.Errorf("%w: terrain.mode=%q, ожидается perlin или checker", ErrInvalidConfig, c.Terrain.Mode)
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("%w: sim.tick_rate=%d", ErrInvalidConfig, c.Sim.TickRate)
	case c.Sim.RebuildBudget < 0:
		return fmt.Errorf("%w: sim.rebuild_budget=%d", ErrInvalidConfig, c.Sim.RebuildBudget)
	case c.Sim.MeshWorkers < 0:
		return fmt.Errorf("%w: sim.mesh_workers=%d", ErrInvalidConfig, c.Sim.MeshWorkers)
	}

	if err := c.Terrain.NoiseParams().Validate(); err != nil {
		return fmt.Errorf("%w: terrain: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Logging.LoggerOptions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV BLOCKVERSE_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("BLOCKVERSE_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем значения по умолчанию
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
