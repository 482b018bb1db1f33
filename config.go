package pathnode

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/pathnode/resource"
)

// Config is the file form of the node-list options, for pathfinders that
// keep their tuning in YAML:
//
//	chunk_size: 4096
//	queue_reserve: 2048
//	index_capacity: 1024
//	max_chunks: 512
//	log_level: debug
//	trusted_caller: false
//	resources:
//	  memory_limit_bytes: 268435456
//	  io_limit_bytes_per_sec: 0
type Config struct {
	ChunkSize     int             `yaml:"chunk_size"`
	QueueReserve  int             `yaml:"queue_reserve"`
	IndexCapacity int             `yaml:"index_capacity"`
	MaxChunks     int             `yaml:"max_chunks"`
	LogLevel      string          `yaml:"log_level"`
	TrustedCaller bool            `yaml:"trusted_caller"`
	Resources     resource.Config `yaml:"resources"`
}

// DefaultConfig returns the configuration matching New without options.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     DefaultChunkSize,
		QueueReserve:  DefaultQueueReserve,
		IndexCapacity: DefaultIndexCapacity,
	}
}

// LoadConfig decodes a YAML configuration on top of DefaultConfig.
// Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return LoadConfig(file)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ChunkSize < 0 || c.QueueReserve < 0 || c.IndexCapacity < 0 || c.MaxChunks < 0 {
		return fmt.Errorf("invalid config: sizes must not be negative")
	}
	if c.Resources.MemoryLimitBytes < 0 || c.Resources.IOLimitBytesPerSec < 0 {
		return fmt.Errorf("invalid config: resource limits must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration into NodeList options. rc is the
// controller to share between searches; pass nil to let the options build
// one from Resources when a limit is set.
func (c Config) Options(rc *resource.Controller) []Option {
	opts := []Option{
		WithChunkSize(c.ChunkSize),
		WithQueueReserve(c.QueueReserve),
		WithIndexCapacity(c.IndexCapacity),
		WithMaxChunks(c.MaxChunks),
	}
	if c.TrustedCaller {
		opts = append(opts, WithTrustedCaller())
	}
	if level, err := parseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		opts = append(opts, WithLogLevel(level))
	}
	if rc == nil && (c.Resources.MemoryLimitBytes > 0 || c.Resources.IOLimitBytesPerSec > 0) {
		rc = resource.NewController(c.Resources)
	}
	if rc != nil {
		opts = append(opts, WithResourceController(rc))
	}
	return opts
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid config: log level %q", s)
	}
	return level, nil
}
