package selaltloc

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml"
)

// ConfigEnv names the environment variable holding the path of an
// optional TOML configuration file.
const ConfigEnv = "PDBTOOLS_CONFIG"

// Config holds settings which do not belong on the command line.
//
//	log_level = "debug"   # debug, info, warn or error
//	chunk_lines = 5000    # output lines per write
//	no_mmap = false       # read files normally instead of mapping them
type Config struct {
	LogLevel   string `toml:"log_level"`
	ChunkLines int    `toml:"chunk_lines"`
	NoMmap     bool   `toml:"no_mmap"`
}

// DfltConfig is what you get without a file.
var DfltConfig = Config{LogLevel: "warn", ChunkLines: DfltChunkLines}

// LoadConfig reads a TOML file. An empty path gives the defaults.
// Settings missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DfltConfig
	if path == "" {
		return &cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DfltConfig.LogLevel
	}
	if cfg.ChunkLines == 0 {
		cfg.ChunkLines = DfltChunkLines
	}
	if cfg.ChunkLines < 0 {
		return nil, fmt.Errorf("%s: chunk_lines must be positive, got %d", path, cfg.ChunkLines)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Level converts the log level name.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.New("unknown log_level " + c.LogLevel)
	}
	return lvl, nil
}
