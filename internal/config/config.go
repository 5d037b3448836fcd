package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jihun2da/product-matching-system/internal/match/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string
	MatchConfig  string // optional TOML file with synonym/alias/weight tables
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/product-matching.log"),
		MatchConfig:  getenv("MATCH_CONFIG", ""),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// LoadMatchConfig layers the TOML tables over the built-in defaults.
// An empty path keeps the defaults; a broken file is an error — the
// server must not start with half a config. Out-of-range weights or
// cutoffs are accepted as-is and simply produce non-normalized
// confidence values.
func LoadMatchConfig(path string) (model.MatchConfig, error) {
	cfg := model.DefaultMatchConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return model.MatchConfig{}, fmt.Errorf("match config %s: %w", path, err)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
