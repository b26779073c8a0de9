// Package projectconfig provides the ProjectConfig struct and loader for
// .ahara.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".ahara.yaml"

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
const (
	DefaultPatientAge    = 30
	DefaultPatientGender = "male"

	DefaultScorerTimeout = 5

	DefaultCacheDir       = ".ahara-cache"
	DefaultPairCacheSize  = 256
	DefaultDoshaCacheSize = 128

	DefaultWorkers = 4

	DefaultServerAddr = "127.0.0.1:7400"
)

// Environment variables that override file values.
const (
	EnvModelEndpoint = "AHARA_MODEL_ENDPOINT"
	EnvModelAPIKey   = "AHARA_MODEL_API_KEY"
	EnvScorerTimeout = "AHARA_SCORER_TIMEOUT"
	EnvCacheDir      = "AHARA_CACHE_DIR"
)

// PatientConfig holds demographics used when an input omits them.
type PatientConfig struct {
	Age    int    `yaml:"age,omitempty"`
	Gender string `yaml:"gender,omitempty"`
}

// ScorersConfig points the predictive scorers at a model server.
type ScorersConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	Timeout  int    `yaml:"timeout,omitempty"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Enabled        *bool  `yaml:"enabled,omitempty"`
	Dir            string `yaml:"dir,omitempty"`
	PairCacheSize  int    `yaml:"pair_cache_size,omitempty"`
	DoshaCacheSize int    `yaml:"dosha_cache_size,omitempty"`
}

// ScoringConfig holds chart scoring settings.
type ScoringConfig struct {
	Workers  int      `yaml:"workers,omitempty"`
	MinScore *float64 `yaml:"min_score,omitempty"`
}

// ServerConfig holds JSON-RPC server settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .ahara.yaml.
type ProjectConfig struct {
	Patient PatientConfig `yaml:"patient,omitempty"`
	Scorers ScorersConfig `yaml:"scorers,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
	Scoring ScoringConfig `yaml:"scoring,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Patient: PatientConfig{
			Age:    DefaultPatientAge,
			Gender: DefaultPatientGender,
		},
		Scorers: ScorersConfig{
			Enabled: boolPtr(false),
			Timeout: DefaultScorerTimeout,
		},
		Cache: CacheConfig{
			Enabled:        boolPtr(false),
			Dir:            DefaultCacheDir,
			PairCacheSize:  DefaultPairCacheSize,
			DoshaCacheSize: DefaultDoshaCacheSize,
		},
		Scoring: ScoringConfig{
			Workers: DefaultWorkers,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// ScorersEnabled reports whether predictive scorers should call the model
// server. An endpoint is required either way.
func (c *ProjectConfig) ScorersEnabled() bool {
	return c.Scorers.Enabled != nil && *c.Scorers.Enabled && c.Scorers.Endpoint != ""
}

// ScorerTimeout returns the per-call scorer deadline.
func (c *ProjectConfig) ScorerTimeout() time.Duration {
	return time.Duration(c.Scorers.Timeout) * time.Second
}

// CacheEnabled reports whether the on-disk result cache is on.
func (c *ProjectConfig) CacheEnabled() bool {
	return c.Cache.Enabled != nil && *c.Cache.Enabled
}

// Load finds .ahara.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. Environment
// overrides are applied last, after a .env file in startDir if present.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	switch {
	case err == nil:
		var fileCfg ProjectConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		mergeConfig(cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := LoadEnv(filepath.Join(startDir, ".env")); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *ProjectConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvModelEndpoint)); v != "" {
		cfg.Scorers.Endpoint = v
		cfg.Scorers.Enabled = boolPtr(true)
	}
	if v := strings.TrimSpace(os.Getenv(EnvModelAPIKey)); v != "" {
		cfg.Scorers.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScorerTimeout)); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%s must be a positive number of seconds, got %q", EnvScorerTimeout, v)
		}
		cfg.Scorers.Timeout = secs
	}
	if v := strings.TrimSpace(os.Getenv(EnvCacheDir)); v != "" {
		cfg.Cache.Dir = v
	}
	return nil
}

// findConfigFile walks up from dir looking for .ahara.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range 10 {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Patient
	if src.Patient.Age != 0 {
		dst.Patient.Age = src.Patient.Age
	}
	if src.Patient.Gender != "" {
		dst.Patient.Gender = src.Patient.Gender
	}

	// Scorers
	if src.Scorers.Enabled != nil {
		dst.Scorers.Enabled = src.Scorers.Enabled
	}
	if src.Scorers.Endpoint != "" {
		dst.Scorers.Endpoint = src.Scorers.Endpoint
	}
	if src.Scorers.APIKey != "" {
		dst.Scorers.APIKey = src.Scorers.APIKey
	}
	if src.Scorers.Timeout != 0 {
		dst.Scorers.Timeout = src.Scorers.Timeout
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.PairCacheSize != 0 {
		dst.Cache.PairCacheSize = src.Cache.PairCacheSize
	}
	if src.Cache.DoshaCacheSize != 0 {
		dst.Cache.DoshaCacheSize = src.Cache.DoshaCacheSize
	}

	// Scoring
	if src.Scoring.Workers != 0 {
		dst.Scoring.Workers = src.Scoring.Workers
	}
	if src.Scoring.MinScore != nil {
		dst.Scoring.MinScore = src.Scoring.MinScore
	}

	// Server
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
}

func boolPtr(b bool) *bool {
	return &b
}
