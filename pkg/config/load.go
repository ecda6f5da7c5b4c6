package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zippyzappypixy/fast-license-checker/pkg/safeio"
)

// Overrides carries CLI flag values that take priority over file and
// environment configuration.
type Overrides struct {
	LicenseHeader       string
	LicenseFile         string
	ParallelJobs        int
	MaxHeaderBytes      int
	SimilarityThreshold int

	// Set flags distinguish "not passed" from zero values.
	ParallelJobsSet        bool
	MaxHeaderBytesSet      bool
	SimilarityThresholdSet bool
}

// Load assembles the effective configuration. Priority, highest first:
// CLI overrides, FLC_ environment variables, the config file, defaults.
//
// With an explicit path the file must exist and parse (YAML or TOML by
// extension). Without one, .flc.yaml is discovered via viper in the current
// directory then $HOME, and absence is not an error.
func Load(explicitPath string, overrides Overrides) (*Config, error) {
	var cfg *Config
	var err error

	if explicitPath != "" {
		cfg, err = loadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = discover()
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// discover uses viper to find an optional .flc.yaml and merge it over the
// defaults.
func discover() (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("license_header", def.LicenseHeader)
	v.SetDefault("ignore_patterns", def.IgnorePatterns)
	v.SetDefault("max_header_bytes", def.MaxHeaderBytes)
	v.SetDefault("max_file_size", def.MaxFileSize)
	v.SetDefault("skip_empty_files", def.SkipEmptyFiles)
	v.SetDefault("parallel_jobs", def.ParallelJobs)
	v.SetDefault("similarity_threshold", def.SimilarityThreshold)

	v.SetConfigName(".flc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("FLC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	mergeDefaultStyles(cfg)
	return cfg, nil
}

// loadFromFile parses an explicit YAML or TOML config file chosen by
// extension, validates it against the config schema, and merges it over the
// defaults.
func loadFromFile(path string) (*Config, error) {
	clean, err := safeio.CleanUserPath(path)
	if err != nil {
		return nil, fmt.Errorf("config file path %s: %w", path, err)
	}
	content, err := os.ReadFile(clean) // #nosec G304 -- path cleaned above
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := Default()
	cfg.CommentStyles = nil

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml, or .toml)", filepath.Ext(path))
	}

	if err := validateSchema(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	mergeDefaultStyles(cfg)
	return cfg, nil
}

// mergeDefaultStyles fills in stock comment styles for extensions the user
// did not configure, so a partial comment_styles block extends rather than
// replaces the defaults.
func mergeDefaultStyles(cfg *Config) {
	if cfg.CommentStyles == nil {
		cfg.CommentStyles = DefaultCommentStyles()
		return
	}
	for ext, style := range DefaultCommentStyles() {
		if _, ok := cfg.CommentStyles[ext]; !ok {
			cfg.CommentStyles[ext] = style
		}
	}
}

// applyEnvOverrides applies FLC_ environment variables relevant for explicit
// config files, which bypass viper's automatic env handling.
func applyEnvOverrides(cfg *Config) {
	if header := os.Getenv("FLC_LICENSE_HEADER"); strings.TrimSpace(header) != "" {
		cfg.LicenseHeader = header
	}
	if v, ok := envInt("FLC_MAX_HEADER_BYTES"); ok {
		cfg.MaxHeaderBytes = v
	}
	if v, ok := envInt("FLC_SIMILARITY_THRESHOLD"); ok {
		cfg.SimilarityThreshold = v
	}
	if v, ok := envInt("FLC_PARALLEL_JOBS"); ok {
		cfg.ParallelJobs = v
	}
}

func envInt(name string) (int, bool) {
	s := os.Getenv(name)
	if s == "" {
		return 0, false
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, false
	}
	return v, true
}

// applyOverrides folds CLI flag values into the configuration.
func applyOverrides(cfg *Config, o Overrides) error {
	if o.LicenseHeader != "" {
		cfg.LicenseHeader = o.LicenseHeader
	}
	if o.LicenseFile != "" {
		clean, err := safeio.CleanUserPath(o.LicenseFile)
		if err != nil {
			return fmt.Errorf("license file path %s: %w", o.LicenseFile, err)
		}
		content, err := os.ReadFile(clean) // #nosec G304 -- path cleaned above
		if err != nil {
			return fmt.Errorf("read license file %s: %w", o.LicenseFile, err)
		}
		cfg.LicenseHeader = string(content)
	}
	if o.ParallelJobsSet {
		cfg.ParallelJobs = o.ParallelJobs
	}
	if o.MaxHeaderBytesSet {
		cfg.MaxHeaderBytes = o.MaxHeaderBytes
	}
	if o.SimilarityThresholdSet {
		cfg.SimilarityThreshold = o.SimilarityThreshold
	}
	return nil
}
