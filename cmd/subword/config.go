package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the subword configuration file (~/.config/subword/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	Strategy   string `yaml:"strategy"`
	Iterations *int64 `yaml:"iterations"`

	// Encoding defaults
	MaxLength *int64 `yaml:"max_length"`
	Padding   *bool  `yaml:"padding"`

	// Paths
	ModelPath string `yaml:"model_path"`
	CorpusDir string `yaml:"corpus_dir"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "subword", "config.yaml")
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyTrainConfig applies config file defaults to train command variables
// when the corresponding CLI flag was not explicitly set.
func applyTrainConfig(c *cli.Command, cfg Config, iterations *int64, corpusDir *string) {
	if cfg.Strategy != "" && !c.IsSet("strategy") {
		strategyName = cfg.Strategy
	}
	if cfg.Iterations != nil && !c.IsSet("iterations") {
		*iterations = *cfg.Iterations
	}
	if cfg.ModelPath != "" && !c.IsSet("out") {
		modelPath = cfg.ModelPath
	}
	if cfg.CorpusDir != "" && *corpusDir == "" {
		*corpusDir = cfg.CorpusDir
	}
}

func applyEncodeConfig(c *cli.Command, cfg Config, maxLength *int64, padding *bool) {
	if cfg.ModelPath != "" && !c.IsSet("model") {
		modelPath = cfg.ModelPath
	}
	if cfg.MaxLength != nil && !c.IsSet("max-length") {
		*maxLength = *cfg.MaxLength
	}
	if cfg.Padding != nil && !c.IsSet("padding") {
		*padding = *cfg.Padding
	}
}

func applyModelConfig(c *cli.Command, cfg Config) {
	if cfg.ModelPath != "" && !c.IsSet("model") {
		modelPath = cfg.ModelPath
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	applyModelConfig(c, cfg)
	if cfg.Strategy != "" && !c.IsSet("strategy") {
		strategyName = cfg.Strategy
	}
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return Config{}
	}
	return cfg
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
