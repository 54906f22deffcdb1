package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
	PrometheusBind string `yaml:"prometheus_bind"`
}

type RecognizerConfig struct {
	Mode       string `yaml:"mode"` // google, exec, mock
	Project    string `yaml:"project"`
	Model      string `yaml:"model"`
	Locale     string `yaml:"locale"`
	SampleRate int    `yaml:"sample_rate"`
	Command    string `yaml:"command"`
	ModelPath  string `yaml:"model_path"`
}

type ResultsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	Environment string           `yaml:"environment"`
	Telemetry   TelemetryConfig  `yaml:"telemetry"`
	Recognizer  RecognizerConfig `yaml:"recognizer"`
	Results     ResultsConfig    `yaml:"results"`
}

func Default() Config {
	return Config{
		Environment: "development",
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			OTLPEndpoint: "",
			OTLPInsecure: true,
			// empty disables the metrics listener
			PrometheusBind: "",
		},
		Recognizer: RecognizerConfig{
			Mode:       "mock",
			Model:      "default_long",
			Locale:     "en-US",
			SampleRate: 16000,
		},
		Results: ResultsConfig{
			Enabled: true,
			Path:    "./data/spin-results.db",
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Environment, "SPIN_ENVIRONMENT")
	overrideString(&cfg.Telemetry.LogLevel, "SPIN_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "SPIN_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "SPIN_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telemetry.PrometheusBind, "SPIN_TELEMETRY_PROMETHEUS_BIND")
	overrideString(&cfg.Recognizer.Mode, "SPIN_RECOGNIZER_MODE")
	overrideString(&cfg.Recognizer.Project, "SPIN_RECOGNIZER_PROJECT")
	overrideString(&cfg.Recognizer.Model, "SPIN_RECOGNIZER_MODEL")
	overrideString(&cfg.Recognizer.Locale, "SPIN_RECOGNIZER_LOCALE")
	overrideInt(&cfg.Recognizer.SampleRate, "SPIN_RECOGNIZER_SAMPLE_RATE")
	overrideString(&cfg.Recognizer.Command, "SPIN_RECOGNIZER_COMMAND")
	overrideString(&cfg.Recognizer.ModelPath, "SPIN_RECOGNIZER_MODEL_PATH")
	overrideBool(&cfg.Results.Enabled, "SPIN_RESULTS_ENABLED")
	overrideString(&cfg.Results.Path, "SPIN_RESULTS_PATH")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Recognizer.Mode {
	case "google", "exec", "mock":
	default:
		return errors.New("recognizer.mode must be one of google|exec|mock")
	}
	if cfg.Recognizer.Mode == "google" && cfg.Recognizer.Project == "" {
		return errors.New("recognizer.project must be set when mode=google")
	}
	if cfg.Recognizer.Mode == "exec" && cfg.Recognizer.Command == "" {
		return errors.New("recognizer.command must be set when mode=exec")
	}
	if cfg.Recognizer.Model == "" {
		return errors.New("recognizer.model must not be empty")
	}
	if cfg.Recognizer.Locale == "" {
		return errors.New("recognizer.locale must not be empty")
	}
	if cfg.Recognizer.SampleRate <= 0 {
		return errors.New("recognizer.sample_rate must be positive")
	}
	if cfg.Results.Enabled && cfg.Results.Path == "" {
		return errors.New("results.path must not be empty when the cache is enabled")
	}
	return nil
}
