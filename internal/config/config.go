package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// DSN is only consulted when Reports.Store is "postgres".
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Reports struct {
		// Store selects the report store implementation: "memory" or "postgres".
		Store string `yaml:"store"`
	} `yaml:"reports"`

	Storage struct {
		BasePath string `yaml:"base_path"` // upload root on disk
		BaseURL  string `yaml:"base_url"`  // public alias the files are served under
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // max file size in bytes
	} `yaml:"upload"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		ContactEmail string `yaml:"contact_email"` // enquiry recipient
	} `yaml:"email"`
}

// Defaults matching the original deployment: 10 MiB PDF uploads served
// from /reports.
const (
	DefaultMaxUploadSize = 10 * 1024 * 1024
	DefaultUploadDir     = "./public/reports"
	DefaultUploadBaseURL = "/reports"
)

// Load reads the YAML config file, then applies environment overrides.
// When no config file exists the defaults are enough to run with the
// in-memory store.
func Load() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Reports.Store = "memory"
	cfg.Storage.BasePath = DefaultUploadDir
	cfg.Storage.BaseURL = DefaultUploadBaseURL
	cfg.Upload.MaxSize = DefaultMaxUploadSize

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = DefaultUploadDir
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = DefaultUploadBaseURL
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = DefaultMaxUploadSize
	}
	if cfg.Reports.Store == "" {
		cfg.Reports.Store = "memory"
	}

	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
		cfg.Reports.Store = "postgres"
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Storage.BasePath = v
	}
}
