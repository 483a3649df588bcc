package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	DBPath        string `yaml:"db_path"`
	SecretKey     string `yaml:"secret_key"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	Debug         bool   `yaml:"debug"`
}

func defaults() *Config {
	return &Config{
		ListenAddr:    ":8080",
		DBPath:        "tasklist.db",
		LogLevel:      "info",
		LogFile:       "app.log",
		LogMaxSizeMB:  1,
		LogMaxBackups: 10,
	}
}

// Load builds the configuration from defaults, the environment and no file.
func Load() *Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// LoadArgs builds the configuration for the command line in args (without
// the program name). Precedence, lowest first: defaults, the YAML file named
// by --config or CONFIG_FILE, environment variables, flags.
func LoadArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	configFile := fs.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	addr := fs.String("addr", "", "listen address (LISTEN_ADDR)")
	dbPath := fs.String("db", "", "SQLite database path (DB_PATH)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	logFile := fs.String("log-file", "", "rotating log file used outside debug mode (LOG_FILE)")
	debug := fs.Bool("debug", false, "debug mode: verbose logging, no log file (TASKLIST_DEBUG)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg := defaults()
	if *configFile != "" {
		if err := cfg.applyFile(*configFile); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if fs.Changed("addr") {
		cfg.ListenAddr = *addr
	}
	if fs.Changed("db") {
		cfg.DBPath = *dbPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = *logFile
	}
	if fs.Changed("debug") {
		cfg.Debug = *debug
	}
	if cfg.Debug && !fs.Changed("log-level") && os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ListenAddr = getEnv("LISTEN_ADDR", c.ListenAddr)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", c.LogMaxSizeMB)
	c.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", c.LogMaxBackups)
	if val, exists := os.LookupEnv("TASKLIST_DEBUG"); exists {
		c.Debug = val == "1" || val == "true"
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
