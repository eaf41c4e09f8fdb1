package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobscrape"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	LogFileName     = "jobscrape.log"
)

const (
	FetcherBrowser = "browser"
	FetcherHTTP    = "http"
)

// SiteOverride replaces the URL templates of a built-in site. Empty fields keep the default.
type SiteOverride struct {
	SearchURL string `json:"search_url,omitempty"`
	JobURL    string `json:"job_url,omitempty"`
}

// Config contains scrape settings.
type Config struct {
	DatasetDir         string                  `json:"dataset_dir"`
	LogDir             string                  `json:"log_dir"`
	Fetcher            string                  `json:"fetcher"`
	PageTimeoutSeconds int                     `json:"page_timeout_seconds"`
	SettleMillis       int                     `json:"settle_millis"`
	FetchRetries       int                     `json:"fetch_retries"`
	Headless           bool                    `json:"headless"`
	ChromePath         string                  `json:"chrome_path,omitempty"`
	UserAgent          string                  `json:"user_agent,omitempty"`
	Sites              map[string]SiteOverride `json:"sites,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		DatasetDir:         "job_db",
		LogDir:             "logs",
		Fetcher:            FetcherBrowser,
		PageTimeoutSeconds: 60,
		SettleMillis:       1500,
		FetchRetries:       1,
		Headless:           true,
	}
}

func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

func (c Config) Settle() time.Duration {
	return time.Duration(c.SettleMillis) * time.Millisecond
}

func (c Config) Validate() error {
	switch c.Fetcher {
	case FetcherBrowser, FetcherHTTP:
	default:
		return fmt.Errorf("unknown fetcher %q (want %s or %s)", c.Fetcher, FetcherBrowser, FetcherHTTP)
	}
	if strings.TrimSpace(c.DatasetDir) == "" {
		return errors.New("dataset_dir is required")
	}
	if c.PageTimeoutSeconds < 0 || c.FetchRetries < 0 || c.SettleMillis < 0 {
		return errors.New("page_timeout_seconds, settle_millis and fetch_retries must not be negative")
	}
	return nil
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	return configFile(ConfigFileName)
}

func ProxiesPath() (string, error) {
	return configFile(ProxiesFileName)
}

func configFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Load reads the user config file and applies JOBSCRAPE_* environment overrides.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := DefaultConfig()
		applyEnv(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit path. A missing or empty file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.Fetcher = strings.ToLower(strings.TrimSpace(cfg.Fetcher))
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	cfg.DatasetDir = envString("JOBSCRAPE_DATASET_DIR", cfg.DatasetDir)
	cfg.LogDir = envString("JOBSCRAPE_LOG_DIR", cfg.LogDir)
	cfg.Fetcher = envString("JOBSCRAPE_FETCHER", cfg.Fetcher)
	cfg.PageTimeoutSeconds = envInt("JOBSCRAPE_PAGE_TIMEOUT", cfg.PageTimeoutSeconds)
	cfg.FetchRetries = envInt("JOBSCRAPE_FETCH_RETRIES", cfg.FetchRetries)
	cfg.UserAgent = envString("JOBSCRAPE_USER_AGENT", cfg.UserAgent)
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return InitDir(dir)
}

// InitDir writes the default files into dir, leaving existing ones alone, and
// returns the paths it created.
func InitDir(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	files := []struct {
		name  string
		write func(path string) error
	}{
		{ConfigFileName, func(path string) error { return writeConfig(path, DefaultConfig()) }},
		{ProxiesFileName, func(path string) error {
			return os.WriteFile(path, []byte("# one proxy URL per line, used by --fetcher http\n"), 0o644)
		}},
	}

	var created []string
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := file.write(path); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// EnsureDatasetDir creates the dataset directory if needed.
func EnsureDatasetDir(cfg Config) error {
	return os.MkdirAll(cfg.DatasetDir, 0o755)
}

// OpenLogFile creates the log directory and opens the run log for appending.
func OpenLogFile(cfg Config) (*os.File, error) {
	if strings.TrimSpace(cfg.LogDir) == "" {
		return nil, errors.New("log_dir is required")
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(cfg.LogDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// LoadProxies resolves proxies from the flag value, JOBSCRAPE_PROXIES, then proxies.txt.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBSCRAPE_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	return readProxiesFile(path)
}

func readProxiesFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var proxies []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			proxies = append(proxies, line)
		}
	}
	return proxies, scanner.Err()
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
