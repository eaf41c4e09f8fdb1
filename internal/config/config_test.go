package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JOBSCRAPE_DATASET_DIR", "JOBSCRAPE_LOG_DIR", "JOBSCRAPE_FETCHER",
		"JOBSCRAPE_PAGE_TIMEOUT", "JOBSCRAPE_FETCH_RETRIES", "JOBSCRAPE_USER_AGENT", "JOBSCRAPE_PROXIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.DatasetDir != want.DatasetDir || cfg.Fetcher != FetcherBrowser || cfg.PageTimeout() != time.Minute {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromJSON5(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  // comments and trailing commas are allowed
  dataset_dir: "data",
  fetcher: "HTTP",
  page_timeout_seconds: 15,
  headless: false,
  sites: {
    indeed: { search_url: "https://www.indeed.com/jobs" },
  },
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DatasetDir != "data" || cfg.Fetcher != FetcherHTTP || cfg.PageTimeoutSeconds != 15 || cfg.Headless {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogDir != "logs" || cfg.FetchRetries != 1 {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}
	if cfg.Sites["indeed"].SearchURL != "https://www.indeed.com/jobs" {
		t.Fatalf("site override not loaded: %+v", cfg.Sites)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dataset_dir": "from-file", "fetch_retries": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBSCRAPE_DATASET_DIR", "from-env")
	t.Setenv("JOBSCRAPE_FETCH_RETRIES", "not-a-number")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DatasetDir != "from-env" {
		t.Fatalf("DatasetDir = %q, want env value", cfg.DatasetDir)
	}
	if cfg.FetchRetries != 3 {
		t.Fatalf("invalid env int should keep file value, got %d", cfg.FetchRetries)
	}
}

func TestLoadFromRejectsUnknownFetcher(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBSCRAPE_FETCHER", "selenium")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatalf("expected validation error for unknown fetcher")
	}
}

func TestInitDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jobscrape")

	created, err := InitDir(dir)
	if err != nil {
		t.Fatalf("InitDir() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected config and proxies files, got %v", created)
	}

	created, err = InitDir(dir)
	if err != nil {
		t.Fatalf("InitDir() (2nd) error = %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second init should create nothing, got %v", created)
	}

	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatalf("written config should load: %v", err)
	}
	if !cfg.Headless || cfg.DatasetDir != "job_db" {
		t.Fatalf("unexpected round-tripped config: %+v", cfg)
	}
}

func TestReadProxiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProxiesFileName)
	if err := os.WriteFile(path, []byte("# comment\nhttp://p1:8080\n\n  socks5://p2:1080  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readProxiesFile(path)
	if err != nil {
		t.Fatalf("readProxiesFile() error = %v", err)
	}
	if len(got) != 2 || got[0] != "http://p1:8080" || got[1] != "socks5://p2:1080" {
		t.Fatalf("unexpected proxies: %v", got)
	}

	missing, err := readProxiesFile(filepath.Join(t.TempDir(), "none.txt"))
	if err != nil || missing != nil {
		t.Fatalf("missing file should yield nil, got %v, %v", missing, err)
	}

	if got := splitCSV(" a, ,b "); len(got) != 2 {
		t.Fatalf("splitCSV() = %v", got)
	}
}

func TestEnsureDirsAndLogFile(t *testing.T) {
	base := t.TempDir()
	cfg := DefaultConfig()
	cfg.DatasetDir = filepath.Join(base, "db")
	cfg.LogDir = filepath.Join(base, "logs")

	if err := EnsureDatasetDir(cfg); err != nil {
		t.Fatalf("EnsureDatasetDir() error = %v", err)
	}
	if info, err := os.Stat(cfg.DatasetDir); err != nil || !info.IsDir() {
		t.Fatalf("dataset dir not created: %v", err)
	}

	file, err := OpenLogFile(cfg)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}
	defer file.Close()
	if filepath.Base(file.Name()) != LogFileName {
		t.Fatalf("unexpected log file: %s", file.Name())
	}
}
