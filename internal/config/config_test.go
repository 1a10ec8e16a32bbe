package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("expected :5000, got %q", cfg.Server.Addr)
	}
	if cfg.Analysis.CacheTTL != time.Hour {
		t.Errorf("expected 1h cache ttl, got %v", cfg.Analysis.CacheTTL)
	}
	if cfg.News.MaxArticles != 10 {
		t.Errorf("expected 10 articles, got %d", cfg.News.MaxArticles)
	}
	if cfg.TelegramEnabled() {
		t.Error("expected telegram disabled without credentials")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
watchlist: [aapl, " msft ", ""]
analysis:
  cache_ttl: 30m
schedule:
  refresh_cron: "0 0 10 * * 1-5"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Analysis.CacheTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.Analysis.CacheTTL)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "AAPL" || cfg.Watchlist[1] != "MSFT" {
		t.Errorf("unexpected watchlist %v", cfg.Watchlist)
	}
	if cfg.Schedule.RefreshCron != "0 0 10 * * 1-5" {
		t.Errorf("unexpected refresh cron %q", cfg.Schedule.RefreshCron)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":8080\"\n")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("WATCHLIST", "tsla,nvda")
	t.Setenv("FINNHUB_API_KEY", "fh-key")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected env addr :9090, got %q", cfg.Server.Addr)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[1] != "NVDA" {
		t.Errorf("unexpected watchlist %v", cfg.Watchlist)
	}
	if cfg.News.APIKey != "fh-key" || cfg.DataSource.APIKey != "av-key" {
		t.Errorf("expected api keys from env, got %q / %q", cfg.News.APIKey, cfg.DataSource.APIKey)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for token without chat id")
	}
	cfg.Telegram.ChatID = "42"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid telegram config, got %v", err)
	}

	cfg.Watchlist = []string{"BRK.B"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid watchlist ticker")
	}
}
