package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HourHeight != 4 || cfg.InitialScrollHour != 8 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hour_height: 6\ntimezone: UTC\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HourHeight != 6 {
		t.Errorf("hour_height = %d, want 6", cfg.HourHeight)
	}
	if cfg.Reload != defaultReload || cfg.LogLevel != "info" || cfg.LogFile == "" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("location = %s", cfg.Location())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"BadTimezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"BadCron", func(c *Config) { c.Reload = "every now and then" }, true},
		{"ReloadOff", func(c *Config) { c.Reload = "off" }, false},
		{"BadLevel", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReloadSchedule(t *testing.T) {
	cfg := DefaultConfig()
	sched, err := cfg.ReloadSchedule()
	if err != nil || sched == nil {
		t.Fatalf("expected schedule, got %v, %v", sched, err)
	}

	cfg.Reload = "off"
	sched, err = cfg.ReloadSchedule()
	if err != nil || sched != nil {
		t.Errorf("expected nil schedule when off, got %v, %v", sched, err)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hour_height: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected parse error")
	}
}
