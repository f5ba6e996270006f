package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Path != "addressbook.json" {
		t.Errorf("default storage path = %q, want %q", cfg.Storage.Path, "addressbook.json")
	}
	if cfg.Birthdays.WindowDays != 7 {
		t.Errorf("default window = %d, want 7", cfg.Birthdays.WindowDays)
	}
	if cfg.Log.Level != "off" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "off")
	}
	if cfg.Display.Plain {
		t.Error("default display.plain = true, want false")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), `
storage:
  path: /tmp/contacts.json
birthdays:
  window_days: 14
log:
  level: DEBUG
  file: /tmp/contactbook.log
display:
  plain: true
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Storage:   Storage{Path: "/tmp/contacts.json"},
		Birthdays: Birthdays{WindowDays: 14},
		Log:       Log{Level: "debug", File: "/tmp/contactbook.log"},
		Display:   Display{Plain: true},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "{{invalid yaml")

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), `
storage:
  pth: book.json
`)

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'pth'")
	}
}

func TestLoad_CommentOnlyAndEmpty(t *testing.T) {
	for _, body := range []string{"# just a comment\n", ""} {
		cfg, err := Load(writeConfig(t, t.TempDir(), body))
		if err != nil {
			t.Fatalf("Load(%q) error = %v", body, err)
		}
		if want := DefaultConfig(); *cfg != want {
			t.Errorf("Load(%q) = %+v, want defaults %+v", body, *cfg, want)
		}
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given: user config sets path and window, project config overrides window
	userCfg := writeConfig(t, t.TempDir(), `
storage:
  path: /home/me/book.json
birthdays:
  window_days: 10
`)
	projectCfg := writeConfig(t, t.TempDir(), `
birthdays:
  window_days: 3
`)

	// When: both layers are loaded
	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then: path from user layer, window from project layer, log from defaults
	if cfg.Storage.Path != "/home/me/book.json" {
		t.Errorf("path = %q, want %q", cfg.Storage.Path, "/home/me/book.json")
	}
	if cfg.Birthdays.WindowDays != 3 {
		t.Errorf("window = %d, want 3", cfg.Birthdays.WindowDays)
	}
	if cfg.Log.Level != "off" {
		t.Errorf("log level = %q, want default %q", cfg.Log.Level, "off")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "CONTACTBOOK_FILE overrides storage path",
			envs: map[string]string{"CONTACTBOOK_FILE": "/data/book.json"},
			check: func(t *testing.T, c Config) {
				if c.Storage.Path != "/data/book.json" {
					t.Errorf("path = %q, want %q", c.Storage.Path, "/data/book.json")
				}
			},
		},
		{
			name: "CONTACTBOOK_WINDOW_DAYS overrides window",
			envs: map[string]string{"CONTACTBOOK_WINDOW_DAYS": "21"},
			check: func(t *testing.T, c Config) {
				if c.Birthdays.WindowDays != 21 {
					t.Errorf("window = %d, want 21", c.Birthdays.WindowDays)
				}
			},
		},
		{
			name: "CONTACTBOOK_LOG_LEVEL and FILE override log",
			envs: map[string]string{"CONTACTBOOK_LOG_LEVEL": "Info", "CONTACTBOOK_LOG_FILE": "/tmp/cb.log"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "info" {
					t.Errorf("level = %q, want %q", c.Log.Level, "info")
				}
				if c.Log.File != "/tmp/cb.log" {
					t.Errorf("file = %q, want %q", c.Log.File, "/tmp/cb.log")
				}
			},
		},
		{
			name:    "invalid CONTACTBOOK_WINDOW_DAYS returns error",
			envs:    map[string]string{"CONTACTBOOK_WINDOW_DAYS": "a week"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "empty storage path", modify: func(c *Config) { c.Storage.Path = " " }, wantErr: true},
		{name: "zero window", modify: func(c *Config) { c.Birthdays.WindowDays = 0 }, wantErr: true},
		{name: "window above a year", modify: func(c *Config) { c.Birthdays.WindowDays = MaxWindowDays + 1 }, wantErr: true},
		{name: "unknown log level", modify: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "debug log level", modify: func(c *Config) { c.Log.Level = "debug" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
