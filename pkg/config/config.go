// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the bot configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g.
// ROLEPANEL_PANEL_CATALOG_PATH sets panel.catalog_path.
const EnvPrefix = "ROLEPANEL_"

type Config struct {
	Log       LogConfig       `koanf:"log"`
	Discord   DiscordConfig   `koanf:"discord"`
	Panel     PanelConfig     `koanf:"panel"`
	ErrorLog  ErrorLogConfig  `koanf:"error_log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type DiscordConfig struct {
	Token              string `koanf:"token"`
	AppID              string `koanf:"app_id"`
	GuildID            string `koanf:"guild_id"`
	CommandName        string `koanf:"command_name"`
	CommandDescription string `koanf:"command_description"`
}

type PanelConfig struct {
	CatalogPath        string        `koanf:"catalog_path"` // empty uses the built-in catalog
	Placeholder        string        `koanf:"placeholder"`
	Title              string        `koanf:"title"`
	AssignedTitle      string        `koanf:"assigned_title"`
	BlobLabel          string        `koanf:"blob_label"`
	RolePlaceholder    string        `koanf:"role_placeholder"`
	PersonPlaceholder  string        `koanf:"person_placeholder"`
	Color              int           `koanf:"color"`
	InteractionTimeout time.Duration `koanf:"interaction_timeout"`
}

type ErrorLogConfig struct {
	Path string `koanf:"path"`
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // none, stdout, otlp
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

// sections lists the top-level keys, longest first where one is a prefix
// of another, so env names can be split at the section boundary.
var sections = []string{"error_log", "telemetry", "discord", "panel", "log"}

// legacyEnv maps the variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"DISCORD_TOKEN": "discord.token",
	"CLIENT_ID":     "discord.app_id",
	"GUILD_ID":      "discord.guild_id",
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":                   "info",
		"log.format":                  "text",
		"discord.command_name":        "choose-role",
		"discord.command_description": "選擇你的職能",
		"panel.catalog_path":          "",
		"panel.placeholder":           "冇人做",
		"panel.title":                 "📊 職能選擇",
		"panel.assigned_title":        "📊 已選擇職能",
		"panel.blob_label":            "🧾 Base64 資料：",
		"panel.role_placeholder":      "選擇職能",
		"panel.person_placeholder":    "選擇用戶",
		"panel.color":                 0x00AE86,
		"panel.interaction_timeout":   "2.5s",
		"error_log.path":              "logs/log.txt",
		"telemetry.exporter":          "none",
		"telemetry.otlp_endpoint":     "localhost:4317",
		"telemetry.otlp_insecure":     true,
	}
}

// Load builds a Config. path may be empty, in which case only defaults and
// environment variables apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	for key, v := range defaults() {
		if err := k.Set(key, v); err != nil {
			return nil, err
		}
	}

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// 2. Legacy names (DISCORD_TOKEN -> discord.token)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, err
	}

	// 3. Prefixed names (ROLEPANEL_PANEL_CATALOG_PATH -> panel.catalog_path)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps a prefixed variable to its config key, or "" to skip it.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok && rest != "" {
			return section + "." + rest
		}
	}
	return ""
}

// LoadDotEnv exports the variables in a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Validate reports missing settings. Every mode needs the bot token;
// managing commands (forRun false) also needs the application id. An empty
// guild id is valid and means the command is global.
func (c *Config) Validate(forRun bool) error {
	var missing []string
	if c.Discord.Token == "" {
		missing = append(missing, "discord.token")
	}
	if !forRun {
		if c.Discord.AppID == "" {
			missing = append(missing, "discord.app_id")
		}
		if c.Discord.CommandName == "" {
			missing = append(missing, "discord.command_name")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	if c.Panel.InteractionTimeout < 0 {
		return fmt.Errorf("panel.interaction_timeout must not be negative")
	}
	return nil
}
