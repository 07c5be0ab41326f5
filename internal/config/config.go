// Package config provides YAML-based configuration loading for Corkboard.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Corkboard configuration, loaded from config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Seed   SeedConfig   `yaml:"seed"`
	Notify NotifyConfig `yaml:"notify"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DBConfig holds connection settings for the relational store.
type DBConfig struct {
	Driver   string `yaml:"driver"` // sqlite or mysql
	Path     string `yaml:"path"`   // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// SeedConfig names the project, board, and admin user created by `cork db init`.
type SeedConfig struct {
	Project     string `yaml:"project"`
	ProjectName string `yaml:"project_name"`
	Board       string `yaml:"board"`
	BoardName   string `yaml:"board_name"`
	AdminUser   string `yaml:"admin_user"`
}

// NotifyConfig holds digest delivery settings for chat platforms.
type NotifyConfig struct {
	DigestCron string        `yaml:"digest_cron"` // 5-field cron expression
	Slack      SlackConfig   `yaml:"slack"`
	Discord    DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack bot credentials and the target channel.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// DiscordConfig holds Discord bot credentials and the target channel.
type DiscordConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with all defaults applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Path == "" {
		c.DB.Path = "corkboard.db"
	}
	if c.DB.Host == "" {
		c.DB.Host = "127.0.0.1"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.DB.Database == "" {
		c.DB.Database = "corkboard"
	}
	if c.Seed.Project == "" {
		c.Seed.Project = "MAIN"
	}
	if c.Seed.ProjectName == "" {
		c.Seed.ProjectName = "Main project"
	}
	if c.Seed.Board == "" {
		c.Seed.Board = "MAIN-BOARD"
	}
	if c.Seed.BoardName == "" {
		c.Seed.BoardName = "Main board"
	}
	if c.Seed.AdminUser == "" {
		c.Seed.AdminUser = "admin"
	}
	if c.Notify.DigestCron == "" {
		c.Notify.DigestCron = "0 9 * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("db.driver must be sqlite or mysql, got %q", c.DB.Driver))
	}
	if c.DB.Driver == "mysql" && c.DB.Database == "" {
		errs = append(errs, "db.database is required for the mysql driver")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Notify.Slack.Token != "" && c.Notify.Slack.Channel == "" {
		errs = append(errs, "notify.slack.channel is required when a slack token is set")
	}
	if c.Notify.Discord.Token != "" && c.Notify.Discord.Channel == "" {
		errs = append(errs, "notify.discord.channel is required when a discord token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
