package config

import (
	"strings"
	"testing"
)

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", cfg.DB.Driver)
	}
	if cfg.DB.Path != "corkboard.db" {
		t.Errorf("default path = %q, want corkboard.db", cfg.DB.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Notify.DigestCron != "0 9 * * *" {
		t.Errorf("default digest_cron = %q", cfg.Notify.DigestCron)
	}
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
server:
  port: 9090
db:
  driver: mysql
  host: db.internal
  port: 3307
  database: corkboard_prod
seed:
  project: OPS
  board: OPS-BOARD
  admin_user: carol
notify:
  digest_cron: "30 8 * * 1-5"
  slack:
    token: xoxb-test
    channel: C01234567
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.Host != "db.internal" || cfg.DB.Port != 3307 {
		t.Errorf("db config = %+v", cfg.DB)
	}
	if cfg.Seed.Project != "OPS" || cfg.Seed.AdminUser != "carol" {
		t.Errorf("seed config = %+v", cfg.Seed)
	}
	if cfg.Notify.Slack.Channel != "C01234567" {
		t.Errorf("slack channel = %q", cfg.Notify.Slack.Channel)
	}
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := Parse([]byte("db:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "db.driver") {
		t.Errorf("error = %q, want to mention db.driver", err.Error())
	}
}

func TestParse_SlackTokenWithoutChannel(t *testing.T) {
	_, err := Parse([]byte("notify:\n  slack:\n    token: xoxb-test\n"))
	if err == nil {
		t.Fatal("expected error for slack token without channel")
	}
	if !strings.Contains(err.Error(), "notify.slack.channel") {
		t.Errorf("error = %q, want to mention notify.slack.channel", err.Error())
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse([]byte(": not yaml [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DB.Driver != "sqlite" || cfg.Seed.Board != "MAIN-BOARD" {
		t.Errorf("Default() = %+v", cfg)
	}
}
