package main

import (
	"strings"
	"testing"

	"github.com/zulandar/corkboard/internal/config"
)

func TestServeCmd_Help(t *testing.T) {
	out, err := runCmd(t, "serve", "--help")
	if err != nil {
		t.Fatalf("serve --help failed: %v", err)
	}
	if !strings.Contains(out, "API server") {
		t.Errorf("expected help to mention the API server, got: %s", out)
	}
	if !strings.Contains(out, "--port") {
		t.Errorf("expected help to mention '--port', got: %s", out)
	}
}

func TestServeCmd_MissingConfig(t *testing.T) {
	if _, err := runCmd(t, "serve", "--config", "/nonexistent/corkboard.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBuildAdapters_NoneConfigured(t *testing.T) {
	adapters, err := buildAdapters(config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adapters) != 0 {
		t.Errorf("len(adapters) = %d, want 0", len(adapters))
	}
}

func TestBuildAdapters_SlackAndDiscord(t *testing.T) {
	cfg := config.Default()
	cfg.Notify.Slack.Token = "xoxb-token"
	cfg.Notify.Slack.Channel = "C1"
	cfg.Notify.Discord.Token = "token"
	cfg.Notify.Discord.Channel = "123"

	adapters, err := buildAdapters(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adapters) != 2 {
		t.Fatalf("len(adapters) = %d, want 2", len(adapters))
	}
	if adapters[0].Name() != "slack" || adapters[1].Name() != "discord" {
		t.Errorf("adapter names = %s, %s", adapters[0].Name(), adapters[1].Name())
	}
}
