package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/api"
	"github.com/zulandar/corkboard/internal/config"
	"github.com/zulandar/corkboard/internal/notify"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Corkboard API server",
		Long:  "Launches the HTTP API and, when chat credentials are configured, the activity digest scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if err := startDigests(ctx, cmd, cfg, gormDB); err != nil {
		return err
	}

	return api.Start(ctx, api.StartOpts{
		DB:   gormDB,
		Port: port,
		Out:  cmd.OutOrStdout(),
	})
}

// startDigests launches the digest scheduler in the background when at
// least one chat platform is configured. No credentials, no scheduler.
func startDigests(ctx context.Context, cmd *cobra.Command, cfg *config.Config, gormDB *gorm.DB) error {
	adapters, err := buildAdapters(cfg)
	if err != nil {
		return err
	}
	if len(adapters) == 0 {
		return nil
	}

	sched, err := notify.NewScheduler(notify.SchedulerOpts{
		DB:       gormDB,
		Adapters: adapters,
		Cron:     cfg.Notify.DigestCron,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Digest scheduler running (%s) on cron %q\n",
		names, cfg.Notify.DigestCron)

	go sched.Run(ctx)
	return nil
}

func buildAdapters(cfg *config.Config) ([]notify.Adapter, error) {
	var adapters []notify.Adapter
	if cfg.Notify.Slack.Token != "" {
		a, err := notify.NewSlack(notify.SlackOpts{
			Token:     cfg.Notify.Slack.Token,
			ChannelID: cfg.Notify.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	if cfg.Notify.Discord.Token != "" {
		a, err := notify.NewDiscord(notify.DiscordOpts{
			Token:     cfg.Notify.Discord.Token,
			ChannelID: cfg.Notify.Discord.Channel,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
