package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/notify"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Activity digest commands",
	}

	cmd.AddCommand(newDigestShowCmd())
	cmd.AddCommand(newDigestSendCmd())
	return cmd
}

func newDigestShowCmd() *cobra.Command {
	var (
		configPath string
		since      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the activity digest for a recent period",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigestShow(cmd, configPath, since)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "period to cover, e.g. 24h or 7d as 168h")
	return cmd
}

func runDigestShow(cmd *cobra.Command, configPath string, since time.Duration) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	now := time.Now()
	d, err := notify.BuildDigest(gormDB, now.Add(-since), now)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if d == nil {
		fmt.Fprintln(out, "No activity in the period.")
		return nil
	}
	fmt.Fprintln(out, notify.FormatDigest(d))
	return nil
}

func newDigestSendCmd() *cobra.Command {
	var (
		configPath string
		since      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Deliver the activity digest to configured chat platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigestSend(cmd, configPath, since)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "period to cover")
	return cmd
}

func runDigestSend(cmd *cobra.Command, configPath string, since time.Duration) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	adapters, err := buildAdapters(cfg)
	if err != nil {
		return err
	}
	if len(adapters) == 0 {
		return fmt.Errorf("no chat platform configured, set notify.slack or notify.discord")
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

	sent, err := sched.SendOnce(context.Background(), time.Now().Add(-since))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !sent {
		fmt.Fprintln(out, "No activity in the period, nothing sent.")
		return nil
	}
	fmt.Fprintf(out, "Digest delivered to %d platform(s)\n", len(adapters))
	return nil
}
