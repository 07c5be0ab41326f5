package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/importer"
	"golang.org/x/term"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cards from external trackers",
	}

	cmd.AddCommand(newImportGitHubCmd())
	return cmd
}

func newImportGitHubCmd() *cobra.Command {
	var (
		configPath string
		owner      string
		repo       string
		token      string
		columnID   uint
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Import open GitHub issues as cards",
		Long:  "Creates one card per open issue of the repository in the given column. Pull requests are skipped. The token is taken from --token, then GITHUB_TOKEN, then an interactive prompt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportGitHub(cmd, configPath, owner, repo, token, columnID, userID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&owner, "owner", "", "repository owner (required)")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name (required)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	cmd.Flags().UintVar(&columnID, "column", 0, "destination column id (required)")
	cmd.Flags().UintVar(&userID, "user", 1, "user recorded on created cards")
	cmd.MarkFlagRequired("owner")
	cmd.MarkFlagRequired("repo")
	cmd.MarkFlagRequired("column")
	return cmd
}

func runImportGitHub(cmd *cobra.Command, configPath, owner, repo, token string, columnID, userID uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	token, err = resolveToken(cmd, token)
	if err != nil {
		return err
	}

	res, err := importer.ImportIssues(context.Background(), gormDB, importer.Opts{
		Owner:    owner,
		Repo:     repo,
		Token:    token,
		ColumnID: columnID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d issues from %s/%s into column %d\n", res.Imported, owner, repo, columnID)
	if res.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d pull requests\n", res.Skipped)
	}
	return nil
}

// resolveToken picks the GitHub token: flag, then environment, then an
// interactive prompt when stdin is a terminal. An empty result means
// unauthenticated access.
func resolveToken(cmd *cobra.Command, token string) (string, error) {
	if token != "" {
		return token, nil
	}
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "GitHub token (empty for unauthenticated): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
