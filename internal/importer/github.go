// Package importer pulls open GitHub issues into a board column as cards.
package importer

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/corkboard/internal/card"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// defaultPerPage is the issues page size when none is configured.
const defaultPerPage = 50

// Opts holds parameters for an import run.
type Opts struct {
	Owner    string
	Repo     string
	Token    string // GitHub token, empty for unauthenticated access
	ColumnID uint   // destination board column
	UserID   uint   // user recorded on the created cards and events
	PerPage  int
	// For testing: inject a client pointed at a fake server.
	Client *github.Client
}

// Result summarizes one import run.
type Result struct {
	Imported int // cards created
	Skipped  int // pull requests excluded
}

// newClient builds a GitHub client, authenticated when a token is given.
func newClient(ctx context.Context, opts Opts) *github.Client {
	if opts.Client != nil {
		return opts.Client
	}
	if opts.Token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// ImportIssues fetches every open issue of the repository and creates one
// card per issue in the destination column, newest at the top. Pull
// requests come back from the issues API too and are skipped. Each created
// card gets the usual creation audit event.
func ImportIssues(ctx context.Context, db *gorm.DB, opts Opts) (*Result, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("importer: owner and repo are required")
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	client := newClient(ctx, opts)
	// Oldest first so that successive top placements leave the newest
	// issue at the top of the column.
	listOpts := &github.IssueListByRepoOptions{
		State:       "open",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	res := &Result{}
	for {
		issues, resp, err := client.Issues.ListByRepo(ctx, opts.Owner, opts.Repo, listOpts)
		if err != nil {
			return nil, fmt.Errorf("importer: list issues %s/%s: %w", opts.Owner, opts.Repo, err)
		}
		for _, is := range issues {
			if is.IsPullRequest() {
				res.Skipped++
				continue
			}
			name := fmt.Sprintf("#%d %s", is.GetNumber(), is.GetTitle())
			_, err := card.CreateCard(db, name, opts.ColumnID, opts.UserID, is.GetCreatedAt().Time)
			if err != nil {
				return nil, fmt.Errorf("importer: issue #%d: %w", is.GetNumber(), err)
			}
			res.Imported++
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return res, nil
}
