package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/board"
)

func newColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Board column commands",
	}

	cmd.AddCommand(newColumnListCmd())
	cmd.AddCommand(newColumnAddCmd())
	return cmd
}

func newColumnListCmd() *cobra.Command {
	var (
		configPath string
		boardName  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the columns of a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumnList(cmd, configPath, boardName)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&boardName, "board", "", "board short name (required)")
	cmd.MarkFlagRequired("board")
	return cmd
}

func runColumnList(cmd *cobra.Command, configPath, boardName string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	b, err := board.FindBoardByShortName(gormDB, boardName)
	if err != nil {
		return err
	}
	columns, err := board.FindColumnsByBoardID(gormDB, b.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(columns) == 0 {
		fmt.Fprintln(out, "No columns found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEFINITION")
	for _, col := range columns {
		fmt.Fprintf(w, "%d\t%s\t%s\n", col.ID, col.Name, col.Definition)
	}
	w.Flush()
	return nil
}

func newColumnAddCmd() *cobra.Command {
	var (
		configPath string
		boardName  string
		name       string
		definition string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a column to a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumnAdd(cmd, configPath, boardName, name, definition)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&boardName, "board", "", "board short name (required)")
	cmd.Flags().StringVar(&name, "name", "", "column name (required)")
	cmd.Flags().StringVar(&definition, "definition", "open", "column definition (open, closed, backlog, archive)")
	cmd.MarkFlagRequired("board")
	cmd.MarkFlagRequired("name")
	return cmd
}

func runColumnAdd(cmd *cobra.Command, configPath, boardName, name, definition string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	b, err := board.FindBoardByShortName(gormDB, boardName)
	if err != nil {
		return err
	}
	col, err := board.CreateColumn(gormDB, b.ID, name, definition)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added column %d %q (%s) to board %s\n",
		col.ID, col.Name, col.Definition, boardName)
	return nil
}
