package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/card"
	"github.com/zulandar/corkboard/internal/event"
	"github.com/zulandar/corkboard/internal/models"
)

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Card management commands",
	}

	cmd.AddCommand(newCardCreateCmd())
	cmd.AddCommand(newCardListCmd())
	cmd.AddCommand(newCardOpenCmd())
	cmd.AddCommand(newCardRenameCmd())
	cmd.AddCommand(newCardMoveCmd())
	cmd.AddCommand(newCardReorderCmd())
	cmd.AddCommand(newCardEventsCmd())
	return cmd
}

func newCardCreateCmd() *cobra.Command {
	var (
		configPath string
		name       string
		columnID   uint
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card at the top of a column",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardCreate(cmd, configPath, name, columnID, userID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&name, "name", "", "card name (required)")
	cmd.Flags().UintVar(&columnID, "column", 0, "destination column id (required)")
	cmd.Flags().UintVar(&userID, "user", 1, "acting user id")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("column")
	return cmd
}

func runCardCreate(cmd *cobra.Command, configPath, name string, columnID, userID uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	c, err := card.CreateCard(gormDB, name, columnID, userID, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created card %d %q in column %d\n", c.ID, c.Name, c.BoardColumnID)
	return nil
}

func newCardListCmd() *cobra.Command {
	var (
		configPath string
		columnID   uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards of a column in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardList(cmd, configPath, columnID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().UintVar(&columnID, "column", 0, "column id (required)")
	cmd.MarkFlagRequired("column")
	return cmd
}

func runCardList(cmd *cobra.Command, configPath string, columnID uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	cards, err := card.FetchAllInColumn(gormDB, columnID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cards) == 0 {
		fmt.Fprintln(out, "No cards found.")
		return nil
	}

	printCardTable(out, cards)
	return nil
}

func newCardOpenCmd() *cobra.Command {
	var (
		configPath string
		userID     uint
		project    string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "List a user's cards in open columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardOpen(cmd, configPath, project, userID, page, pageSize)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().UintVar(&userID, "user", 1, "user id")
	cmd.Flags().StringVar(&project, "project", "", "filter by project short name")
	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "cards per page")
	return cmd
}

func runCardOpen(cmd *cobra.Command, configPath, project string, userID uint, page, pageSize int) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var holder *card.CardFullWithCountsHolder
	if project != "" {
		holder, err = card.GetAllOpenCardsByProject(gormDB, project, userID, page, pageSize)
	} else {
		holder, err = card.GetAllOpenCards(gormDB, userID, page, pageSize)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(holder.Cards) == 0 {
		fmt.Fprintln(out, "No open cards.")
		return nil
	}

	printCardTable(out, holder.Cards)
	fmt.Fprintf(out, "Page %d of %d cards total\n", page, holder.TotalItems)
	return nil
}

func newCardRenameCmd() *cobra.Command {
	var (
		configPath string
		name       string
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCardRename(cmd, configPath, id, name, userID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&name, "name", "", "new card name (required)")
	cmd.Flags().UintVar(&userID, "user", 1, "acting user id")
	cmd.MarkFlagRequired("name")
	return cmd
}

func runCardRename(cmd *cobra.Command, configPath string, id uint, name string, userID uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := card.UpdateCard(gormDB, id, name, userID, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed card %d to %q\n", id, name)
	return nil
}

func newCardMoveCmd() *cobra.Command {
	var (
		configPath string
		from       uint
		to         uint
		userID     uint
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a card to the bottom of another column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCardMove(cmd, configPath, id, from, to, userID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().UintVar(&from, "from", 0, "current column id (required)")
	cmd.Flags().UintVar(&to, "to", 0, "destination column id (required)")
	cmd.Flags().UintVar(&userID, "user", 1, "acting user id")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func runCardMove(cmd *cobra.Command, configPath string, id, from, to, userID uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := card.MoveCardToColumn(gormDB, id, from, to, userID, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved card %d from column %d to column %d\n", id, from, to)
	return nil
}

func newCardReorderCmd() *cobra.Command {
	var (
		configPath string
		columnID   uint
		order      string
	)

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Reorder a column's cards",
		Long:  "Applies a comma-separated card id sequence as the new top of the column. Cards left out keep their current relative order below it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(order)
			if err != nil {
				return err
			}
			return runCardReorder(cmd, configPath, columnID, ids)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().UintVar(&columnID, "column", 0, "column id (required)")
	cmd.Flags().StringVar(&order, "order", "", "comma-separated card ids, e.g. 3,1,2 (required)")
	cmd.MarkFlagRequired("column")
	cmd.MarkFlagRequired("order")
	return cmd
}

func runCardReorder(cmd *cobra.Command, configPath string, columnID uint, ids []uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	applied, err := card.ReorderColumn(gormDB, columnID, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reordered column %d, %d of %d requested ids applied\n",
		columnID, applied, len(ids))
	return nil
}

func newCardEventsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Show a card's audit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runCardEvents(cmd, configPath, id)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	return cmd
}

func runCardEvents(cmd *cobra.Command, configPath string, id uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	events, err := event.FindByCardID(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tFROM\tTO\tUSER\tPAYLOAD")
	for _, e := range events {
		payload := "-"
		if e.ValueString != nil {
			payload = truncate(*e.ValueString, 40)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			e.Time.Format("2006-01-02 15:04:05"), e.Type,
			e.PreviousColumnID, e.BoardColumnID, e.UserID, payload)
	}
	w.Flush()
	return nil
}

func printCardTable(out io.Writer, cards []card.CardFullWithCounts) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tORDER\tBOARD\tUSER\tCOMMENTS")
	for _, c := range cards {
		var comments int64
		if cc, ok := c.Counts[models.DataTypeComment]; ok {
			comments = cc.Count
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%d\n",
			c.ID, truncate(c.Name, 40), c.SortOrder, c.BoardShortName, c.Username, comments)
	}
	w.Flush()
}

// parseID parses a single decimal card id.
func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid card id %q", s)
	}
	return uint(n), nil
}

// parseIDList parses a comma-separated id list like "3,1,2".
func parseIDList(s string) ([]uint, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := parseID(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no card ids in %q", s)
	}
	return ids, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
