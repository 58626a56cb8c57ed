package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/shortlist"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	var chatFlag int64

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect the persisted shortlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := shortlist.Open(cfg.Storage.StatePath, logging.NewNop())
			if err != nil {
				return fmt.Errorf("open shortlist store: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if cmd.Flags().Changed("chat") {
				return renderChatState(cmd, store, chatFlag, colorize)
			}
			return renderStateSummary(cmd, store, colorize)
		},
	}

	cmd.Flags().Int64Var(&chatFlag, "chat", 0, "Show the shortlist of a single conversation")
	return cmd
}

func renderStateSummary(cmd *cobra.Command, store *shortlist.Store, colorize bool) error {
	chats := store.Chats()
	out := cmd.OutOrStdout()
	for _, line := range sectionHeading("shortlists", colorize) {
		fmt.Fprintln(out, line)
	}
	if len(chats) == 0 {
		fmt.Fprintln(out, "No conversations have a shortlist yet.")
		fmt.Fprintf(out, "\nState file: %s\n", store.Path())
		return nil
	}

	rows := make([][]string, 0, len(chats))
	for _, chatID := range chats {
		entries := store.Get(chatID)
		rows = append(rows, []string{
			strconv.FormatInt(chatID, 10),
			fmt.Sprintf("%d/%d", len(entries), shortlist.MaxEntries),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chat", "Entries"},
		rows,
		[]columnAlignment{alignRight, alignRight},
	))
	fmt.Fprintf(out, "\nState file: %s\n", store.Path())
	return nil
}

func renderChatState(cmd *cobra.Command, store *shortlist.Store, chatID int64, colorize bool) error {
	entries := store.Get(chatID)
	out := cmd.OutOrStdout()
	for _, line := range sectionHeading(fmt.Sprintf("chat %d", chatID), colorize) {
		fmt.Fprintln(out, line)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The shortlist is empty.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entry.Title,
			entry.Year(),
			string(catalog.ParseKind(entry.Kind)),
			strconv.FormatInt(entry.ID, 10),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Year", "Kind", "TMDB ID"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight},
	))
	return nil
}
