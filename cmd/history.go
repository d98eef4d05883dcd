package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelhub/internal/history"
	"reelhub/internal/media"
	"reelhub/internal/ui"
)

var flagClearHistory bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Resume from watch history",
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClearHistory, "clear", false, "Clear the watch history")
}

func historyRun(cmd *cobra.Command, args []string) error {
	if flagClearHistory {
		s, tracker, err := openTracker()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := tracker.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.tracker.Entries(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	// Show history in fzf
	idx, err := ui.Select("History", history.FormatForDisplay(entries))
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("resuming: %s (ID: %s, platform: %s)", selected.Title, selected.ID, selected.Platform)

	if !a.svc.Has(selected.Platform) {
		return fmt.Errorf("platform %q is no longer available", selected.Platform)
	}
	return a.watch(cmd.Context(), selected.Platform, media.Item{
		ID:    selected.ID,
		Title: selected.Title,
		Cover: selected.Cover,
	})
}
