package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelhub/internal/ui"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms [code]",
	Short: "List platforms, or switch the active one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  platformsRun,
}

func platformsRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		code := args[0]
		if !a.svc.Has(code) {
			return fmt.Errorf("unknown platform %q", code)
		}
		if err := a.tracker.SetActivePlatform(cmd.Context(), code); err != nil {
			return err
		}
		fmt.Printf("Active platform: %s\n", code)
		return nil
	}

	infos := a.svc.Platforms()
	if flagJSON {
		return printJSON(infos)
	}

	active, err := a.tracker.ActivePlatform(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(ui.Header("Platforms"))
	for _, info := range infos {
		marker := " "
		if info.Code == active {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n", marker, ui.PlatformBadge(info.Name, info.Color), ui.Muted(info.Code))
	}
	return nil
}
