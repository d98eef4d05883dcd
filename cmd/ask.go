package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelhub/internal/ui"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask the AI assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE:  askRun,
}

func askRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prompt := strings.Join(args, " ")
	debugf("asking: %s", prompt)

	var reply string
	_ = ui.WithSpinner("Thinking", func() error {
		reply = a.svc.AskAI(cmd.Context(), prompt)
		return nil
	})

	if flagJSON {
		return printJSON(map[string]string{"reply": reply})
	}
	fmt.Println(reply)
	return nil
}
