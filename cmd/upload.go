package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reelhub/internal/ui"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file to the API",
	Args:  cobra.ExactArgs(1),
	RunE:  uploadRun,
}

func uploadRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	var message string
	err = ui.WithSpinner("Uploading "+filepath.Base(args[0]), func() error {
		var uerr error
		message, uerr = a.svc.Upload(cmd.Context(), filepath.Base(args[0]), f)
		return uerr
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]string{"message": message})
	}
	fmt.Println(message)
	return nil
}
