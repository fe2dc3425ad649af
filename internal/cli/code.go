package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// codeCmd stands in for an authenticator app on a local workspace
var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Print the current two-factor code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		w, err := openWorker(cfg, log.New(io.Discard))
		if err != nil {
			return err
		}
		defer w.Close()

		code, err := w.CurrentCode(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codeCmd)
}
