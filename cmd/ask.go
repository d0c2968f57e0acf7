package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ask-assistant/internal/terminal"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long:  `Sends one question to the completion service and prints the answer. Words are joined with spaces, so quoting is optional.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	_, p, err := setupPage()
	if err != nil {
		return err
	}

	term := terminal.New(p, os.Stdout, os.Stderr)
	err = term.AskOnce(cmd.Context(), strings.Join(args, " "))

	var failure *terminal.FailureError
	if errors.As(err, &failure) {
		// Already shown; only the exit status is left to report.
		cmd.SilenceErrors = true
	}
	return err
}
