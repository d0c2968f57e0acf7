package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ask-assistant/internal/terminal"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively in the terminal",
	Long:  `Prompts for questions until Ctrl-C or Ctrl-D. Each question is sent on its own; earlier answers are not remembered.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setupPage()
		if err != nil {
			return err
		}

		return terminal.New(p, os.Stdout, os.Stderr).Chat(cmd.Context(), terminal.PromptUI{})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
