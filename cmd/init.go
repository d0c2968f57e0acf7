package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ask-assistant/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize assistant configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the completion provider, model and page texts, and writes them to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
