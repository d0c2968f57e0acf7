package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Ask a language model a question from the browser or the terminal",
	Long: `Assistant forwards a free-text question to a hosted language-model
completion service and shows the answer. Every question is independent:
there is no conversation history.

Run "assistant serve" for the web page, "assistant ask" for a single
question, "assistant chat" for a terminal loop, or "assistant mcp" to
expose the ask tool to AI agents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".assistant.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
