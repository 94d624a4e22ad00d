package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrusey/llm-council/internal/startup"
)

var (
	configPath string
	pidFile    = "/var/run/llm-council.pid"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "llm-council",
	Short: "Backend service for the LLM Council chat application",
	Long: `llm-council runs the council workflow behind the chat front-end:
every configured model answers a question, the council ranks the anonymized
answers, and a chairman model synthesizes the final response.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default logger for early startup
	startup.SetupDefaultLogger()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
}
