package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbrusey/llm-council/internal/utils/daemon"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the LLM Council service",
	Long:  `Check if the LLM Council backend is currently running.`,
	Run: func(cmd *cobra.Command, args []string) {
		running, pid := daemon.GetStatus(pidFile)
		if running {
			fmt.Printf("LLM Council service is running (PID: %d)\n", pid)
		} else {
			fmt.Println("LLM Council service is not running")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
