package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrusey/llm-council/internal/utils/daemon"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the LLM Council service",
	Long:  `Stop the running LLM Council backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			fmt.Printf("Failed to stop LLM Council service: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("LLM Council service (PID: %d) has been stopped\n", pid)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
