package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrusey/llm-council/internal/startup"
	"github.com/jbrusey/llm-council/internal/utils/daemon"
	"github.com/jbrusey/llm-council/internal/utils/signal"
)

var foreground bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the LLM Council service",
	Long:  `Start the LLM Council backend in foreground or as a daemon.`,
	Run: func(cmd *cobra.Command, args []string) {
		if daemon.IsRunning(pidFile) {
			fmt.Printf("LLM Council service is already running (PID file exists at %s)\n", pidFile)
			os.Exit(1)
		}

		// The daemonizer re-executes this command with the env var set
		isChild := os.Getenv("LLM_COUNCIL_DAEMON") == "1"

		if !foreground && !isChild {
			daemon.Daemonize(configPath, pidFile)
			return
		}

		application := startup.InitializeApplication(configPath)
		builder := startup.StartServer(application)

		if !foreground || isChild {
			daemon.WritePIDFile(pidFile)
			signal.RegisterCleanupFunc(func() {
				daemon.RemovePIDFile(pidFile)
			})
		}

		signal.HandleSignals(application, builder)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (not as daemon)")
}
