// Command clocksight reads the time shown on an analog clock photograph.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:     "clocksight",
	Short:   "Read the time off an analog clock photograph",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clocksight %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (trace, debug, info, warn, error); overrides CLOCKSIGHT_LOG_LEVEL")
	rootCmd.SetVersionTemplate("clocksight {{.Version}} (built " + BuildTime + ", commit " + GitCommit + ")\n")
	rootCmd.AddCommand(versionCmd)
}

// setupLogging configures logrus from the flag, the environment, or the
// warn-level default. Logs go to stderr so stdout stays clean for the
// decoded time.
func setupLogging() error {
	logrus.SetOutput(os.Stderr)

	level := logLevel
	if level == "" {
		level = os.Getenv("CLOCKSIGHT_LOG_LEVEL")
	}
	if level == "" {
		logrus.SetLevel(logrus.WarnLevel)
		return nil
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	return nil
}

func main() {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
