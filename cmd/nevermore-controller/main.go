package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "nevermore-controller",
		Short:        "Run the fan controller against a simulated BLE stack",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := configureLogger(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			return run(cmd.Context(), log, cfg)
		},
	}
	cmd.Flags().String("config", "", "path to YAML configuration")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, or error)")
	cmd.Flags().BoolP("verbose", "v", false, "debug logging (--log-level takes precedence)")
	return cmd
}

// configureLogger builds a logger from --log-level, falling back to
// --verbose, defaulting to info.
func configureLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level := logrus.InfoLevel

	levelStr, _ := cmd.Flags().GetString("log-level")
	if levelStr != "" {
		switch levelStr {
		case "debug":
			level = logrus.DebugLevel
		case "info":
			level = logrus.InfoLevel
		case "warn":
			level = logrus.WarnLevel
		case "error":
			level = logrus.ErrorLevel
		default:
			return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", levelStr)
		}
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return log, nil
}
