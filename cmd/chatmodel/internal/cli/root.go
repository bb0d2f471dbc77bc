// Package cli implements the chatmodel command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/chatmodel-kit/internal/logging"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/settings"
)

const defaultSettingsPath = "chatmodel.yaml"

type globalOptions struct {
	settingsPath string
	envFile      string
	logLevel     string
	logJSON      bool
	noColor      bool
}

// NewRootCommand builds the chatmodel command.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "chatmodel",
		Short:         "Resolve chat model providers and configuration",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(opts.envFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.settingsPath, "settings", "s", defaultSettingsPath, "settings file (YAML)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before anything else")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	cmd.AddCommand(
		newResolveCommand(opts),
		newProvidersCommand(),
		newSettingsCommand(opts),
	)

	return cmd
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (o *globalOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   o.logLevel,
		JSON:    o.logJSON,
		NoColor: o.noColor,
	})
}

func (o *globalOptions) settingsSource() (*settings.FileSource, error) {
	return settings.LoadFile(o.settingsPath)
}
