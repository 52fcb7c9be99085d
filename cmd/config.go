package cmd

import (
	"fmt"

	"github.com/inovacc/gameshelf/internal/config"
	"github.com/inovacc/gameshelf/internal/encoding"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gameshelf configuration",
	Long: `Commands for managing gameshelf configuration.

Available Commands:
  show    Print the effective configuration
  init    Write the default configuration file
  path    Print the configuration file path`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var (
	configShowYAML  bool
	configInitForce bool
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file, .env and
GAMESHELF_* environment variables have been applied, followed by the
deployment the client would use.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.configPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().BoolVar(&configShowYAML, "yaml", false, "Print as YAML instead of JSON")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	format := encoding.FormatJSON
	if configShowYAML {
		format = encoding.FormatYAML
	}

	data, err := encoding.Encode(format, app.cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "# %s\n", app.configPath)
	_, _ = fmt.Fprintln(out, string(data))

	resolved, err := app.cfg.Resolve(app.overrides)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nActive deployment: %s\n", resolved.Name)
	_, _ = fmt.Fprintf(out, "  API URL:    %s\n", resolved.BaseURL)
	_, _ = fmt.Fprintf(out, "  Capability: %s\n", resolved.Capability)
	_, _ = fmt.Fprintf(out, "  Timeout:    %s\n", resolved.Timeout)
	_, _ = fmt.Fprintf(out, "  Log level:  %s\n", resolved.LogLevel)

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if encoding.FileExists(app.configPath) && !configInitForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", app.configPath)
	}

	cfg := config.DefaultConfig()
	if err := config.Save(app.configPath, &cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", app.configPath)

	return nil
}
