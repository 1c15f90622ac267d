package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/modal/internal/config"
	"github.com/zjrosen/modal/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the modal config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Long: `Write a commented config file with the default settings.

The file goes to the given path, the --config path, or
~/.config/modal/config.yaml. An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTarget(args)
		if err != nil {
			return err
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config value",
	Long: `Set one config value, keeping the comments in the file.

Examples:
  modal config set theme.normal "#5F87AF"
  modal config set watch.debounce 500ms
  modal config set tracing.enabled true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configTarget(nil)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configTarget(args []string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case cfgFile != "":
		return cfgFile, nil
	}
	path := paths.DefaultConfigPath()
	if path == "" {
		return "", fmt.Errorf("cannot determine config directory, pass a path")
	}
	return path, nil
}

// runConfigSet checks that key exists and that the resulting config is valid
// before touching the file.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	known := viper.New()
	setDefaults(known)
	if !slices.Contains(known.AllKeys(), key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	path, err := configTarget(nil)
	if err != nil {
		return err
	}

	v := viper.New()
	if _, err := readConfig(v, path, false); err != nil {
		return err
	}

	v.Set(key, value)
	var updated config.Config
	if err := v.Unmarshal(&updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := config.Validate(updated); err != nil {
		return err
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
	return nil
}
