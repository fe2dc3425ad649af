package cli

import (
	"fmt"
	"strings"

	"github.com/billie-coop/nimbus/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, manager, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", manager.Path())
		_, err = out.Write(data)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long:  "Change one configuration value. Keys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, manager, err := loadConfig()
		if err != nil {
			return err
		}
		if err := manager.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
