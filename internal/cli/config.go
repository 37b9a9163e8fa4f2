package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nlgen configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Display the configuration after defaults, config file, environment variables and flags are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := *root.cfg
			if shown.Telegram.BotToken != "" {
				shown.Telegram.BotToken = "<redacted>"
			}

			yamlData, err := yaml.Marshal(shown)
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(yamlData))
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
