package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/blockdrop/internal/api/response"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the preset starting boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PresetList

			if err := client.Get("/api/v1/presets", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
