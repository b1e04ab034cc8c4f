package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// newRefreshCmd creates the refresh subcommand.
func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the vector index from stored players",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			ui := NewUI(outputJSON, false)
			spinner := ui.Spinner("rebuilding index")

			err = eng.collection.Refresh(cmd.Context())
			if spinner != nil {
				spinner.SetTotal(100, true)
			}
			ui.Close()
			if err != nil {
				ui.Error("Refresh failed: %v", err)
				return err
			}

			count, err := eng.collection.Count(cmd.Context())
			if err != nil {
				return err
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"players": count,
				})
			}
			ui.Success("Index rebuilt with %d players", count)
			return nil
		},
	}
	return cmd
}
