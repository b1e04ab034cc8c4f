package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spiritx-ai/cricket-engine/internal/storage"
)

// newPlayersCmd creates the players subcommand.
func newPlayersCmd() *cobra.Command {
	var roleFilter string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List the stored player roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			records, err := eng.repo.List(cmd.Context())
			if err != nil {
				return err
			}

			for i := range records {
				records[i].Role = storage.ClassifyRole(records[i].TotalRuns, records[i].Wickets)
			}
			if roleFilter != "" {
				role := storage.ParseRole(roleFilter)
				filtered := records[:0]
				for _, rec := range records {
					if rec.Role == role {
						filtered = append(filtered, rec)
					}
				}
				records = filtered
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(records)
			}

			for _, rec := range records {
				roleColor(rec.Role).Printf("%-12s", rec.Role)
				fmt.Printf(" %-28s runs=%-5d wickets=%-3d price=%d\n",
					rec.Name, rec.TotalRuns, rec.Wickets, rec.BasePrice)
			}
			fmt.Printf("\n%d players\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&roleFilter, "role", "r", "", "filter by role (batsman, bowler, all-rounder)")
	return cmd
}

func roleColor(role storage.Role) *color.Color {
	switch role {
	case storage.RoleBatsman:
		return color.New(color.FgGreen)
	case storage.RoleBowler:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgMagenta)
	}
}
