package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// newImportCmd creates the import subcommand.
func newImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a player dataset from CSV",
		Long: `Import reads a player dataset CSV, upserts every row into the store,
re-classifies roles from the imported stats, and rebuilds the vector index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			ui := NewUI(outputJSON, false)
			defer ui.Close()

			var bar *progressbar.ProgressBar
			progress := func(done, total int) {
				if outputJSON || !IsTerminal() {
					return
				}
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("importing players"),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				_ = bar.Set(done)
			}

			count, err := eng.pipeline.ImportCSV(cmd.Context(), file, progress)
			if err != nil {
				ui.Error("Import failed: %v", err)
				return err
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"imported": count,
					"file":     file,
				})
			}
			ui.Success("Imported %d players from %s", count, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the CSV dataset")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return cmd
}
