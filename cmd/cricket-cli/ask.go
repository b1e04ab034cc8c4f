package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// newAskCmd creates the ask subcommand.
func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the chatbot engine a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			eng, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			var s *spinner.Spinner
			if !outputJSON && IsTerminal() {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = " thinking..."
				s.Start()
			}

			// The index is process-local, so populate it before answering.
			refreshErr := eng.collection.Refresh(cmd.Context())
			answer := eng.router.Answer(cmd.Context(), query)

			if s != nil {
				s.Stop()
			}
			if refreshErr != nil {
				logger.Warn().Err(refreshErr).Msg("collection refresh failed")
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"query":    query,
					"response": answer,
				})
			}
			fmt.Println(answer)
			return nil
		},
	}
	return cmd
}
