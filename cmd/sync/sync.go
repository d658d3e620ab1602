// Package sync implements the sync command: one full fetch-then-upload run.
package sync

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texsync/cmd/common"
)

// Command returns the sync command for use in the root command.
func Command() *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the Overleaf PDF and upload it to SharePoint",
		Long: `Run the full pipeline: fetch the rendered PDF behind the configured
Overleaf share link, then upload it to the configured SharePoint document
library using the persisted browser session.

The two stages run strictly in sequence and the document is passed in memory;
a failure in either stage aborts the run without retries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if validateErr := deps.Config.Validate(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}

			result, runErr := common.NewPipeline(deps).Run(cmd.Context())
			if result != nil && result.Fetched && savePath != "" {
				// Debug aid: keep a local copy of whatever was fetched, even
				// when the upload stage failed afterwards.
				if writeErr := os.WriteFile(savePath, result.Document.Data, 0o644); writeErr != nil {
					deps.Logger.Warn("Failed to save local copy", "path", savePath, "error", writeErr)
				} else {
					deps.Logger.Info("Saved local copy", "path", savePath)
				}
			}
			if runErr != nil {
				if result != nil && result.Fetched {
					deps.Logger.Error("Document was fetched but not uploaded", "run_id", result.RunID)
				}
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "",
		"also write the fetched PDF to this path (debugging)")

	return cmd
}
