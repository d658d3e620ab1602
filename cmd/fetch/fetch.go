// Package fetch implements the fetch command: retrieve the rendered PDF
// without uploading it.
package fetch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texsync/cmd/common"
)

// Command returns the fetch command for use in the root command.
func Command() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the rendered PDF from the Overleaf share link",
		Long: `Fetch the rendered PDF behind the configured Overleaf share link and write
it to disk. Waits for server-side LaTeX compilation to finish before
triggering the export, which can take up to the configured render timeout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if validateErr := deps.Config.ValidateFetch(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}

			doc, err := common.NewFetcher(deps).Fetch(cmd.Context(), deps.Config.Overleaf.ShareURL)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = doc.Name
			}
			if writeErr := os.WriteFile(path, doc.Data, 0o644); writeErr != nil {
				return fmt.Errorf("failed to write %s: %w", path, writeErr)
			}

			deps.Logger.Info("Wrote fetched document", "path", path, "bytes", doc.Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output path (default is the download's suggested filename)")

	return cmd
}
