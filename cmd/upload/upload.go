// Package upload implements the upload command: deliver an existing local
// file to SharePoint without fetching.
package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"texsync/cmd/common"
	"texsync/internal/domain"
)

// Command returns the upload command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a local file to the SharePoint document library",
		Long: `Upload a local file to the configured SharePoint document library using the
persisted browser session. The destination filename gets a Unix-timestamp
suffix so repeated uploads never collide.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if validateErr := deps.Config.ValidateUpload(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			doc := &domain.Document{
				Name: filepath.Base(args[0]),
				Data: data,
			}
			return common.NewUploader(deps).Upload(cmd.Context(), doc)
		},
	}
}
