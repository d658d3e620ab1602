// Package cookies implements commands for inspecting the persisted browser
// session. Cookie values are masked; the store carries live credentials.
package cookies

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"texsync/cmd/common"
	"texsync/internal/session"
)

// Command returns the cookies command group for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookies",
		Short: "Inspect the persisted browser session",
		Long: `The cookies command group inspects the cookie store that carries the
SharePoint session between runs.`,
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

// newListCommand creates the list command.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cookies in the store",
		Long: `List the cookies in the configured store in a table. Values are masked;
this command is for checking which session cookies exist and when they
expire, not for extracting them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			store := session.NewStore(deps.Config.Session.CookiesFile, deps.Logger)
			cookies, err := store.Load()
			if err != nil {
				return err
			}

			if len(cookies) == 0 {
				deps.Logger.Info("Cookie store is empty")
				return nil
			}

			renderTable(cookies)
			return nil
		},
	}
}

// newPathCommand creates the path command.
func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cookie store location",
		Long: `Print the configured cookie store path. Useful when seeding the store for
a first run from a manually exported browser session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			fmt.Println(deps.Config.Session.CookiesFile)
			return nil
		},
	}
}

// renderTable formats and displays the cookie set in a table.
func renderTable(cookies []session.Cookie) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "Domain", "Path", "Expires", "Secure", "HttpOnly"})

	for i := range cookies {
		t.AppendRow(table.Row{
			cookies[i].Name,
			cookies[i].Domain,
			cookies[i].Path,
			formatExpiry(cookies[i].Expires),
			cookies[i].Secure,
			cookies[i].HTTPOnly,
		})
	}

	t.Render()
}

// formatExpiry renders a cookie expiry; non-positive means a session cookie.
func formatExpiry(expires float64) string {
	if expires <= 0 {
		return "session"
	}
	return time.Unix(int64(expires), 0).UTC().Format(time.RFC3339)
}
