// Package cmd implements the command-line interface for texsync.
// It provides the root command and subcommands for syncing an Overleaf
// project's rendered PDF into a SharePoint document library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"texsync/cmd/cookies"
	"texsync/cmd/fetch"
	"texsync/cmd/httpd"
	cmdscheduler "texsync/cmd/scheduler"
	cmdsync "texsync/cmd/sync"
	"texsync/cmd/upload"
	"texsync/internal/browser"
	"texsync/internal/constants"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// rootCmd represents the root command for the texsync CLI.
	rootCmd = &cobra.Command{
		Use:   "texsync",
		Short: "Sync an Overleaf project's PDF to SharePoint",
		Long: `texsync fetches the rendered PDF behind an Overleaf read-only share link
and uploads it to a SharePoint document library, reusing a persisted browser
session so interactive login is only needed when the session expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags before initConfig so --config, --debug, and --headed are
	// visible to configuration loading; cobra re-parses during execution.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("headed", false, "run the browser with a visible window (debugging)")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", constants.DefaultAppName, constants.DefaultAppVersion)
		},
	})

	// Add install command (downloads the Playwright driver + Chromium)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install the browser driver",
		Long:  `Download the Playwright driver and the Chromium build texsync automates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return browser.Install()
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdsync.Command())
	rootCmd.AddCommand(fetch.Command())
	rootCmd.AddCommand(upload.Command())
	rootCmd.AddCommand(cookies.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
	rootCmd.AddCommand(httpd.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// Enable automatic environment variable reading before setting defaults
	// so environment variables take precedence over defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; environment variables alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindFlags(); err != nil {
		return err
	}
	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
		viper.Set("logger.enable_color", true)
	}
	if viper.GetBool("headed") {
		viper.Set("browser.headless", false)
	}

	return nil
}

// bindFlags binds command-line flags to viper.
func bindFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("headed", rootCmd.PersistentFlags().Lookup("headed")); err != nil {
		return fmt.Errorf("failed to bind headed flag: %w", err)
	}
	return nil
}

// bindEnvVars maps the flat environment variable names used in deployments to
// config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"overleaf.share_url":        {"OVERLEAF_URL"},
		"overleaf.render_timeout":   {"RENDER_TIMEOUT"},
		"sharepoint.url":            {"SHAREPOINT_URL"},
		"sharepoint.username":       {"MICROSOFT_USERNAME"},
		"sharepoint.password":       {"MICROSOFT_PASSWORD"},
		"sharepoint.upload_timeout": {"UPLOAD_TIMEOUT"},
		"session.cookies_file":      {"COOKIES_FILE"},
		"browser.headless":          {"HEADLESS"},
		"server.address":            {"HTTPD_ADDR"},
		"logger.level":              {"LOG_LEVEL"},
		"logger.encoding":           {"LOG_FORMAT"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("overleaf", map[string]any{
		"render_timeout": constants.DefaultRenderTimeout.String(),
	})

	viper.SetDefault("sharepoint", map[string]any{
		"upload_timeout": constants.DefaultUploadTimeout.String(),
	})

	viper.SetDefault("session", map[string]any{
		"cookies_file": constants.DefaultCookiesFile,
	})

	viper.SetDefault("browser", map[string]any{
		"headless": true,
	})

	viper.SetDefault("server", map[string]any{
		"address": constants.DefaultServerAddress,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"encoding":     "console",
		"development":  false,
		"enable_color": false,
	})
}
