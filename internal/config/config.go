// Package config provides configuration management for texsync. Values come
// from environment variables (optionally a .env file) and an optional YAML
// config file, loaded once at process start into an explicit struct that is
// passed by reference into each stage.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"texsync/internal/constants"
)

// OverleafConfig holds fetch-stage settings.
type OverleafConfig struct {
	// ShareURL is the read-only share link for the project.
	ShareURL string `yaml:"share_url"`
	// RenderTimeout bounds the wait for server-side LaTeX compilation.
	RenderTimeout time.Duration `yaml:"render_timeout"`
}

// SharePointConfig holds upload-stage settings.
type SharePointConfig struct {
	// URL is the document library to upload into.
	URL string `yaml:"url"`
	// Username is the Microsoft account email.
	Username string `yaml:"username"`
	// Password is the Microsoft account password.
	Password string `yaml:"password"`
	// UploadTimeout bounds the wait for the upload confirmation marker.
	UploadTimeout time.Duration `yaml:"upload_timeout"`
}

// SessionConfig holds cookie-store settings.
type SessionConfig struct {
	// CookiesFile is the cookie store path.
	CookiesFile string `yaml:"cookies_file"`
}

// BrowserConfig holds browser settings shared by both stages.
type BrowserConfig struct {
	// Headless runs the browser without a window. Disable for debugging only.
	Headless bool `yaml:"headless"`
}

// ServerConfig holds httpd-mode settings.
type ServerConfig struct {
	// Address is the listen address.
	Address string `yaml:"address"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	// Level is the minimum log level.
	Level string `yaml:"level"`
	// Encoding is "console" or "json".
	Encoding string `yaml:"encoding"`
	// Development enables development-mode formatting.
	Development bool `yaml:"development"`
	// EnableColor enables colored console output.
	EnableColor bool `yaml:"enable_color"`
}

// Config is the complete application configuration. Immutable for the
// duration of a run.
type Config struct {
	Overleaf   OverleafConfig   `yaml:"overleaf"`
	SharePoint SharePointConfig `yaml:"sharepoint"`
	Session    SessionConfig    `yaml:"session"`
	Browser    BrowserConfig    `yaml:"browser"`
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
}

// Load builds a Config from the current viper state. Call after the root
// command has bound flags, environment variables, and defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Overleaf: OverleafConfig{
			ShareURL:      viper.GetString("overleaf.share_url"),
			RenderTimeout: viper.GetDuration("overleaf.render_timeout"),
		},
		SharePoint: SharePointConfig{
			URL:           viper.GetString("sharepoint.url"),
			Username:      viper.GetString("sharepoint.username"),
			Password:      viper.GetString("sharepoint.password"),
			UploadTimeout: viper.GetDuration("sharepoint.upload_timeout"),
		},
		Session: SessionConfig{
			CookiesFile: viper.GetString("session.cookies_file"),
		},
		Browser: BrowserConfig{
			Headless: viper.GetBool("browser.headless"),
		},
		Server: ServerConfig{
			Address: viper.GetString("server.address"),
		},
		Logger: LoggerConfig{
			Level:       viper.GetString("logger.level"),
			Encoding:    viper.GetString("logger.encoding"),
			Development: viper.GetBool("logger.development"),
			EnableColor: viper.GetBool("logger.enable_color"),
		},
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-value fields with defaults.
func (c *Config) applyDefaults() {
	if c.Overleaf.RenderTimeout <= 0 {
		c.Overleaf.RenderTimeout = constants.DefaultRenderTimeout
	}
	if c.SharePoint.UploadTimeout <= 0 {
		c.SharePoint.UploadTimeout = constants.DefaultUploadTimeout
	}
	if c.Session.CookiesFile == "" {
		c.Session.CookiesFile = constants.DefaultCookiesFile
	}
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "console"
	}
}

// ValidateFetch checks the settings the fetch stage needs.
func (c *Config) ValidateFetch() error {
	if c.Overleaf.ShareURL == "" {
		return errors.New("overleaf share URL must be specified (OVERLEAF_URL)")
	}
	if err := validateURL(c.Overleaf.ShareURL); err != nil {
		return fmt.Errorf("invalid overleaf share URL: %w", err)
	}
	return nil
}

// ValidateUpload checks the settings the upload stage needs.
func (c *Config) ValidateUpload() error {
	if c.SharePoint.URL == "" {
		return errors.New("sharepoint URL must be specified (SHAREPOINT_URL)")
	}
	if err := validateURL(c.SharePoint.URL); err != nil {
		return fmt.Errorf("invalid sharepoint URL: %w", err)
	}
	if c.SharePoint.Username == "" {
		return errors.New("sharepoint username must be specified (MICROSOFT_USERNAME)")
	}
	if c.SharePoint.Password == "" {
		return errors.New("sharepoint password must be specified (MICROSOFT_PASSWORD)")
	}
	if c.Session.CookiesFile == "" {
		return errors.New("cookie store path must be specified (COOKIES_FILE)")
	}
	return nil
}

// Validate checks the full sync configuration.
func (c *Config) Validate() error {
	if err := c.ValidateFetch(); err != nil {
		return err
	}
	if err := c.ValidateUpload(); err != nil {
		return err
	}
	if !constants.ValidLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logger.Level)
	}
	return nil
}

// validateURL checks that raw parses as an absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
