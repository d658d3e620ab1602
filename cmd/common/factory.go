package common

import (
	"fmt"

	"texsync/internal/browser"
	"texsync/internal/config"
	"texsync/internal/fetcher"
	"texsync/internal/logger"
	"texsync/internal/pipeline"
	"texsync/internal/session"
	"texsync/internal/uploader"
)

// NewCommandDeps creates CommandDeps by loading config and creating a logger.
// This consolidates the common initialization code across commands.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logger.Level),
		Development: cfg.Logger.Development,
		Encoding:    cfg.Logger.Encoding,
		EnableColor: cfg.Logger.EnableColor,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// NewFetcher constructs the fetch stage from the loaded configuration.
func NewFetcher(deps CommandDeps) *fetcher.Fetcher {
	return fetcher.New(
		browser.NewLauncher(deps.Logger),
		fetcher.Config{
			RenderTimeout: deps.Config.Overleaf.RenderTimeout,
			Headless:      deps.Config.Browser.Headless,
		},
		deps.Logger,
	)
}

// NewUploader constructs the upload stage from the loaded configuration.
func NewUploader(deps CommandDeps) *uploader.Uploader {
	store := session.NewStore(deps.Config.Session.CookiesFile, deps.Logger)
	return uploader.New(
		browser.NewLauncher(deps.Logger),
		store,
		uploader.Config{
			DestinationURL: deps.Config.SharePoint.URL,
			UploadTimeout:  deps.Config.SharePoint.UploadTimeout,
			Headless:       deps.Config.Browser.Headless,
		},
		uploader.Credentials{
			Username: deps.Config.SharePoint.Username,
			Password: deps.Config.SharePoint.Password,
		},
		deps.Logger,
	)
}

// NewPipeline constructs the full fetch-then-upload pipeline.
func NewPipeline(deps CommandDeps) *pipeline.Pipeline {
	return pipeline.New(
		NewFetcher(deps),
		NewUploader(deps),
		deps.Config.Overleaf.ShareURL,
		deps.Logger,
	)
}
