// Package scheduler implements the scheduler command: run the sync pipeline
// on a cron schedule until interrupted.
package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"texsync/cmd/common"
	"texsync/internal/logger"
	"texsync/internal/pipeline"
)

// Command returns the scheduler command for use in the root command.
func Command() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run the sync pipeline on a schedule",
		Long: `Run the full fetch-then-upload pipeline on a cron schedule. The scheduler
runs continuously until interrupted with Ctrl+C.

The cookie store is a single-writer resource, so a tick that fires while a
previous run is still in flight is skipped, not queued.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if validateErr := deps.Config.Validate(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}

			return run(cmd, schedule, common.NewPipeline(deps), deps.Logger)
		},
	}

	cmd.Flags().StringVar(&schedule, "cron", "@daily",
		`cron expression for sync runs (e.g. "0 6 * * *")`)

	return cmd
}

// run starts the cron scheduler and blocks until the command context is done.
func run(cmd *cobra.Command, schedule string, p *pipeline.Pipeline, log logger.Interface) error {
	var busy sync.Mutex

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if !busy.TryLock() {
			log.Warn("Previous sync run still in flight, skipping tick")
			return
		}
		defer busy.Unlock()

		if _, runErr := p.Run(cmd.Context()); runErr != nil {
			log.Error("Scheduled sync run failed", "error", runErr)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	log.Info("Starting scheduler", "cron", schedule)
	c.Start()

	// Block until interrupt, then let any in-flight run finish.
	<-cmd.Context().Done()
	log.Info("Shutdown signal received, stopping scheduler")
	<-c.Stop().Done()

	log.Info("Scheduler stopped")
	return nil
}
