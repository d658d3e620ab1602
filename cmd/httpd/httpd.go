// Package httpd implements the httpd command: a small HTTP server that
// triggers sync runs remotely and reports liveness.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"texsync/cmd/common"
	"texsync/internal/constants"
	"texsync/internal/logger"
	"texsync/internal/pipeline"
)

// Command returns the httpd command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve an HTTP trigger for sync runs",
		Long: `Start an HTTP server exposing POST /sync to trigger a full fetch-then-upload
run and GET /health for liveness checks. Runs are serialized: the cookie store
is a single-writer resource, so a request arriving while a run is in flight
gets 409 Conflict.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if validateErr := deps.Config.Validate(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}

			return serve(cmd.Context(), deps.Config.Server.Address, common.NewPipeline(deps), deps.Logger)
		},
	}
}

// serve runs the HTTP server until ctx is done.
func serve(ctx context.Context, address string, p *pipeline.Pipeline, log logger.Interface) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	var busy sync.Mutex

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/sync", func(c *gin.Context) {
		if !busy.TryLock() {
			c.JSON(http.StatusConflict, gin.H{"error": "a sync run is already in flight"})
			return
		}
		defer busy.Unlock()

		result, runErr := p.Run(c.Request.Context())
		if runErr != nil {
			status := http.StatusBadGateway
			body := gin.H{"error": runErr.Error()}
			if result != nil {
				body["run_id"] = result.RunID
				body["fetched"] = result.Fetched
				body["uploaded"] = result.Uploaded
			}
			c.JSON(status, body)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"run_id":   result.RunID,
			"name":     result.Document.Name,
			"bytes":    result.Document.Size(),
			"duration": result.Duration.String(),
		})
	})

	srv := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  constants.DefaultServerReadTimeout,
		WriteTimeout: constants.DefaultServerWriteTimeout,
		IdleTimeout:  constants.DefaultServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server terminated: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Info("HTTP server stopped")
	return nil
}
