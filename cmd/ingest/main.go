package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/Resumelens/internal/app"
	"github.com/markdave123-py/Resumelens/internal/config"
	"github.com/markdave123-py/Resumelens/internal/core/intake_engine"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	root := &cobra.Command{
		Use:          "resumelens",
		Short:        "Resume document ingestion pipeline",
		SilenceUsage: true,
	}
	root.AddCommand(ingestCmd(ctx), purgeCmd(ctx))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func ingestCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file|archive.zip> [file...]",
		Short: "Sanitize uploads and recover text from every document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(ctx, config.LoadConfig())
			if err != nil {
				return fmt.Errorf("startup failed: %w", err)
			}
			defer application.Close()

			uploads := make([]intake_engine.Upload, 0, len(args))
			for _, arg := range args {
				data, err := os.ReadFile(arg)
				if err != nil {
					return fmt.Errorf("read %s: %w", arg, err)
				}
				uploads = append(uploads, intake_engine.Upload{
					Name: filepath.Base(arg),
					Data: data,
				})
			}

			sessionID, paths, err := application.Ingest.SanitizeIntake(ctx, uploads)
			if err != nil {
				return err
			}
			log.Printf("processing %d files for session %s", len(paths), sessionID)

			records, err := application.Ingest.ProcessBatch(ctx, paths)
			if err != nil {
				return err
			}

			out := struct {
				SessionID string `json:"session_id"`
				Records   any    `json:"records"`
			}{SessionID: sessionID, Records: records}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func purgeCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <session-id>",
		Short: "Delete a session's files and repository rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(ctx, config.LoadConfig())
			if err != nil {
				return fmt.Errorf("startup failed: %w", err)
			}
			defer application.Close()

			return application.Ingest.PurgeSession(ctx, args[0])
		},
	}
}
