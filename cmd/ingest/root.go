package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/service"
)

// session is an open connection to the job store.
type session struct {
	jobs service.JobServiceInterface
	// defaults seeds submitted jobs for flags left unset.
	defaults domain.JobConfig
	close    func()
}

// openFunc opens a session on the job store.
type openFunc func(ctx context.Context, logLevel string) (*session, error)

type rootOptions struct {
	logLevel string
	open     openFunc
}

func newRootCmd(open openFunc) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Submit and inspect product and discount ingestion jobs",
		Long: `ingest talks to the ingestion job store.

Examples:
  ingest submit --mode products --workers 8 --chunk-size 500
  ingest submit --dry-run --wait
  ingest status ing-20250101-120000-1a2b3c4d
  ingest list --status failed --limit 10 --sort desc`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newSubmitCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	return cmd
}

// withSession opens a session for the duration of fn.
func (o *rootOptions) withSession(ctx context.Context, fn func(*session) error) error {
	s, err := o.open(ctx, o.logLevel)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
