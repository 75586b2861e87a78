package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/service"
)

const defaultWaitInterval = time.Second

func newSubmitCmd(root *rootOptions) *cobra.Command {
	cfg := domain.DefaultJobConfig()
	var (
		mode         string
		wait         bool
		waitInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create a pending ingestion job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Mode = domain.IngestMode(mode)
			return root.withSession(cmd.Context(), func(s *session) error {
				if !cmd.Flags().Changed("workers") {
					cfg.Workers = s.defaults.Workers
				}
				if !cmd.Flags().Changed("chunk-size") {
					cfg.ChunkSize = s.defaults.ChunkSize
				}
				job, err := s.jobs.CreateJob(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				if wait {
					job, err = waitForJob(cmd.Context(), s.jobs, job.ID, waitInterval)
					if err != nil {
						return err
					}
				}
				return printJSON(cmd.OutOrStdout(), job)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&mode, "mode", string(cfg.Mode), "files to ingest (products, discounts, all)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent workers (default from WORKER_POOL_SIZE)")
	flags.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "discount batch size per worker (default from BATCH_SIZE)")
	flags.IntVar(&cfg.Retries, "retries", cfg.Retries, "retries per record after the first attempt")
	flags.BoolVar(&cfg.FailFast, "fail-fast", false, "abort the job on the first failed record")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "count lines without writing records")
	flags.BoolVar(&wait, "wait", false, "block until the job reaches a terminal status")
	flags.DurationVar(&waitInterval, "wait-interval", defaultWaitInterval, "status poll interval used with --wait")
	return cmd
}

// waitForJob polls the job until it is terminal or ctx ends.
func waitForJob(ctx context.Context, svc service.JobServiceInterface, id string, interval time.Duration) (*domain.IngestionJob, error) {
	if interval <= 0 {
		interval = defaultWaitInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := svc.GetStatus(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.IsTerminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for job %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func newStatusCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the progress snapshot of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withSession(cmd.Context(), func(s *session) error {
				job, err := s.jobs.GetStatus(cmd.Context(), args[0])
				if errors.Is(err, domain.ErrJobNotFound) {
					return fmt.Errorf("job %s not found", args[0])
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), job)
			})
		},
	}
}

func newListCmd(root *rootOptions) *cobra.Command {
	var (
		status string
		filter domain.JobFilter
		sort   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs ordered by start time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" {
				s, err := domain.ParseJobStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &s
			}
			switch domain.SortOrder(sort) {
			case domain.SortAsc, domain.SortDesc:
				filter.Sort = domain.SortOrder(sort)
			default:
				return fmt.Errorf("invalid sort order %q", sort)
			}

			return root.withSession(cmd.Context(), func(s *session) error {
				jobs, err := s.jobs.ListJobs(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if jobs == nil {
					jobs = []*domain.IngestionJob{}
				}
				return printJSON(cmd.OutOrStdout(), jobs)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&status, "status", "", "only jobs in this status (pending, started, completed, failed)")
	flags.IntVar(&filter.Limit, "limit", domain.DefaultListLimit, "page size")
	flags.IntVar(&filter.Offset, "offset", 0, "rows to skip")
	flags.StringVar(&sort, "sort", string(domain.SortAsc), "sort by start time (asc, desc)")
	return cmd
}
