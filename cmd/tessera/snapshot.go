package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/tessera-ui/tessera/internal/config"
	"github.com/tessera-ui/tessera/pkg/snapshot"
)

func snapshotCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Publish a static snapshot of the demo page",
		Long: `Render the demo dashboard and publish the markup.

The snapshot target comes from tessera.json: a local directory path,
or an s3://bucket/prefix URL to upload to S3.

Examples:
  tessera snapshot
  tessera snapshot --name=home`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "index", "Snapshot name")

	return cmd
}

func runSnapshot(ctx context.Context, name string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	pub, err := newPublisher(cfg)
	if err != nil {
		return err
	}

	html, err := snapshot.Render(demoInstance(0, 0))
	if err != nil {
		return err
	}

	loc, err := pub.Publish(ctx, name, html)
	if err != nil {
		return err
	}

	success("published %s", loc)
	return nil
}

// newPublisher builds the configured snapshot publisher.
func newPublisher(cfg *config.Config) (snapshot.Publisher, error) {
	if bucket, prefix, ok := cfg.S3Target(); ok {
		client := s3.New(s3.Options{Region: cfg.Snapshot.Region})
		return snapshot.NewS3(client, bucket, prefix), nil
	}
	return snapshot.NewDir(cfg.Snapshot.Target)
}
