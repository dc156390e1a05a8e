package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	werrors "github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/internal/publish"
)

func publishCmd() *cobra.Command {
	var pagesDir string
	var bucket, region, key string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the route manifest to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := loadProjectRouter(pagesDir)
			if err != nil {
				return err
			}

			if bucket == "" {
				bucket = cfg.Publish.Bucket
			}
			if region == "" {
				region = cfg.Publish.Region
			}
			if key == "" {
				key = cfg.Publish.Key
			}
			if bucket == "" {
				return werrors.New("PB002")
			}

			client := s3.New(s3.Options{
				Region:      region,
				Credentials: envCredentials(),
			})

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			p := publish.NewPublisher(client, bucket, key, log)
			if err := p.Publish(context.Background(), r); err != nil {
				return err
			}

			success("published %d routes to s3://%s/%s", len(r.Routes()), bucket, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", "", "pages directory (overrides wayfind.json)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "destination bucket (overrides wayfind.json)")
	cmd.Flags().StringVar(&region, "region", "", "bucket region (overrides wayfind.json)")
	cmd.Flags().StringVar(&key, "key", "", "object key (overrides wayfind.json)")
	return cmd
}

// envCredentials resolves static credentials from the standard AWS
// environment variables. The full config loader is not linked to keep
// the CLI small; IAM-role and profile flows publish via CI instead.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "wayfind-env",
		}, nil
	})
}
