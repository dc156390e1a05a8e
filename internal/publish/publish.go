// Package publish uploads a router's compiled manifest to S3 so edge
// deployments can consume the route table without scanning the pages
// tree themselves.
package publish

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// ObjectPutter is the slice of the S3 client the publisher needs.
// *s3.Client satisfies it; tests substitute a fake.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher writes route manifests to a bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
	key    string
	log    *slog.Logger
}

// NewPublisher creates a publisher for the bucket and object key. A nil
// logger falls back to slog.Default.
func NewPublisher(client ObjectPutter, bucket, key string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{client: client, bucket: bucket, key: key, log: log}
}

// Publish snapshots the router and uploads the manifest JSON.
func (p *Publisher) Publish(ctx context.Context, r *router.Router) error {
	if p.bucket == "" {
		return errors.New("PB002")
	}

	manifest := router.BuildManifest(r)
	data, err := manifest.JSON()
	if err != nil {
		return errors.New("PB001").Wrap(err)
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"route-count": strconv.Itoa(len(manifest.Routes)),
		},
	})
	if err != nil {
		return errors.New("PB001").
			WithDetail("s3 upload to " + p.bucket + "/" + p.key + " failed").
			Wrap(err)
	}

	p.log.Info("route manifest published",
		"bucket", p.bucket,
		"key", p.key,
		"routes", len(manifest.Routes),
		"bytes", len(data),
	)
	return nil
}
