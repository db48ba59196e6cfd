package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"google.golang.org/api/option"
)

// Client archives objects to a Cloud Storage bucket under a fixed prefix.
type Client struct {
	client *storage.Client
	bucket types.GCSBucket
	prefix string
}

var _ interfaces.ObjectStorage = (*Client)(nil)

func New(ctx context.Context, bucket types.GCSBucket, prefix string, options ...option.ClientOption) (*Client, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bucket is empty")
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	return &Client{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (x *Client) Put(ctx context.Context, path string, contentType string, r io.Reader) error {
	name := x.prefix + path
	w := x.client.Bucket(x.bucket.String()).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", x.bucket),
			goerr.V("object", name),
		)
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", x.bucket),
			goerr.V("object", name),
		)
	}

	return nil
}

func (x *Client) Close() error {
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cloud Storage client")
	}
	return nil
}
