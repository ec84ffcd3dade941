package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectOptions configure an S3-compatible cache object
type ObjectOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Key       string
	UseSSL    bool
}

// ObjectCache stores the record set as a single object so several hosts can
// share one cache. Freshness is the object's LastModified.
type ObjectCache struct {
	api    *minio.Client
	bucket string
	key    string
	now    func() time.Time
}

// NewObjectCache connects to the object store
func NewObjectCache(opts ObjectOptions) (*ObjectCache, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("object cache needs an endpoint and a bucket")
	}
	if opts.Key == "" {
		opts.Key = "projects-cache.json"
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &ObjectCache{
		api:    client,
		bucket: opts.Bucket,
		key:    opts.Key,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source, for tests
func (c *ObjectCache) WithClock(now func() time.Time) *ObjectCache {
	c.now = now
	return c
}

// ReadAll returns the cached records. A missing or corrupt object reads as empty.
func (c *ObjectCache) ReadAll(ctx context.Context) domain.Records {
	obj, err := c.api.GetObject(ctx, c.bucket, c.key, minio.GetObjectOptions{})
	if err != nil {
		log.Printf("[cache] get %s/%s failed, treating as empty: %v", c.bucket, c.key, err)
		return domain.Records{}
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			log.Printf("[cache] read %s/%s failed, treating as empty: %v", c.bucket, c.key, err)
		}
		return domain.Records{}
	}

	records, err := decodeRecords(data)
	if err != nil {
		log.Printf("[cache] %s/%s is corrupt, treating as empty: %v", c.bucket, c.key, err)
		return domain.Records{}
	}
	return records
}

// WriteAll replaces the cache object with records
func (c *ObjectCache) WriteAll(ctx context.Context, records domain.Records) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	_, err = c.api.PutObject(ctx, c.bucket, c.key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put cache object: %w", err)
	}
	return nil
}

// LastModified returns the object's modification time, if it exists
func (c *ObjectCache) LastModified(ctx context.Context) (time.Time, bool) {
	info, err := c.api.StatObject(ctx, c.bucket, c.key, minio.StatObjectOptions{})
	if err != nil {
		return time.Time{}, false
	}
	return info.LastModified, true
}

// IsStale reports whether the object is at least threshold old. A missing object is stale.
func (c *ObjectCache) IsStale(ctx context.Context, threshold time.Duration) bool {
	modified, ok := c.LastModified(ctx)
	if !ok {
		return true
	}
	return c.now().Sub(modified) >= threshold
}
