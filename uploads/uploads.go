// Package uploads stores tool icons and screenshots in an S3-compatible
// bucket and hands back their public URLs.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config selects the bucket and how its objects are addressed publicly.
// Credentials come from the standard AWS config/credential chain.
type Config struct {
	Bucket  string
	Region  string
	Profile string
	// Prefix is prepended to every object key, e.g. "tools".
	Prefix string
	// PublicBaseURL is the host objects are served from
	// (e.g. a CDN or the bucket website endpoint), without trailing slash.
	PublicBaseURL string
	// UsePathStyle forces path-style addressing for S3-compatible
	// providers.
	UsePathStyle bool
}

// Uploader wraps the S3 client with the single operation this app needs.
type Uploader struct {
	client *s3.Client
	cfg    Config
}

// New creates an Uploader using the default AWS configuration chain with
// optional region/profile overrides.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("uploads: bucket not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("uploads: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Uploader{client: client, cfg: cfg}, nil
}

// Upload stores the file under a unique key derived from the original
// extension and returns its public URL. Uploads never overwrite: every
// key embeds a fresh UUID.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := u.objectKey(filename)

	in := &s3.PutObjectInput{
		Bucket:       aws.String(u.cfg.Bucket),
		Key:          aws.String(key),
		Body:         body,
		CacheControl: aws.String("max-age=3600"),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("uploads: put %s: %w", key, err)
	}
	return u.publicURL(key), nil
}

func (u *Uploader) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(u.cfg.Prefix, uuid.NewString()+ext)
}

func (u *Uploader) publicURL(key string) string {
	base := u.cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", u.cfg.Bucket)
	}
	return base + "/" + key
}
