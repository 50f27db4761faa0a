package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const connectTimeout = 5 * time.Second

type Config struct {
	Host       string `envconfig:"HOST"` // localhost:9000
	Region     string `envconfig:"REGION" default:"us-east-1"`
	AccessKey  string `envconfig:"ACCESS_KEY"`
	SecretKey  string `envconfig:"SECRET_KEY"`
	Bucket     string `envconfig:"BUCKET" default:"horoscope"`
	UseSSL     bool   `envconfig:"USE_SSL" default:"false"`
	RulesetKey string `envconfig:"RULESET_KEY" default:"ruleset/ruleset.yaml"`
}

// Enabled false - набор текстов берётся только из бинаря
func (c *Config) Enabled() bool {
	return c != nil && c.Host != ""
}

func (c *Config) options() *minio.Options {
	return &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
		Region: c.Region,
	}
}

// Connect создаёт клиент MinIO и убеждается, что бакет существует
func (c *Config) Connect(ctx context.Context) (*minio.Client, error) {
	client, err := minio.New(c.Host, c.options())
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, c.Bucket)
	switch {
	case err != nil:
		return nil, fmt.Errorf("check bucket %s: %w", c.Bucket, err)
	case !exists:
		return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
	}
	return client, nil
}
