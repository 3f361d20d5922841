// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var r2Client *s3.Client
var r2Bucket string

// InitR2 configures the raw-page archive bucket. Archival is optional:
// when the R2 credentials are absent the archive becomes a no-op and the
// pipeline runs without it.
func InitR2() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	r2Bucket = os.Getenv("R2_BUCKET_NAME")

	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || r2Bucket == "" {
		log.Println("⚠️  R2 archive credentials not set, raw HTML archival disabled")
		r2Client = nil
		return nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	r2Client = s3.NewFromConfig(cfg)
	return nil
}

// ArchiveEnabled reports whether raw-page archival is configured.
func ArchiveEnabled() bool {
	return r2Client != nil
}

// ArchiveHTML stores a fetched page under raw/<date>/<page-slug>-<uuid>.html
// so markup drift on the upstream site can be diagnosed after the fact.
// Failures are logged, never propagated: archival must not break a scrape.
func ArchiveHTML(pageURL, html string) {
	if r2Client == nil {
		return
	}

	key := fmt.Sprintf("raw/%s/%s-%s.html",
		time.Now().In(Brussels()).Format("2006-01-02"),
		slug.Make(pageURL),
		uuid.NewString())

	_, err := r2Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(r2Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(html)),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		log.Printf("⚠️  [Archive] failed to archive %s: %v", pageURL, err)
	}
}
