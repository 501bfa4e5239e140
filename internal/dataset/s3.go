package dataset

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// S3Source reads the recipe dataset from an S3 object holding the same JSON
// array a FileSource would read from disk.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source builds an S3-backed source. Credentials and endpoint come
// from the default AWS config chain (environment or shared config).
func NewS3Source(ctx context.Context, bucket, key, region string) (*S3Source, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Source{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		key:    key,
	}, nil
}

// Name identifies the source in errors and logs.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Fetch downloads and decodes the dataset object.
func (s *S3Source) Fetch(ctx context.Context) ([]model.Recipe, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	var recipes []model.Recipe
	if err := json.NewDecoder(out.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("decode s3 object %s: %w", s.key, err)
	}
	return recipes, nil
}
