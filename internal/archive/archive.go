package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the archiver needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver uploads the final bracket document of a completed tournament.
// A nil *Archiver is valid and does nothing.
type Archiver struct {
	client PutObjectAPI
	bucket string
}

func New(client PutObjectAPI, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// NewFromConfig loads the default AWS credential chain. It returns nil when
// no bucket is configured.
func NewFromConfig(ctx context.Context, bucket, region string) (*Archiver, error) {
	if bucket == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return New(client, bucket), nil
}

func Key(tournamentID string) string {
	return "brackets/" + tournamentID + ".json"
}

func (a *Archiver) Upload(ctx context.Context, tournament *bracket.Tournament) error {
	if a == nil || tournament.Bracket == nil {
		return nil
	}

	body, err := json.Marshal(tournament)
	if err != nil {
		return fmt.Errorf("marshal bracket: %w", err)
	}

	key := Key(tournament.ID.String())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	slog.Info("bracket archived", "bucket", a.bucket, "key", key)
	return nil
}
