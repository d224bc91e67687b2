package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/logging"
	sc "github.com/dmitrijs2005/ufind/internal/server/config"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UploadURLValidity is how long a presigned upload URL stays usable.
const UploadURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload is where a client should PUT an item picture.
type ImageUpload struct {
	Key string
	URL string
}

type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *ImageService {
	return &ImageService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "images"),
		now:         time.Now,
	}
}

// imageKey builds items/yyyy/mm/dd/<uuid>.
func imageKey(d time.Time) string {
	return fmt.Sprintf("items/%04d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// RequestUpload presigns a PUT for a new object and records its key as the
// item's image reference. The item must exist.
func (s *ImageService) RequestUpload(ctx context.Context, itemID string) (*ImageUpload, error) {
	repo := s.repomanager.Items(s.db)

	if _, err := repo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, itemNotFound(itemID)
		}
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	now := s.now().UTC()
	bucket := s.config.S3Bucket
	key := imageKey(now)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(UploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	// The key is recorded before the client uploads. An abandoned upload
	// leaves it pointing at no object.
	if err := repo.SetImage(ctx, itemID, key, now); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, itemNotFound(itemID)
		}
		return nil, err
	}

	s.logger.Info(ctx, "image upload presigned", "item_id", itemID, "key", key)
	return &ImageUpload{Key: key, URL: req.URL}, nil
}
