package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	sc "github.com/dmitrijs2005/docverifier/internal/server/config"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docverifier/internal/server/tracer"
	"github.com/google/uuid"
)

// Seams for tests.
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
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ErrNoAttachment is returned when a document has no stored scan.
var ErrNoAttachment = errors.New("document has no attachment")

// AttachmentService hands out presigned S3 URLs for document scans. Objects
// never pass through the server.
type AttachmentService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	pins        PinPolicy
	logger      logging.Logger
	tracer      tracer.Tracer
}

func NewAttachmentService(rm repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger, t tracer.Tracer) *AttachmentService {
	if t == nil {
		t = tracer.NewNoop()
	}
	return &AttachmentService{
		repomanager: rm,
		config:      cfg,
		pins:        PinPolicy{MinLength: cfg.MinPinLength},
		logger:      logger,
		tracer:      t,
	}
}

// StorageKey returns a fresh object key under the document's prefix.
func StorageKey(documentID string) string {
	return fmt.Sprintf("documents/%s/%v", documentID, uuid.New())
}

func (s *AttachmentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

// CreateUploadURL assigns a new storage key to the document and returns a
// presigned PUT URL for it.
func (s *AttachmentService) CreateUploadURL(ctx context.Context, documentID string) (key, url string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanPresign, tracer.String("document_id", documentID), tracer.String("method", "PUT"))
	defer func() { span.End(ignoreExpected(err)) }()

	docs := s.repomanager.Documents(s.repomanager.Conn())
	if _, err := docs.GetByDocumentID(ctx, documentID); err != nil {
		return "", "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key = StorageKey(documentID)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.AttachmentURLTTL))
	if err != nil {
		return "", "", err
	}

	if err := docs.SetAttachmentKey(ctx, documentID, key); err != nil {
		return "", "", err
	}

	s.logger.Info(ctx, "attachment upload url issued", "document_id", documentID, "key", key)
	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for the document's scan. Access
// follows the same PIN rules as verification.
func (s *AttachmentService) DownloadURL(ctx context.Context, documentID, pin string) (url string, ttl time.Duration, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanPresign, tracer.String("document_id", documentID), tracer.String("method", "GET"))
	defer func() { span.End(ignoreExpected(err)) }()

	doc, err := s.repomanager.Documents(s.repomanager.Conn()).GetByDocumentID(ctx, documentID)
	if err != nil {
		return "", 0, err
	}
	if err := s.pins.Check(doc, pin); err != nil {
		return "", 0, err
	}
	if doc.AttachmentKey == "" {
		return "", 0, fmt.Errorf("%w: %w", common.ErrorNotFound, ErrNoAttachment)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", 0, err
	}

	bucket := s.config.S3Bucket
	key := doc.AttachmentKey

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.AttachmentURLTTL))
	if err != nil {
		return "", 0, err
	}

	return req.URL, s.config.AttachmentURLTTL, nil
}
