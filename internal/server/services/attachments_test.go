package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPresign replaces the AWS seams for the duration of the test and
// records the object keys it was asked to sign.
func stubPresign(t *testing.T) *[]string {
	t.Helper()

	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	var keys []string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000/" {
			t.Fatalf("BaseEndpoint not applied")
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		keys = append(keys, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3.local/put/" + *in.Key}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		keys = append(keys, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3.local/get/" + *in.Key}, nil
	}
	return &keys
}

func newAttachmentSvc(t *testing.T, docs ...*models.Document) *AttachmentService {
	t.Helper()
	return NewAttachmentService(repomanager.NewMemoryRepositoryManager(docs...), testConfig(), logging.NewNop(), nil)
}

func TestAttachments_UploadThenDownload(t *testing.T) {
	keys := stubPresign(t)
	svc := newAttachmentSvc(t, &models.Document{DocumentID: "DOC001", Status: models.StoredValid})
	ctx := context.Background()

	key, url, err := svc.CreateUploadURL(ctx, "DOC001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "documents/DOC001/"))
	assert.Equal(t, "https://s3.local/put/"+key, url)

	got, ttl, err := svc.DownloadURL(ctx, "DOC001", "")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/"+key, got)
	assert.Equal(t, testConfig().AttachmentURLTTL, ttl)
	assert.Equal(t, []string{key, key}, *keys)
}

func TestAttachments_DownloadWithoutAttachment(t *testing.T) {
	stubPresign(t)
	svc := newAttachmentSvc(t, &models.Document{DocumentID: "DOC001", Status: models.StoredValid})

	_, _, err := svc.DownloadURL(context.Background(), "DOC001", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, err, ErrNoAttachment)
}

func TestAttachments_DownloadRespectsPin(t *testing.T) {
	stubPresign(t)
	svc := newAttachmentSvc(t, &models.Document{DocumentID: "DOC001", Status: models.StoredValid, AttachmentKey: "k"})

	_, _, err := svc.DownloadURL(context.Background(), "DOC001", "12")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAttachments_UnknownDocument(t *testing.T) {
	stubPresign(t)
	svc := newAttachmentSvc(t)

	_, _, err := svc.CreateUploadURL(context.Background(), "NOPE")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAttachments_ConfigLoadError(t *testing.T) {
	stubPresign(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	svc := newAttachmentSvc(t, &models.Document{DocumentID: "DOC001", AttachmentKey: "k"})

	_, _, err := svc.CreateUploadURL(context.Background(), "DOC001")
	require.EqualError(t, err, "load-fail")

	_, _, err = svc.DownloadURL(context.Background(), "DOC001", "")
	require.EqualError(t, err, "load-fail")
}

func TestAttachments_PresignPutError(t *testing.T) {
	stubPresign(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}
	svc := newAttachmentSvc(t, &models.Document{DocumentID: "DOC001"})

	_, _, err := svc.CreateUploadURL(context.Background(), "DOC001")
	require.EqualError(t, err, "presign-put-fail")

	doc, err := svc.repomanager.Documents(nil).GetByDocumentID(context.Background(), "DOC001")
	require.NoError(t, err)
	assert.Empty(t, doc.AttachmentKey, "key must not be stored when signing fails")
}
