package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ThotaNithin79/Billing-Application/internal/config"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/h2non/filetype"
)

const defaultPresignExpiryDuration = 30 * time.Minute

// Service stores stage attachments and hands back opaque reference strings.
// Callers store and forward the reference verbatim; its structure is an
// implementation detail of this package.
type Service interface {
	Upload(ctx context.Context, attachment *Attachment) (string, error)
	GetPresignedURL(ctx context.Context, reference string, stage types.AttachmentStage) (string, error)
	Exists(ctx context.Context, reference string, stage types.AttachmentStage) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.AttachmentsConfig
}

func NewService(config *config.Configuration) (Service, error) {
	if !config.Attachments.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(config.Attachments.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrSystem)
	}

	return &s3ServiceImpl{
		config: &config.Attachments,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (s *s3ServiceImpl) objectKey(reference string, stage types.AttachmentStage) string {
	if s.config.KeyPrefix != "" {
		return path.Join(s.config.KeyPrefix, stage.String(), reference)
	}
	return path.Join(stage.String(), reference)
}

// contentType sniffs the upload's media type from its bytes; the caller's
// claimed file name is never trusted for this.
func contentType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

func (s *s3ServiceImpl) Upload(ctx context.Context, attachment *Attachment) (string, error) {
	if err := attachment.Stage.Validate(); err != nil {
		return "", ierr.WithError(err).
			WithHint("Invalid attachment stage").
			Mark(ierr.ErrValidation)
	}
	if len(attachment.Data) == 0 {
		return "", ierr.NewError("attachment is empty").
			WithHint("Uploaded file has no content").
			Mark(ierr.ErrValidation)
	}

	cleanName := strings.ReplaceAll(path.Base(attachment.FileName), " ", "_")
	reference := fmt.Sprintf("%s_%s", types.GenerateShortIDWithPrefix("at"), cleanName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.objectKey(reference, attachment.Stage)),
		Body:        bytes.NewReader(attachment.Data),
		ContentType: aws.String(contentType(attachment.Data)),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to store attachment").
			Mark(ierr.ErrSystem)
	}

	return reference, nil
}

func (s *s3ServiceImpl) GetPresignedURL(ctx context.Context, reference string, stage types.AttachmentStage) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(reference, stage)),
	}, s3.WithPresignExpires(defaultPresignExpiryDuration))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate attachment URL").
			Mark(ierr.ErrSystem)
	}
	return req.URL, nil
}

func (s *s3ServiceImpl) Exists(ctx context.Context, reference string, stage types.AttachmentStage) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(reference, stage)),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}
