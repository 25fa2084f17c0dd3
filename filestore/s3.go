package filestore

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const defaultRegion = "us-west-1"

type S3AssetStore struct {
	bucket   string
	endpoint string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3AssetStore(bucket, endpoint string) (*S3AssetStore, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}

	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3AssetStore{
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(session.Must(sess, err)),
	}, nil
}

func (s *S3AssetStore) EnsureBucket(ctx context.Context) error {
	_, err := s.svc.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Creation of an existing bucket is not a failure, we just reuse it.
		var aerr awserr.Error
		if !asAWSError(err, &aerr) {
			return err
		}
		switch aerr.Code() {
		case s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou:
		default:
			return err
		}
	}

	// Uploaded images must be directly linkable without additional
	// authorization.
	_, err = s.svc.PutBucketAclWithContext(ctx, &s3.PutBucketAclInput{
		Bucket: aws.String(s.bucket),
		ACL:    aws.String("public-read"),
	})
	return err
}

func (s *S3AssetStore) Put(ctx context.Context, key string, body io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	return err
}

func (s *S3AssetStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if asAWSError(err, &aerr) && (aerr.Code() == "NotFound" || aerr.Code() == s3.ErrCodeNoSuchKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3AssetStore) Delete(ctx context.Context, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3AssetStore) List(ctx context.Context) ([]Object, error) {
	var objects []Object
	err := s.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.StringValue(obj.Key),
				Size:         aws.Int64Value(obj.Size),
				LastModified: aws.TimeValue(obj.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func (s *S3AssetStore) PublicURL(key string) string {
	return s.endpoint + "/" + s.bucket + "/" + key
}

func asAWSError(err error, target *awserr.Error) bool {
	aerr, ok := err.(awserr.Error)
	if ok {
		*target = aerr
	}
	return ok
}
