package storage

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrInvalidKey    = errors.New("storage: invalid object key")
	ErrNotFound      = errors.New("storage: object not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrPresignFailed = errors.New("storage: presign failed")
)

// classify joins err with the sentinel matching its S3 error code, or with
// fallback when the code is not recognized.
func classify(err, fallback error) error {
	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return errors.Join(ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return errors.Join(ErrNotFound, err)
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errors.Join(ErrAccessDenied, err)
		}
	}

	return errors.Join(fallback, err)
}
