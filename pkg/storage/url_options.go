package storage

import "time"

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	expiry time.Duration
	public bool
}

// DefaultURLExpiry is how long presigned URLs stay valid.
const DefaultURLExpiry = 15 * time.Minute

// WithExpiry sets the lifetime of a presigned URL. Non-positive values keep
// the default.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithPublic returns an unsigned URL. The object must be publicly readable.
func WithPublic() URLOption {
	return func(o *urlOptions) {
		o.public = true
	}
}

// WithSigned returns a presigned URL even when the bucket is configured as
// public-read.
func WithSigned() URLOption {
	return func(o *urlOptions) {
		o.public = false
	}
}
