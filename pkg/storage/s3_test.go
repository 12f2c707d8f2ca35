package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Bucket:    "culturemesh-images",
		Region:    "us-west-2",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults region", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Region = ""
		store, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, DefaultRegion, store.cfg.Region)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		_, err := New(Config{})
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorContains(t, err, "bucket is required")
		require.ErrorContains(t, err, "secret key")
	})
}

func TestS3_URL_Presigned(t *testing.T) {
	t.Parallel()

	store, err := New(testConfig())
	require.NoError(t, err)

	raw, err := store.URL(context.Background(), "/users/42/avatar.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "culturemesh-images.s3.us-west-2.amazonaws.com", u.Host)
	require.Equal(t, "/users/42/avatar.png", u.Path)
	require.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	raw, err = store.URL(context.Background(), "users/42/avatar.png", WithExpiry(time.Hour))
	require.NoError(t, err)
	u, err = url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestS3_URL_Public(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  func(*Config)
		want string
	}{
		{
			name: "virtual hosted aws",
			cfg:  func(*Config) {},
			want: "https://culturemesh-images.s3.us-west-2.amazonaws.com/users/42/avatar.png",
		},
		{
			name: "cdn prefix",
			cfg:  func(c *Config) { c.PublicURL = "https://img.culturemesh.com/" },
			want: "https://img.culturemesh.com/users/42/avatar.png",
		},
		{
			name: "path style endpoint",
			cfg: func(c *Config) {
				c.Endpoint = "http://localhost:9000/"
				c.PathStyle = true
			},
			want: "http://localhost:9000/culturemesh-images/users/42/avatar.png",
		},
		{
			name: "custom endpoint",
			cfg:  func(c *Config) { c.Endpoint = "https://images.example.net" },
			want: "https://images.example.net/users/42/avatar.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tt.cfg(&cfg)
			store, err := New(cfg)
			require.NoError(t, err)

			got, err := store.URL(context.Background(), "users/42/avatar.png", WithPublic())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestS3_URL_PublicRead(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PublicRead = true
	store, err := New(cfg)
	require.NoError(t, err)

	got, err := store.URL(context.Background(), "a.png")
	require.NoError(t, err)
	require.Equal(t, "https://culturemesh-images.s3.us-west-2.amazonaws.com/a.png", got)

	got, err = store.URL(context.Background(), "a.png", WithSigned())
	require.NoError(t, err)
	require.Contains(t, got, "X-Amz-Signature=")
}

func TestS3_URL_InvalidKey(t *testing.T) {
	t.Parallel()

	store, err := New(testConfig())
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "/", "users/../secrets", ".."} {
		_, err := store.URL(context.Background(), key)
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

type apiError struct {
	code string
}

func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return "message" }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }
func (e *apiError) Error() string                 { return fmt.Sprintf("api error %s", e.code) }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key code", &apiError{code: "NoSuchKey"}, ErrNotFound},
		{"not found code", &apiError{code: "NotFound"}, ErrNotFound},
		{"typed no such key", &types.NoSuchKey{}, ErrNotFound},
		{"access denied", &apiError{code: "AccessDenied"}, ErrAccessDenied},
		{"bad signature", &apiError{code: "SignatureDoesNotMatch"}, ErrAccessDenied},
		{"unknown code", &apiError{code: "SlowDown"}, ErrPresignFailed},
		{"plain error", errors.New("boom"), ErrPresignFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tt.err, ErrPresignFailed)
			require.ErrorIs(t, got, tt.want)
			require.ErrorIs(t, got, tt.err)
		})
	}
}
