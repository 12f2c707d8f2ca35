// Package avatar resolves the profile image URL shown next to a user.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/mesh"
	"github.com/culturemesh/meshkit/pkg/storage"
)

const (
	// DefaultBlankURL is shown for users without a profile image.
	DefaultBlankURL = "/static/images/blank_profile.png"

	// DefaultURLFormat turns an image link into a URL; %s is the link.
	DefaultURLFormat = "https://www.culturemesh.com/user-images/%s"
)

// ErrInvalidFormat is returned by New when the URL format has no %s verb.
var ErrInvalidFormat = errors.New("avatar: URL format must contain exactly one %s")

// Option configures a Resolver.
type Option func(*Resolver)

// WithBlankURL sets the image shown for users without one.
func WithBlankURL(u string) Option {
	return func(r *Resolver) {
		r.blank = u
	}
}

// WithURLFormat sets the format used when no store is configured.
func WithURLFormat(format string) Option {
	return func(r *Resolver) {
		r.format = format
	}
}

// WithStore resolves image links as object keys through store.
func WithStore(store storage.URLer, opts ...storage.URLOption) Option {
	return func(r *Resolver) {
		r.store = store
		r.storeOpts = opts
	}
}

// WithLogger logs store failures before falling back to the blank image.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger.OrNope(l)
	}
}

// Resolver maps users to profile image URLs.
type Resolver struct {
	blank     string
	format    string
	store     storage.URLer
	storeOpts []storage.URLOption
	logger    *slog.Logger
}

// New returns a Resolver.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		blank:  DefaultBlankURL,
		format: DefaultURLFormat,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil && strings.Count(r.format, "%s") != 1 {
		return nil, ErrInvalidFormat
	}
	return r, nil
}

// URL returns the image URL for u. Users without an image link get the blank
// image. Store errors are returned; use URLOrBlank to fall back instead.
func (r *Resolver) URL(ctx context.Context, u mesh.User) (string, error) {
	key := imageLink(u)
	if key == "" {
		return r.blank, nil
	}
	if r.store == nil {
		return fmt.Sprintf(r.format, key), nil
	}
	return r.store.URL(ctx, key, r.storeOpts...)
}

// URLOrBlank is URL that logs a store failure and returns the blank image.
func (r *Resolver) URLOrBlank(ctx context.Context, u mesh.User) string {
	s, err := r.URL(ctx, u)
	if err != nil {
		r.logger.WarnContext(ctx, "profile image URL failed",
			slog.String("user_id", u.ID.String()),
			slog.Any("error", err),
		)
		return r.blank
	}
	return s
}

func imageLink(u mesh.User) string {
	if u.ImageLink == nil {
		return ""
	}
	return strings.TrimSpace(*u.ImageLink)
}
