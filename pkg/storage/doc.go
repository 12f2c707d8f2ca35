// Package storage turns object keys in an S3-compatible bucket into URLs a
// browser can load.
//
// Profile images are uploaded by the main application; this package only
// reads them. [S3.URL] returns a presigned GET URL by default, valid for
// [DefaultURLExpiry]. Buckets served through a CDN or with public-read
// objects can return plain URLs instead, either per call with [WithPublic]
// or for every call with Config.PublicRead.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "culturemesh-images",
//		Region:    "us-west-2",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	link, err := store.URL(ctx, "users/42/avatar.png", storage.WithExpiry(time.Hour))
//
// Presigning is computed locally from the credentials; no request reaches
// the bucket. Failures are reported with the sentinel errors in errors.go.
package storage
