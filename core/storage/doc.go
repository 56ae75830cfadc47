// Package storage provides an abstraction layer for object storage services.
//
// Seed documents can live in an S3 or MinIO bucket instead of a local directory. This
// package wraps the MinIO Go client behind a small Client interface so the document
// source and the push command can be tested with the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket before a first push.
//   - PutObject: Uploads a document.
//   - GetObject: Retrieves a document as a stream.
//   - ListObjects: Lists documents under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "nb-init")
package storage
