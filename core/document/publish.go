package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Publish uploads every document of src to dst as <prefix>/<tag>.yml, creating the
// bucket when it does not exist. It returns the uploaded object names.
func Publish(ctx context.Context, src Source, dst BucketSource) ([]string, error) {
	exists, err := dst.Client.BucketExists(ctx, dst.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", dst.Bucket, err)
	}
	if !exists {
		if err := dst.Client.MakeBucket(ctx, dst.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", dst.Bucket, err)
		}
	}

	tags, err := src.Tags(ctx)
	if err != nil {
		return nil, err
	}

	var uploaded []string
	for _, tag := range tags {
		data, location, err := src.Read(ctx, tag)
		if err != nil {
			return uploaded, err
		}

		name := dst.objectName(tag + Extensions[0])
		_, err = dst.Client.PutObject(ctx, dst.Bucket, name, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/yaml"})
		if err != nil {
			return uploaded, fmt.Errorf("upload %s to s3://%s/%s: %w", location, dst.Bucket, name, err)
		}
		uploaded = append(uploaded, name)
	}
	return uploaded, nil
}
