package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"nb-init/core/storage"

	"github.com/minio/minio-go/v7"
)

// Extensions are the accepted document file extensions, in lookup order.
var Extensions = []string{".yml", ".yaml"}

// Source provides raw documents by entity tag.
type Source interface {
	// Read returns the document of tag and the location it was read from.
	// It returns an error wrapping ErrMissing when no document exists.
	Read(ctx context.Context, tag string) ([]byte, string, error)
	// Tags lists the tags of every document present.
	Tags(ctx context.Context) ([]string, error)
}

// Load reads and parses the document of tag from src.
func Load(ctx context.Context, src Source, tag, uniqueKey string) (*Document, error) {
	data, location, err := src.Read(ctx, tag)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(tag, uniqueKey, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	doc.Source = location
	return doc, nil
}

// DirSource reads documents from a local directory.
type DirSource struct {
	Dir string
}

var _ Source = DirSource{}

// Read implements Source.
func (s DirSource) Read(_ context.Context, tag string) ([]byte, string, error) {
	for _, ext := range Extensions {
		p := filepath.Join(s.Dir, tag+ext)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, fmt.Errorf("read %s: %w", p, err)
		}
	}
	return nil, "", fmt.Errorf("%w: no %s.yml in %s", ErrMissing, tag, s.Dir)
}

// Tags implements Source.
func (s DirSource) Tags(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read document directory %s: %w", s.Dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return tagsOf(names), nil
}

// BucketSource reads documents stored as <prefix>/<tag>.yml objects.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

var _ Source = BucketSource{}

func (s BucketSource) objectName(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

// Read implements Source.
func (s BucketSource) Read(ctx context.Context, tag string) ([]byte, string, error) {
	for _, ext := range Extensions {
		name := s.objectName(tag + ext)
		location := fmt.Sprintf("s3://%s/%s", s.Bucket, name)

		obj, err := s.Client.GetObject(ctx, s.Bucket, name, minio.GetObjectOptions{})
		if err != nil {
			if storage.IsNotFound(err) {
				continue
			}
			return nil, location, fmt.Errorf("get %s: %w", location, err)
		}
		data, err := io.ReadAll(obj)
		obj.Close()
		if err != nil {
			if storage.IsNotFound(err) {
				continue
			}
			return nil, location, fmt.Errorf("read %s: %w", location, err)
		}
		return data, location, nil
	}
	return nil, "", fmt.Errorf("%w: no %s.yml in s3://%s/%s", ErrMissing, tag, s.Bucket, s.Prefix)
}

// Tags implements Source.
func (s BucketSource) Tags(ctx context.Context) ([]string, error) {
	prefix := s.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var names []string
	for obj := range s.Client.ListObjects(ctx, s.Bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.Bucket, prefix, obj.Err)
		}
		names = append(names, strings.TrimPrefix(obj.Key, prefix))
	}
	return tagsOf(names), nil
}

// tagsOf extracts the unique tags of document file names, sorted.
func tagsOf(names []string) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, name := range names {
		if strings.Contains(name, "/") {
			continue
		}
		for _, ext := range Extensions {
			if tag, ok := strings.CutSuffix(name, ext); ok && tag != "" {
				if _, dup := seen[tag]; !dup {
					seen[tag] = struct{}{}
					tags = append(tags, tag)
				}
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}
