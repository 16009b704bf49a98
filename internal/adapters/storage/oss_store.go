package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// OSSStore implements ports.BlobStore against Alibaba Cloud OSS. Complaint
// and resolution evidence live in separate buckets; uploaded objects are
// world-readable via PublicURL.
type OSSStore struct {
	client   *oss.Client
	endpoint string
}

var _ ports.BlobStore = (*OSSStore)(nil)

func NewOSSStore(endpoint, accessKeyID, accessKeySecret string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	return &OSSStore{client: client, endpoint: endpoint}, nil
}

func (s *OSSStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	bkt, err := s.client.Bucket(bucket)
	if err != nil {
		return fmt.Errorf("oss bucket %s: %w", bucket, err)
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentDisposition("inline"),
	}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}

	if err := bkt.PutObject(path, bytes.NewReader(data), opts...); err != nil {
		return fmt.Errorf("oss put %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *OSSStore) PublicURL(bucket, path string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, host, path)
}
