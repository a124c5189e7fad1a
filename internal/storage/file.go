package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// fileMode is used for every object the FileStore writes.
const fileMode = 0600

// FileStore keeps each key in its own JSON object under a base URL. The base
// may be a local directory or any URL the afs service understands.
type FileStore struct {
	fs      afs.Service
	baseURL string
}

// NewFileStore creates a FileStore rooted at baseURL.
func NewFileStore(baseURL string) *FileStore {
	return &FileStore{fs: afs.New(), baseURL: baseURL}
}

func (s *FileStore) objectURL(key string) string {
	return url.Join(s.baseURL, key+".json")
}

// Get downloads the object for key. A missing object is reported as absent.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	URL := s.objectURL(key)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return "", false, fmt.Errorf("check %s: %w", URL, err)
	}
	if !exists {
		return "", false, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", false, fmt.Errorf("download %s: %w", URL, err)
	}
	return string(data), true, nil
}

// Set uploads value as the object for key, replacing any previous content.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	URL := s.objectURL(key)
	if err := s.fs.Upload(ctx, URL, fileMode, strings.NewReader(value)); err != nil {
		return fmt.Errorf("upload %s: %w", URL, err)
	}
	return nil
}
