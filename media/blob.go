// Package media uploads binary files to the site's public blob store and
// returns their public URLs.
package media

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultUploadTimeout = 30 * time.Second

// BlobStore uploads objects via authenticated HTTP PUT to a public blob
// bucket. Uploaded objects are immediately readable at BaseURL/<key>.
type BlobStore struct {
	baseURL string
	token   string
	client  *http.Client

	// now is exchanged in tests for deterministic keys.
	now func() time.Time
}

// NewBlobStore creates a BlobStore for the passed public base URL and
// read-write token.
func NewBlobStore(baseURL, token string) *BlobStore {
	return &BlobStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultUploadTimeout},
		now:     time.Now,
	}
}

// Configured reports whether the store has both a base URL and a token.
func (s *BlobStore) Configured() bool {
	return s != nil && s.baseURL != "" && s.token != ""
}

// Key builds the object key for an uploaded file name. Keys are prefixed with
// media/ and a millisecond timestamp so re-uploads of the same name never
// collide.
func (s *BlobStore) Key(filename string) string {
	return fmt.Sprintf("media/%d-%s", s.now().UnixMilli(), filename)
}

// URL returns the public URL for an object key.
func (s *BlobStore) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

// Upload stores the passed content under a fresh key for filename and returns
// the public URL.
func (s *BlobStore) Upload(filename, contentType string, body io.Reader) (string, error) {
	if !s.Configured() {
		return "", errors.New("media: blob store is not configured")
	}
	key := s.Key(filename)
	req, err := http.NewRequest(http.MethodPut, s.URL(key), body)
	if err != nil {
		return "", errors.Wrap(err, "media: upload request failed")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "media: upload failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errors.Errorf("media: upload returned status %d: %s", resp.StatusCode, string(msg))
	}
	return s.URL(key), nil
}
