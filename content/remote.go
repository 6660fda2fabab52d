// Package content provides the section-document stores behind the editable
// website copy: a remote live-site client, an on-disk snapshot cache of the
// last good remote fetches, built-in scaffold defaults, and a chain that
// composes them with the database store.
package content

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

const defaultRemoteTimeout = 10 * time.Second

// RemoteStore reads and writes section documents through the live site's
// content API (GET/PUT <base>/<section>).
type RemoteStore struct {
	base   string
	client *http.Client
}

// NewRemoteStore creates a RemoteStore for the passed content API base URL,
// e.g. https://example.com/api/content.
func NewRemoteStore(base string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteStore{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *RemoteStore) sectionURL(section string) (string, error) {
	return url.JoinPath(s.base, section)
}

// Get fetches the document for a section from the live site.
// A missing section returns (nil, nil); any transport or server failure is an
// error so that callers can fall through to the next tier.
func (s *RemoteStore) Get(section string) (datatypes.JSON, error) {
	u, err := s.sectionURL(section)
	if err != nil {
		return nil, errors.Wrap(err, "content: bad section url")
	}
	resp, err := s.client.Get(u)
	if err != nil {
		return nil, errors.Wrap(err, "content: remote fetch failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("content: remote fetch returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "content: remote read failed")
	}
	return body, nil
}

// Put replaces the document for a section on the live site.
func (s *RemoteStore) Put(section string, doc datatypes.JSON) error {
	u, err := s.sectionURL(section)
	if err != nil {
		return errors.Wrap(err, "content: bad section url")
	}
	req, err := http.NewRequest(http.MethodPut, u, bytes.NewReader(doc))
	if err != nil {
		return errors.Wrap(err, "content: remote update request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "content: remote update failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("content: remote update returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Ping reports whether the site origin answers a HEAD request.
func (s *RemoteStore) Ping(origin string) bool {
	req, err := http.NewRequest(http.MethodHead, origin, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}
